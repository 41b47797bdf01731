package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/turmite/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the turmite SSH server",
	Long: `Start an SSH server that gives every connection its own simulator.

Each SSH connection gets a private session with the ruleset menu. The
ruleset library and the run history are shared by all users.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key from the config (generated if missing)

Examples:
  turmite serve                           # Listen on the configured address
  turmite serve --ssh :2222               # Listen on port 2222
  turmite serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger()

	serverCfg := tui.SSHServerConfigFrom(cfg)
	if flagSSHAddr != "" {
		serverCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		serverCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	lib := openLibrary(cfg)
	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(serverCfg, cfg, lib, store, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Connect with: ssh %s\n", server.Addr())
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
