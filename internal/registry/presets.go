package registry

func init() {
	Register(Preset{
		ID:          "langton",
		Title:       "Langton's Ant",
		Description: "RL: chaos for about 10000 steps, then a diagonal highway",
		Rows:        MustRows("0-0-R-1-0", "0-1-L-0-0"),
	})

	Register(Preset{
		ID:          "llr",
		Title:       "LLR",
		Description: "three colors, grows a filled symmetric blob",
		Rows:        MustRows("0-0-L-1-0", "0-1-L-2-0", "0-2-R-0-0"),
	})

	Register(Preset{
		ID:          "rlr",
		Title:       "RLR",
		Description: "three colors, chaotic growth",
		Rows:        MustRows("0-0-R-1-0", "0-1-L-2-0", "0-2-R-0-0"),
	})

	Register(Preset{
		ID:          "rrl",
		Title:       "RRL",
		Description: "three colors, builds a highway after a short chaotic phase",
		Rows:        MustRows("0-0-R-1-0", "0-1-R-2-0", "0-2-L-0-0"),
	})

	Register(Preset{
		ID:          "fibonacci",
		Title:       "Fibonacci Spiral",
		Description: "two states, grows a spiral whose arms follow the Fibonacci sequence",
		Rows:        MustRows("0-0-L-1-1", "0-1-L-1-1", "1-0-R-1-1", "1-1-N-0-0"),
	})

	Register(Preset{
		ID:          "spiral",
		Title:       "Square Spiral",
		Description: "two states, grows a square spiral",
		Rows:        MustRows("0-0-N-1-1", "0-1-L-1-0", "1-0-R-1-1", "1-1-N-0-0"),
	})

	Register(Preset{
		ID:          "default",
		Title:       "Default",
		Description: "the table a new editor session starts with",
		Rows:        MustRows("0-0-L-1-1", "0-1-L-0-0", "1-0-L-0-0", "1-1-L-0-0"),
	})
}
