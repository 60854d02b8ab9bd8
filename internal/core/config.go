package core

// RuntimeConfig contains configuration passed to a game host at start.
// Hosts use this to size the terminal view and seed the simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frame callbacks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

