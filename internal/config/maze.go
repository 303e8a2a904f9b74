package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Maze struct {
	Rows         int
	Cols         int
	MaxDimension int
	TickInterval time.Duration
	// Seed is nil when the random source should be seeded randomly.
	Seed *uint64
}

func lookupInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an int: %w", key, err)
	}
	return v, nil
}

func NewMaze() (*Maze, error) {
	rows, err := lookupInt("MAZE_ROWS", 20)
	if err != nil {
		return nil, err
	}
	cols, err := lookupInt("MAZE_COLS", 20)
	if err != nil {
		return nil, err
	}
	maxDim, err := lookupInt("MAZE_MAX_DIMENSION", 100)
	if err != nil {
		return nil, err
	}

	interval := 50 * time.Millisecond
	if s, ok := os.LookupEnv("MAZE_TICK_INTERVAL"); ok {
		interval, err = time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("MAZE_TICK_INTERVAL must be a duration: %w", err)
		}
	}

	cfg := &Maze{
		Rows:         rows,
		Cols:         cols,
		MaxDimension: maxDim,
		TickInterval: interval,
	}

	if s, ok := os.LookupEnv("MAZE_SEED"); ok {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("MAZE_SEED must be an unsigned int: %w", err)
		}
		cfg.Seed = &seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c Maze) Validate() error {
	if c.MaxDimension <= 0 {
		return fmt.Errorf("max dimension must be positive, got %d", c.MaxDimension)
	}
	if err := c.ValidateDimensions(c.Rows, c.Cols); err != nil {
		return err
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	return nil
}

// ValidateDimensions checks a requested grid size against the configured
// bounds.
func (c Maze) ValidateDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("maze dimensions must be positive, got %dx%d", rows, cols)
	}
	if rows > c.MaxDimension || cols > c.MaxDimension {
		return fmt.Errorf("maze dimensions must not exceed %d, got %dx%d", c.MaxDimension, rows, cols)
	}
	return nil
}
