package main

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/maze-server/internal/maze"
)

var ErrTickLimit = errors.New("tick limit reached before the maze was solved")

type runOptions struct {
	rows     int
	cols     int
	seed     uint64
	seeded   bool
	mode     maze.Mode
	interval time.Duration
	frames   bool
	maxTicks int
}

func newRunCmd() *cobra.Command {
	var (
		opts runOptions
		mode string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate one maze, solve it and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.mode, err = maze.ParseMode(mode); err != nil {
				return err
			}
			opts.seeded = cmd.Flags().Changed("seed")

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			_, err = runMaze(ctx, cmd.OutOrStdout(), opts)
			return err
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&opts.rows, "rows", "r", 20, "maze rows")
	flags.IntVarP(&opts.cols, "cols", "c", 20, "maze columns")
	flags.Uint64Var(&opts.seed, "seed", 0, "seed for a reproducible maze")
	flags.StringVarP(&mode, "mode", "m", "bfs", "search mode: dfs or bfs")
	flags.DurationVarP(&opts.interval, "interval", "i", 0, "delay between ticks")
	flags.BoolVar(&opts.frames, "frames", false, "print the grid after every tick")
	flags.IntVar(&opts.maxTicks, "max-ticks", 1_000_000, "give up after this many ticks")
	return cmd
}

func newRand(opts runOptions) *rand.Rand {
	if opts.seeded {
		return rand.New(rand.NewPCG(opts.seed, opts.seed))
	}
	return rand.New(rand.NewPCG(new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64()))
}

// runMaze drives a maze from generation to a solved path, requesting the
// search as soon as the maze is ready.
func runMaze(ctx context.Context, out io.Writer, opts runOptions) (maze.Summary, error) {
	m, err := maze.New(opts.rows, opts.cols, newRand(opts))
	if err != nil {
		return maze.Summary{}, err
	}
	log.WithFields(logrus.Fields{
		"rows":  opts.rows,
		"cols":  opts.cols,
		"mode":  opts.mode.String(),
		"edges": len(m.Candidates()),
	}).Info("maze created")

	var tick <-chan time.Time
	if opts.interval > 0 {
		ticker := time.NewTicker(opts.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	phase := m.Phase()
	for m.Phase() != maze.Solved {
		if m.Ticks() >= opts.maxTicks {
			return maze.Summary{}, ErrTickLimit
		}
		if m.Phase() == maze.Ready && !m.RequestSearch(opts.mode) {
			return maze.Summary{}, fmt.Errorf("search %s was not accepted", opts.mode)
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return maze.Summary{}, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return maze.Summary{}, err
		}

		m.Advance()
		if opts.frames {
			fmt.Fprintf(out, "%s\n", m.Grid())
		}
		if p := m.Phase(); p != phase {
			log.WithFields(logrus.Fields{
				"from":  phase.String(),
				"to":    p.String(),
				"ticks": m.Ticks(),
			}).Debug("phase changed")
			phase = p
		}
	}

	summary, _ := m.Summary()
	if !opts.frames {
		fmt.Fprintf(out, "%s\n", m.Grid())
	}
	fmt.Fprintln(out, summary.String())
	log.WithFields(logrus.Fields{
		"moves":       summary.Moves,
		"path_length": summary.PathLength,
		"ticks":       summary.Ticks,
	}).Info("maze solved")
	return summary, nil
}
