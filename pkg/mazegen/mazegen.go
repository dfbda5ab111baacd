package mazegen

import (
	"context"
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lance6716/perfect-maze/pkg/filemgr"
	"github.com/lance6716/perfect-maze/pkg/maze"
	"github.com/lance6716/perfect-maze/pkg/render"
	"github.com/lance6716/perfect-maze/pkg/store"
	"github.com/lance6716/perfect-maze/pkg/util"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run is the main entry function of the maze generation logic. Rendered mazes
// are printed to out unless cfg.Quiet is set.
func Run(ctx context.Context, cfg *Config, out io.Writer) error {
	cfg.ensureDefaults()
	if err := cfg.validate(); err != nil {
		return errors.Trace(err)
	}

	var history *store.History
	if cfg.History.enabled() {
		h := cfg.History
		db, err := util.ConnectDB(h.Host, h.Port, h.User, h.Password, h.DBName)
		if err != nil {
			return errors.Trace(err)
		}
		defer db.Close()
		history = store.NewHistory(db, h.Table)
	}
	return run(ctx, cfg, out, history)
}

func run(
	ctx context.Context,
	cfg *Config,
	out io.Writer,
	history *store.History,
) error {
	mazes, err := generateAll(ctx, cfg)
	if err != nil {
		return errors.Trace(err)
	}

	var mgr *filemgr.Manager
	if cfg.Count > 1 {
		mgr = filemgr.NewManager(cfg.WorkDir)
	}
	for i, m := range mazes {
		r := store.Run{
			ID:        uuid.NewString(),
			Size:      m.Size,
			Seed:      cfg.Seed + int64(i),
			Removed:   len(m.Passages),
			Draws:     m.Draws,
			CreatedAt: time.Now(),
		}
		util.Logger.Info("maze generated",
			zap.String("id", r.ID),
			zap.Int("size", r.Size),
			zap.Int64("seed", r.Seed),
			zap.Int("removed", r.Removed),
			zap.Int("draws", r.Draws))

		if err = emit(ctx, cfg, out, mgr, history, m, r, i); err != nil {
			return errors.Annotatef(err, "output maze %s", r.ID)
		}
	}
	return nil
}

// generateAll runs every generation with its own random source. Runs share no
// state, so they are spread over cfg.Concurrency goroutines.
func generateAll(ctx context.Context, cfg *Config) ([]*maze.Maze, error) {
	mazes := make([]*maze.Maze, cfg.Count)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i := range mazes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Trace(err)
			}
			seed := cfg.Seed + int64(i)
			m, err := maze.Generate(cfg.Size, rand.New(rand.NewSource(seed)))
			if err != nil {
				return errors.Annotatef(err, "generate maze with seed %d", seed)
			}
			mazes[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mazes, nil
}

func emit(
	ctx context.Context,
	cfg *Config,
	out io.Writer,
	mgr *filemgr.Manager,
	history *store.History,
	m *maze.Maze,
	r store.Run,
	idx int,
) error {
	if !cfg.Quiet {
		if err := render.Print(out, m); err != nil {
			return errors.Trace(err)
		}
	}
	if cfg.Output != "" {
		if err := render.SaveToText(cfg.Output, m); err != nil {
			return errors.Trace(err)
		}
	}
	if mgr != nil {
		name := strconv.Itoa(idx) + "-" + r.ID
		if err := mgr.WriteMaze(name, []byte(render.Text(m, "\r\n"))); err != nil {
			return errors.Trace(err)
		}
		util.Logger.Debug("maze saved", zap.String("path", mgr.MazePath(name)))
	}
	if history != nil {
		if err := history.Record(ctx, r); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
