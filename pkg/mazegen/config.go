package mazegen

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/lance6716/perfect-maze/pkg/util"
	"github.com/pingcap/errors"
)

// MaxSize is the largest grid order accepted. Memory grows with N*N and the
// number of random draws grows faster than that as the pool thins.
const MaxSize = 2000

// Config is a static struct for the maze generation's configuration.
type Config struct {
	Size  int
	Count int
	// Seed of the first run, run i uses Seed+i. Zero picks one from the clock.
	Seed        int64
	Output      string
	WorkDir     string
	Concurrency int
	Quiet       bool
	Log         util.LogConfig
	History     History
}

// History is the MySQL server that keeps a record of every run. It's disabled
// when Host is empty.
type History struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Table    string
}

func (h History) enabled() bool {
	return h.Host != ""
}

const defaultWorkSubDir = "perfect-maze"

func (c *Config) ensureDefaults() {
	if c.Count == 0 {
		c.Count = 1
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	if c.WorkDir == "" {
		c.WorkDir = filepath.Join(os.TempDir(), defaultWorkSubDir)
	}
	if c.History.Port == 0 {
		c.History.Port = 3306
	}
}

func (c *Config) validate() error {
	if c.Size < 1 || c.Size > MaxSize {
		return errors.Errorf("size must be in [1, %d], got %d", MaxSize, c.Size)
	}
	if c.Count < 1 {
		return errors.Errorf("count must be positive, got %d", c.Count)
	}
	return nil
}
