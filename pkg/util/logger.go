package util

import (
	"os"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// LogConfig is the logging part of the configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Filename, when set, sends logs to the file instead of stderr.
	Filename string
}

func init() {
	if err := InitLogger(LogConfig{}); err != nil {
		panic(err)
	}
}

// InitLogger replaces Logger according to cfg. Without a file, logs go to
// stderr so they never interleave with a maze printed on stdout.
func InitLogger(cfg LogConfig) error {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	conf := &log.Config{
		Level:  level,
		Format: "text",
		File: log.FileLogConfig{
			Filename: cfg.Filename,
		},
	}

	var (
		lg    *zap.Logger
		props *log.ZapProperties
		err   error
	)
	if cfg.Filename != "" {
		lg, props, err = log.InitLogger(conf)
	} else {
		stderr := zapcore.Lock(os.Stderr)
		lg, props, err = log.InitLoggerWithWriteSyncer(conf, stderr, stderr)
	}
	if err != nil {
		return errors.Annotatef(err, "init logger with level %q", level)
	}
	log.ReplaceGlobals(lg, props)
	Logger = lg
	return nil
}
