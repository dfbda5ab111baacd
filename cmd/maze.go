package cmd

import (
	"context"
	"strings"

	"github.com/lance6716/perfect-maze/pkg/mazegen"
	"github.com/lance6716/perfect-maze/pkg/util"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "PERFECT_MAZE"

// Execute executes the root command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "perfect-maze",
		Short:         "A tool used to generate perfect mazes by randomly removing walls of a square grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd, configFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mazegen.Run(cmd.Context(), &mazegen.Config{
				Size:        v.GetInt("size"),
				Count:       v.GetInt("count"),
				Seed:        v.GetInt64("seed"),
				Output:      v.GetString("output"),
				WorkDir:     v.GetString("work-dir"),
				Concurrency: v.GetInt("concurrency"),
				Quiet:       v.GetBool("quiet"),
				History:     historyConfig(v),
			}, cmd.OutOrStdout())
		},
	}

	pflags := rootCmd.PersistentFlags()
	pflags.StringVar(&configFile, "config", "", "config file (toml, yaml or json)")
	pflags.String("log-level", "info", "log level: debug, info, warn or error")
	pflags.String("log-file", "", "log file, logs go to stderr when empty")
	pflags.String("history-host", "", "MySQL host to record runs in, disabled when empty")
	pflags.Int("history-port", 3306, "MySQL port")
	pflags.String("history-user", "root", "MySQL user")
	pflags.String("history-password", "", "MySQL password")
	pflags.String("history-db", "test", "MySQL database")
	pflags.String("history-table", "", "MySQL table, maze_runs when empty")

	flags := rootCmd.Flags()
	flags.IntP("size", "n", 10, "grid order N of the N x N maze")
	flags.Int("count", 1, "number of mazes to generate")
	flags.Int64("seed", 0, "random seed of the first maze, run i uses seed+i; 0 picks one from the clock")
	flags.StringP("output", "o", "", "append rendered mazes to this file")
	flags.StringP("work-dir", "w", "", "work directory for batches of more than one maze")
	flags.Int("concurrency", 0, "number of mazes generated at the same time, 0 means the number of CPUs")
	flags.BoolP("quiet", "q", false, "do not print mazes to stdout")

	rootCmd.AddCommand(newHistoryCmd(v))
	return rootCmd
}

// initConfig merges flags, environment variables and the optional config file
// into v, in that order of precedence, and sets up the logger.
func initConfig(v *viper.Viper, cmd *cobra.Command, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Annotatef(err, "read config file %s", configFile)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Trace(err)
	}

	return util.InitLogger(util.LogConfig{
		Level:    v.GetString("log-level"),
		Filename: v.GetString("log-file"),
	})
}

func historyConfig(v *viper.Viper) mazegen.History {
	return mazegen.History{
		Host:     v.GetString("history-host"),
		Port:     v.GetInt("history-port"),
		User:     v.GetString("history-user"),
		Password: v.GetString("history-password"),
		DBName:   v.GetString("history-db"),
		Table:    v.GetString("history-table"),
	}
}
