package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/lance6716/perfect-maze/pkg/store"
	"github.com/lance6716/perfect-maze/pkg/util"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the latest recorded generation runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := historyConfig(v)
			if h.Host == "" {
				return errors.New("history-host is required")
			}
			db, err := util.ConnectDB(h.Host, h.Port, h.User, h.Password, h.DBName)
			if err != nil {
				return errors.Trace(err)
			}
			defer db.Close()

			runs, err := store.NewHistory(db, h.Table).Recent(cmd.Context(), v.GetInt("limit"))
			if err != nil {
				return errors.Trace(err)
			}
			return printRuns(cmd, runs)
		},
	}
	cmd.Flags().Int("limit", 20, "number of runs to list")
	return cmd
}

func printRuns(cmd *cobra.Command, runs []store.Run) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSIZE\tSEED\tREMOVED\tDRAWS\tCREATED AT")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.Size, r.Seed, r.Removed, r.Draws, r.CreatedAt.Format(time.RFC3339))
	}
	return errors.Trace(w.Flush())
}
