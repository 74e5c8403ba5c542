package commands

import (
	"fmt"

	"bunkmate-backend/cmd/bunkmate-cli/utils"
	"bunkmate-backend/lib/attendancestore"
	"bunkmate-backend/lib/projection"
	"bunkmate-backend/lib/serviceutil"
	"bunkmate-backend/lib/sqliteutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	historyUsername *string
	historyDb       *string
)

func init() {
	historyUsername = historyCmd.Flags().StringP("username", "u", "", "Portal username the snapshots were recorded under.")
	historyDb = historyCmd.Flags().String("database", "snapshots.db", "Path to the snapshot database.")
	historyCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history -u <username> [--database <path/to/snapshots.db>]",
	Short: "Prints recorded attendance snapshots for a user.",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := sqliteutil.OpenDB(attendancestore.Schema, *historyDb)
		if err != nil {
			serviceutil.Fatal("open snapshot db", err)
		}
		defer db.Close()

		store := attendancestore.NewStore(db)
		series, err := store.History(cmd.Context(), *historyUsername)
		if err != nil {
			serviceutil.Fatal("read history", err)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Subject", "Day", "Attended", "Held", "%"})
		for _, subject := range series {
			for _, snap := range subject.Snapshots {
				t.AppendRow(table.Row{
					subject.Subject,
					snap.Day.Format("2006-01-02"),
					snap.Attended,
					snap.Total,
					fmt.Sprintf("%.2f", projection.Percentage(snap.Attended, snap.Total)),
				})
			}
		}
		t.Render()
	},
}
