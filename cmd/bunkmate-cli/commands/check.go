package commands

import (
	"fmt"
	"sort"

	"bunkmate-backend/cmd/bunkmate-cli/utils"
	"bunkmate-backend/lib/serviceutil"
	"bunkmate-backend/services/attendance"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	checkBaseUrl  *string
	checkUsername *string
	checkPassword *string
	checkTarget   *float64
)

func init() {
	checkBaseUrl = checkCmd.Flags().String("base-url", "", "Base url of the college portal.")
	checkUsername = checkCmd.Flags().StringP("username", "u", "", "Portal username.")
	checkPassword = checkCmd.Flags().StringP("password", "p", "", "Portal password.")
	checkTarget = checkCmd.Flags().Float64P("target", "t", attendance.DefaultTarget, "Target attendance percentage.")
	checkCmd.MarkFlagRequired("base-url")
	checkCmd.MarkFlagRequired("username")
	checkCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check -u <username> -p <password> --base-url <url> [-t <target>]",
	Short: "Logs into the portal and prints the attendance projection table.",
	Run: func(cmd *cobra.Command, args []string) {
		service := attendance.NewService(attendance.ServiceOptions{
			BaseUrl: *checkBaseUrl,
		})

		target := attendance.EffectiveTarget(*checkTarget)
		report, err := service.Check(cmd.Context(), *checkUsername, *checkPassword, target)
		if err != nil {
			serviceutil.Fatal("check attendance", err)
		}

		subjects := make([]string, 0, len(report.Results))
		for subject := range report.Results {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Subject", "Name", "Attended", "Held", "%", "Needed", "Bunkable"})
		for _, subject := range subjects {
			r := report.Results[subject]
			t.AppendRow(table.Row{
				subject,
				r.Name,
				r.Attended,
				r.Total,
				fmt.Sprintf("%.2f", r.Percentage),
				r.Needed,
				r.BunksAvailable,
			})
		}
		t.Render()

		fmt.Printf("target: %.2f%%\n", report.Target)
	},
}
