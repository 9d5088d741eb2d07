package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize availability across the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.services.Staff.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}

			fmt.Fprintf(out, "Total staff:   %d\n", st.TotalStaff)
			fmt.Fprintf(out, "Available now: %d\n", st.AvailableNow)
			fmt.Fprintf(out, "Absent now:    %d\n", st.UnavailableNow)
			fmt.Fprintf(out, "Availability:  %.2f%%\n\n", st.AvailabilityRate)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DEPARTMENT\tSTAFF\tAVAILABLE")
			for _, d := range st.DepartmentBreakdown {
				fmt.Fprintf(w, "%s\t%d\t%d\n", d.Label, d.Count, d.AvailableCount)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if len(st.AbsencesByReason) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ABSENCE REASON\tCOUNT")
			for _, r := range st.AbsencesByReason {
				fmt.Fprintf(w, "%s\t%d\n", r.Reason, r.Count)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print statistics as JSON")
	return cmd
}
