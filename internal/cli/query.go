package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/staff-directory-api/internal/models"
)

func newQueryCmd(a *app) *cobra.Command {
	var (
		spec   models.QuerySpec
		desc   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "query [search terms]",
		Short: "Search, filter and sort the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.SearchTerm = strings.Join(args, " ")
			if desc {
				spec.SortDirection = models.SortDesc
			}
			records, err := a.services.Staff.Query(cmd.Context(), spec)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			return printRoster(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().StringVarP(&spec.Department, "department", "d", models.FilterAll, "Department key, or \"all\"")
	cmd.Flags().StringVarP((*string)(&spec.Availability), "availability", "a", string(models.AvailabilityAll), "available, unavailable or all")
	cmd.Flags().StringVar(&spec.Role, "role", "", "Exact role, case-insensitive")
	cmd.Flags().StringVar(&spec.Location, "location", "", "Location substring")
	cmd.Flags().StringVar((*string)(&spec.AbsenceStatus), "absence", string(models.AbsenceAll), "present, absent or all")
	cmd.Flags().StringVarP((*string)(&spec.SortBy), "sort", "s", "", "name, department, function or lastSeen")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}

func printRoster(out io.Writer, records []models.StaffRecord) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tFUNCTION\tDEPARTMENT\tEXT\tSTATUS\tLAST SEEN")
	for i := range records {
		r := &records[i]
		lastSeen := "-"
		if r.LastSeen != nil {
			lastSeen = r.LastSeen.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.FullName(), r.Function, r.Department.Label(), r.Extension, statusText(r), lastSeen)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d record(s)", len(records))))
	return err
}
