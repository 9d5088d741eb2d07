package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/service"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
		spec   models.QuerySpec
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the roster as CSV, JSON or NDJSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return a.services.Export.Stream(cmd.Context(), out, spec, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", service.FormatCSV, "csv, json or ndjson")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVarP(&spec.Department, "department", "d", models.FilterAll, "Department key, or \"all\"")
	cmd.Flags().StringVarP((*string)(&spec.Availability), "availability", "a", string(models.AvailabilityAll), "available, unavailable or all")
	cmd.Flags().StringVarP((*string)(&spec.SortBy), "sort", "s", string(models.SortByName), "name, department, function or lastSeen")
	return cmd
}
