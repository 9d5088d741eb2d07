package cli

import (
	"github.com/spf13/cobra"

	"github.com/staff-directory-api/internal/models"
)

func newAbsentCmd(a *app) *cobra.Command {
	var (
		req   models.AbsenceRequest
		write bool
	)

	cmd := &cobra.Command{
		Use:   "absent ID",
		Short: "Mark a staff member absent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.services.Staff.MarkAbsent(cmd.Context(), args[0], req); err != nil {
				return err
			}
			if write {
				return a.save(cmd.Context())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Reason, "reason", "r", "", "Absence reason (required)")
	cmd.Flags().StringVarP((*string)(&req.Duration), "duration", "d", "", "hour, day, days, week, weeks or undetermined")
	cmd.Flags().StringVar(&req.ExpectedReturnDate, "return", "", "Expected return date, YYYY-MM-DD")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Save the roster file")
	return cmd
}

func newAvailableCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "available ID",
		Short: "Mark a staff member available again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.services.Staff.MarkAvailable(cmd.Context(), args[0]); err != nil {
				return err
			}
			if write {
				return a.save(cmd.Context())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Save the roster file")
	return cmd
}
