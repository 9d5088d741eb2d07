package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/staff-directory-api/internal/models"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		format string
		commit bool
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Extract draft records from a file and optionally commit them",
		Long: "Extracts drafts from a CSV, XLSX or JSON file and prints them for review.\n" +
			"Nothing is added until --commit is given; --write then saves the roster file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			f := models.ArtifactFormat(format)
			if f == "" {
				f = guessFormat(args[0])
			}

			session, err := a.services.Import.Extract(ctx, models.Artifact{
				Format:   f,
				Filename: filepath.Base(args[0]),
				Data:     data,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSession(out, session)

			if !commit {
				fmt.Fprintln(out, dimStyle.Render("Dry run: pass --commit to add the valid drafts."))
				return nil
			}
			result, err := a.services.Import.Commit(ctx, session.ID, models.CommitRequest{})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Committed %d, rejected %d\n", len(result.Committed), len(result.Rejected))
			if write && len(result.Committed) > 0 {
				return a.save(ctx)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "delimited-text, spreadsheet or document (default: from extension)")
	cmd.Flags().BoolVar(&commit, "commit", false, "Commit the valid drafts")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Save the roster file after committing")
	return cmd
}

func guessFormat(path string) models.ArtifactFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return models.FormatSpreadsheet
	case ".json", ".ndjson":
		return models.FormatDocument
	}
	return models.FormatDelimitedText
}

func printSession(out io.Writer, s *models.ImportSession) {
	confidence := fmt.Sprintf("%d%%", s.Confidence)
	if s.LowConfidence {
		confidence = warningStyle.Render(confidence + " (low)")
	}
	fmt.Fprintf(out, "%d draft(s) from %s, confidence %s\n", len(s.Drafts), s.Filename, confidence)

	for _, issue := range s.Issues {
		detail := issue.Reason
		if len(issue.Fields) > 0 {
			detail = issue.Fields.Error()
		}
		fmt.Fprintf(out, "  %s line %d: %s\n", errorStyle.Render("✗"), issue.Line, detail)
	}
}
