// Package cli implements staffctl, an offline console over a YAML roster file.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/staff-directory-api/internal/config"
	"github.com/staff-directory-api/internal/models"
	"github.com/staff-directory-api/internal/notify"
	"github.com/staff-directory-api/internal/repository"
	"github.com/staff-directory-api/internal/seed"
	"github.com/staff-directory-api/internal/service"
	"github.com/staff-directory-api/pkg/logger"
)

const defaultRoster = "data/seed.yaml"

// app is the state shared by every subcommand for one invocation
type app struct {
	rosterPath string
	verbose    bool
	quiet      bool

	cfg      *config.Config
	log      zerolog.Logger
	services *service.Services
}

// NewRootCmd builds the staffctl command tree
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "staffctl",
		Short:        "Query and maintain a staff directory roster file",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.rosterPath, "roster", "", "Roster YAML file (default: $DIRECTORY_SEED_FILE or "+defaultRoster+")")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Do not print command notifications")

	cmd.AddCommand(newQueryCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newImportCmd(a))
	cmd.AddCommand(newAbsentCmd(a))
	cmd.AddCommand(newAvailableCmd(a))
	cmd.AddCommand(newWatchCmd(a))

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}

// open loads configuration and the roster file into a fresh in-memory directory
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Commands run interactively; the simulated delay only makes sense behind the API.
	cfg.Directory.MutationLatency = 0
	a.cfg = cfg

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.log = logger.NewWithWriter(cmd.ErrOrStderr(), level, "pretty")

	if a.rosterPath == "" {
		a.rosterPath = cfg.Directory.SeedFile
	}
	if a.rosterPath == "" {
		a.rosterPath = defaultRoster
	}

	bus := notify.NewBus(a.log)
	if !a.quiet {
		bus.Subscribe(printHandler(cmd.ErrOrStderr()))
	}

	a.services = service.NewServices(repository.New(), cfg, service.Dependencies{Sink: bus}, a.log)

	records, err := seed.Load(a.rosterPath)
	if err != nil {
		return err
	}
	if _, err := a.services.Staff.Seed(cmd.Context(), records); err != nil {
		return fmt.Errorf("load roster %s: %w", a.rosterPath, err)
	}
	return nil
}

// save writes the current roster back to the roster file in roster order
func (a *app) save(ctx context.Context) error {
	records, err := a.services.Staff.Query(ctx, models.QuerySpec{})
	if err != nil {
		return err
	}
	if err := seed.Save(a.rosterPath, records); err != nil {
		return fmt.Errorf("save roster %s: %w", a.rosterPath, err)
	}
	a.log.Debug().Str("file", a.rosterPath).Int("records", len(records)).Msg("Roster saved")
	return nil
}

// printHandler renders notifications for a terminal
func printHandler(w io.Writer) notify.Handler {
	return func(_ context.Context, n models.Notification) error {
		_, err := fmt.Fprintf(w, "%s %s: %s\n", kindPrefix(n.Kind), n.Title, n.Body)
		return err
	}
}
