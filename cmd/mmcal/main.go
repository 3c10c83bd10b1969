// Command mmcal maintains the almanac store and inspects the calendar engine.
//
// Usage:
//
//	mmcal build --from 2020 --to 2030 [--db data/almanac.db]
//	mmcal prune --from 2020 --to 2021 [--db data/almanac.db]
//	mmcal check --from 1000 --to 1500 [--strict]
//	mmcal show 2021-04-17
//	mmcal smoke --url http://localhost:8080
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/mmcalendar-api/internal/calendar"
	"github.com/zapponejosh/mmcalendar-api/internal/config"
	"github.com/zapponejosh/mmcalendar-api/internal/database"
	"github.com/zapponejosh/mmcalendar-api/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	resolver *calendar.DateResolver
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "mmcal",
		Short:        "Myanmar calendar almanac tool",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.SetupWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			a.resolver = calendar.NewDateResolver(cfg.Converter(), cfg.TZOffsetHours)
			return nil
		},
	}

	rootCmd.AddCommand(newBuildCmd(a))
	rootCmd.AddCommand(newPruneCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newSmokeCmd())

	return rootCmd
}

// =============================================================================
// build
// =============================================================================

type buildOptions struct {
	from   int
	to     int
	dbPath string
}

func newBuildCmd(a *app) *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Precompute Gregorian years into the almanac store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBuild(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.from, "from", 0, "first Gregorian year (required)")
	cmd.Flags().IntVar(&opts.to, "to", 0, "last Gregorian year (default: --from)")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "SQLite database path (default: DATABASE_PATH)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func (a *app) runBuild(cmd *cobra.Command, opts *buildOptions) error {
	if opts.to == 0 {
		opts.to = opts.from
	}
	if opts.from < 1 || opts.to < opts.from {
		return fmt.Errorf("invalid year range %d..%d", opts.from, opts.to)
	}

	ctx := commandContext(cmd)
	db, dbPath, err := a.openStore(ctx, opts.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	total := 0
	for year := opts.from; year <= opts.to; year++ {
		startJDN, endJDN, err := a.yearSpan(year, year)
		if err != nil {
			return err
		}

		n, err := db.BuildRange(ctx, a.resolver, startJDN, endJDN, database.SourceCLI)
		if err != nil {
			return fmt.Errorf("build %d: %w", year, err)
		}
		total += n
	}

	fmt.Fprintf(cmd.OutOrStdout(), "built %d days for %d..%d into %s\n", total, opts.from, opts.to, dbPath)
	return nil
}

// commandContext returns the command's context, or Background when run
// outside ExecuteContext.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// openStore opens and migrates the almanac store at path, falling back to
// DATABASE_PATH.
func (a *app) openStore(ctx context.Context, path string) (*database.DB, string, error) {
	if path == "" {
		path = a.cfg.DatabasePath
	}

	db, err := database.Open(database.DefaultConfig(path), a.log)
	if err != nil {
		return nil, "", err
	}
	if _, err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("migrate: %w", err)
	}
	return db, path, nil
}

// yearSpan returns the day numbers of Jan 1 of from and Dec 31 of to.
func (a *app) yearSpan(from, to int) (int, int, error) {
	startJDN, err := a.resolver.GregorianDayNumber(from, 1, 1)
	if err != nil {
		return 0, 0, err
	}
	endJDN, err := a.resolver.GregorianDayNumber(to, 12, 31)
	if err != nil {
		return 0, 0, err
	}
	return startJDN, endJDN, nil
}

// =============================================================================
// prune
// =============================================================================

func newPruneCmd(a *app) *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove Gregorian years from the almanac store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPrune(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.from, "from", 0, "first Gregorian year (required)")
	cmd.Flags().IntVar(&opts.to, "to", 0, "last Gregorian year (default: --from)")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "SQLite database path (default: DATABASE_PATH)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func (a *app) runPrune(cmd *cobra.Command, opts *buildOptions) error {
	if opts.to == 0 {
		opts.to = opts.from
	}
	if opts.from < 1 || opts.to < opts.from {
		return fmt.Errorf("invalid year range %d..%d", opts.from, opts.to)
	}

	ctx := commandContext(cmd)
	db, dbPath, err := a.openStore(ctx, opts.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	startJDN, endJDN, err := a.yearSpan(opts.from, opts.to)
	if err != nil {
		return err
	}

	n, err := db.DeleteRange(ctx, startJDN, endJDN)
	if err != nil {
		return fmt.Errorf("prune %d..%d: %w", opts.from, opts.to, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d days for %d..%d from %s\n", n, opts.from, opts.to, dbPath)
	return nil
}

// =============================================================================
// check
// =============================================================================

type checkOptions struct {
	from   int
	to     int
	strict bool
}

func newCheckCmd(a *app) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Scan Myanmar years for calculation errors and lookback cap hits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCheck(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.from, "from", 1100, "first Myanmar year")
	cmd.Flags().IntVar(&opts.to, "to", 1500, "last Myanmar year")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "exit non-zero when any year has a problem")

	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, opts *checkOptions) error {
	if opts.to < opts.from {
		return fmt.Errorf("invalid year range %d..%d", opts.from, opts.to)
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "YEAR\tTYPE\tERA\tCALC ERROR\tCAP REACHED")

	log := logger.Component("check")
	log.Debug("scanning years", slog.Int("from", opts.from), slog.Int("to", opts.to))

	problems := 0
	for my := opts.from; my <= opts.to; my++ {
		ym := calendar.CalculateYear(my)
		if !ym.CalcError && !ym.CapReached {
			continue
		}
		problems++
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%t\n",
			my, ym.Type, calendar.EraConstantsFor(my).ID, ym.CalcError, ym.CapReached)
	}
	if problems > 0 {
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "checked %d years (%d..%d): %d problem years\n",
		opts.to-opts.from+1, opts.from, opts.to, problems)

	if opts.strict && problems > 0 {
		return fmt.Errorf("%d problem years", problems)
	}
	return nil
}

// =============================================================================
// show
// =============================================================================

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <YYYY-MM-DD>",
		Short: "Print one resolved day as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd, args[0])
		},
	}
}

func (a *app) runShow(cmd *cobra.Command, date string) error {
	y, m, d, err := calendar.ParseCivilDate(date)
	if err != nil {
		return fmt.Errorf("invalid date %q, use YYYY-MM-DD", date)
	}

	day, err := a.resolver.ResolveGregorian(y, m, d)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(day)
}
