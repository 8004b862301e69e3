package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/warp/shift-hours/accounting"
	"github.com/warp/shift-hours/api"
	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/config"
	"github.com/warp/shift-hours/shift"
	"github.com/warp/shift-hours/store/sqlite"
)

// App holds the CLI application state.
type App struct {
	root *cobra.Command
}

// NewApp creates the command tree.
func NewApp() *App {
	a := &App{}

	a.root = &cobra.Command{
		Use:   "shift-hours",
		Short: "Worked-hours accounting for air traffic control rosters",
		Long: `shift-hours registers worked intervals per controller, consolidates them
by sector and computes the monthly regulatory metrics (HT, HE, HCP, HAC)
with the closing balance carried into the next month.`,
		SilenceUsage: true,
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.metricsCmd())
	a.root.AddCommand(a.chainCmd())
	a.root.AddCommand(a.durationCmd())
	a.root.AddCommand(a.initConfigCmd())

	return a
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shift-hours %s\n", Version)
		},
	}
}

// =============================================================================
// SERVE
// =============================================================================

func (a *App) serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Configuration is read from the TOML file, then a .env file in the working
directory, then SHIFTHOURS_* environment variables.

Example:
  shift-hours serve --config ./config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath(), "Path to the TOML configuration file")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	logger := api.NewLogger(os.Stdout, level)

	// Initialize store
	store, err := sqlite.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer store.Close()
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}

	svc := accounting.NewService(store, logger)
	svc.Defaults = cfg.UnitDefaults()

	handler := api.NewHandler(svc, cfg.HighAccrualThreshold())
	router := api.NewRouter(handler, logger, cfg.Server.AllowedOrigins)

	if cfg.Scheduler.Enabled {
		scheduler := api.NewMonthCloseScheduler(svc, logger)
		scheduler.CheckInterval = cfg.SchedulerInterval()
		if scheduler.Source, err = balance.ParseHoursSource(cfg.Scheduler.Source); err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			"port", cfg.Server.Port,
			"db_path", cfg.Storage.DBPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// =============================================================================
// OFFLINE HELPERS
// =============================================================================

func (a *App) metricsCmd() *cobra.Command {
	var (
		ht         string
		standard   string
		percentage string
		sa         string
		override   string
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Compute HE, HCP and HAC for one month",
		Long: `Compute the monthly metrics without a database.

--sa is the previous month's closing balance; --override replaces it as
a manual adjustment would.

Example:
  shift-hours metrics --ht 192 --standard 180 --percentage 70 --sa 3.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printMetrics(cmd.OutOrStdout(), ht, standard, percentage, sa, override)
		},
	}

	cmd.Flags().StringVar(&ht, "ht", "", "Hours worked in the month (required)")
	cmd.Flags().StringVar(&standard, "standard", balance.DefaultStandardMonthlyHours.String(), "Standard monthly hours")
	cmd.Flags().StringVar(&percentage, "percentage", balance.DefaultPaymentPercentage.String(), "Payment percentage")
	cmd.Flags().StringVar(&sa, "sa", "", "Previous month's HAC")
	cmd.Flags().StringVar(&override, "override", "", "Manual starting balance")

	_ = cmd.MarkFlagRequired("ht")

	return cmd
}

func printMetrics(w io.Writer, ht, standard, percentage, sa, override string) error {
	parse := func(name, v string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, v)
		}
		return d, nil
	}

	hours, err := parse("ht", ht)
	if err != nil {
		return err
	}
	if hours.IsNegative() {
		return fmt.Errorf("--ht: must not be negative")
	}
	cfg := balance.DefaultUnitConfig()
	if cfg.StandardMonthlyHours, err = parse("standard", standard); err != nil {
		return err
	}
	if cfg.PaymentPercentage, err = parse("percentage", percentage); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	month := shift.DateOf(time.Now()).CalendarMonth()

	var prior *balance.Metrics
	if sa != "" {
		hac, err := parse("sa", sa)
		if err != nil {
			return err
		}
		prior = &balance.Metrics{HAC: hac}
	}
	var adj *balance.Adjustment
	if override != "" {
		v, err := parse("override", override)
		if err != nil {
			return err
		}
		adj = &balance.Adjustment{PersonID: "cli", Month: month, Override: v, Reason: "command line"}
		if err := adj.Validate(); err != nil {
			return err
		}
	}

	m := balance.ComputeMonth("cli", month, hours, cfg, adj, prior, balance.SourceRegistry)
	fmt.Fprintf(w, "HT   %8s\n", m.HT.StringFixed(balance.Precision))
	fmt.Fprintf(w, "HE   %8s\n", m.HE.StringFixed(balance.Precision))
	fmt.Fprintf(w, "SA   %8s  (%s)\n", m.SA.StringFixed(balance.Precision), m.SASource)
	fmt.Fprintf(w, "HCP  %8s\n", m.HCP.StringFixed(balance.Precision))
	fmt.Fprintf(w, "HAC  %8s\n", m.HAC.StringFixed(balance.Precision))
	return nil
}

func (a *App) chainCmd() *cobra.Command {
	var (
		from       string
		standard   string
		percentage string
		opening    string
	)

	cmd := &cobra.Command{
		Use:   "chain <ht>...",
		Short: "Compute consecutive months, carrying HAC forward",
		Long: `Compute one row per HT value, starting at --from. Each month's HAC is
the next month's SA.

Example:
  shift-hours chain --from 2025-01 --standard 180 --percentage 50 200 170 190`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printChain(cmd.OutOrStdout(), from, standard, percentage, opening, args)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First month (YYYY-MM, required)")
	cmd.Flags().StringVar(&standard, "standard", balance.DefaultStandardMonthlyHours.String(), "Standard monthly hours")
	cmd.Flags().StringVar(&percentage, "percentage", balance.DefaultPaymentPercentage.String(), "Payment percentage")
	cmd.Flags().StringVar(&opening, "sa", "", "HAC of the month before --from")

	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func printChain(w io.Writer, fromRaw, standard, percentage, opening string, htArgs []string) error {
	from, err := shift.ParseMonth(fromRaw)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	cfg := balance.DefaultUnitConfig()
	if cfg.StandardMonthlyHours, err = decimal.NewFromString(standard); err != nil {
		return fmt.Errorf("--standard: %q is not a number", standard)
	}
	if cfg.PaymentPercentage, err = decimal.NewFromString(percentage); err != nil {
		return fmt.Errorf("--percentage: %q is not a number", percentage)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	hours := make(map[shift.Month]decimal.Decimal, len(htArgs))
	last := from
	for i, raw := range htArgs {
		ht, err := decimal.NewFromString(raw)
		if err != nil || ht.IsNegative() {
			return fmt.Errorf("HT %q is not a non-negative number", raw)
		}
		last = from.Start().AddMonths(i).CalendarMonth()
		hours[last] = ht
	}

	var prior *balance.Metrics
	if opening != "" {
		hac, err := decimal.NewFromString(opening)
		if err != nil {
			return fmt.Errorf("--sa: %q is not a number", opening)
		}
		prior = &balance.Metrics{Month: from.Previous(), HAC: hac}
	}

	rows, err := balance.Chain("cli", balance.FillMonths(from, last, hours), cfg, nil, prior, balance.SourceRegistry)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%-8s %8s %8s %8s %8s %8s\n", "MONTH", "HT", "HE", "SA", "HCP", "HAC")
	for _, m := range rows {
		fmt.Fprintf(w, "%-8s %8s %8s %8s %8s %8s\n", m.Month,
			m.HT.StringFixed(balance.Precision), m.HE.StringFixed(balance.Precision),
			m.SA.StringFixed(balance.Precision), m.HCP.StringFixed(balance.Precision),
			m.HAC.StringFixed(balance.Precision))
	}
	return nil
}

func (a *App) durationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration <start> <end>",
		Short: "Hours between two hhmm clocks",
		Long: `Print the hours between two hhmm clocks. An end before the start
is taken on the following day.

Example:
  shift-hours duration 2200 0600`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printDuration(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func printDuration(w io.Writer, startRaw, endRaw string) error {
	start, err := shift.ParseClock(startRaw)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := shift.ParseClock(endRaw)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if err := shift.ValidateInterval(start, &end); err != nil {
		return err
	}

	hours := shift.Duration(start, end)
	night := shift.IsNightWindow(start) || shift.CrossesMidnight(start, end)
	fmt.Fprintf(w, "%s-%s  %s h  (%s)  night=%t\n",
		start.Display(), end.Display(), hours.StringFixed(balance.Precision), shift.FormatHours(hours), night)
	return nil
}

func (a *App) initConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Default().SaveTo(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", config.DefaultConfigPath(), "Where to write the file")
	return cmd
}
