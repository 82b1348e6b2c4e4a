package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roivaz/adjust-mcp/internal/adjust"
	"github.com/roivaz/adjust-mcp/internal/config"
	"github.com/roivaz/adjust-mcp/internal/logging"
	"github.com/roivaz/adjust-mcp/internal/mcp"
	"github.com/roivaz/adjust-mcp/internal/mcp/tools"
)

func main() {
	root := newRootCommand()
	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("adjust-mcp: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "adjust-mcp [token]",
		Short:        "Adjust reporting MCP server",
		Long:         "Serves the Adjust report service as MCP tools. The token comes from --token, ADJUST_AUTH_TOKEN, or the first argument.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	root.PersistentFlags().String("token", "", "Adjust API token")
	root.PersistentFlags().String("base-url", "", "Adjust API base URL")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("http-timeout", "", "Timeout for Adjust API requests")
	root.PersistentFlags().String("presets-file", "", "YAML file adding or overriding standard report types")
	root.PersistentFlags().String("transport", "", "MCP transport (stdio or http)")
	root.PersistentFlags().String("http-addr", "", "Listen address for the http transport")

	root.AddCommand(newStandardReportCommand())
	return root
}

type app struct {
	settings config.Settings
	zap      *zap.Logger
	log      logging.Logger
	client   *adjust.Client
}

func setup(args []string) (*app, error) {
	settings, err := config.Load(args)
	if err != nil {
		return nil, err
	}

	z, err := logging.NewZap(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.FromZap(z)

	presets, err := adjust.LoadPresets(settings.PresetsFile)
	if err != nil {
		return nil, err
	}

	client, err := adjust.NewClient(adjust.Config{
		Token:   settings.Token,
		BaseURL: settings.BaseURL,
		Timeout: settings.HTTPTimeout,
		Presets: presets,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init adjust client: %w", err)
	}

	return &app{settings: settings, zap: z, log: logger, client: client}, nil
}

func run(cmd *cobra.Command, args []string) error {
	rt, err := setup(args)
	if err != nil {
		return err
	}
	defer func() { _ = rt.zap.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcp.New(mcp.DefaultConfig(rt.client, rt.log))
	rt.log.Info("starting adjust MCP server", "transport", rt.settings.Transport, "base_url", rt.settings.BaseURL, "report_types", rt.client.Presets().Names())

	if rt.settings.Transport == config.TransportHTTP {
		return srv.ServeHTTP(ctx, rt.settings.HTTPAddr)
	}
	return srv.ServeStdio(ctx, logging.StdLogger(rt.zap))
}

func newStandardReportCommand() *cobra.Command {
	var reportType, dateRange, appTokens string

	cmd := &cobra.Command{
		Use:   "standard-report",
		Short: "Fetch a standard report once and print it as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(nil)
			if err != nil {
				return err
			}
			defer func() { _ = rt.zap.Sync() }()

			report, err := rt.client.StandardReport(cmd.Context(), reportType, dateRange, adjust.SplitList(appTokens))
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), tools.FormatError(err))
				return err
			}
			preset, _ := rt.client.Presets().Get(reportType)

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tools.FormatReport(tools.StandardReportTitle(preset, dateRange), report))
			return err
		},
	}

	cmd.Flags().StringVar(&reportType, "report-type", tools.DefaultReportType, "Report type")
	cmd.Flags().StringVar(&dateRange, "date-range", tools.DefaultDateRange, "Date period, e.g. last_7_days")
	cmd.Flags().StringVar(&appTokens, "app-tokens", "", "Comma-separated app tokens to filter by")
	return cmd
}
