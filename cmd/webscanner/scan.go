package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/0xjam3z/webscanner/internal/config"
	"github.com/0xjam3z/webscanner/internal/database"
	"github.com/0xjam3z/webscanner/internal/grab"
	"github.com/0xjam3z/webscanner/internal/ipinfo"
	"github.com/0xjam3z/webscanner/internal/model"
	"github.com/0xjam3z/webscanner/internal/pipeline"
	"github.com/0xjam3z/webscanner/internal/report"
	"github.com/0xjam3z/webscanner/internal/scan"
	"github.com/0xjam3z/webscanner/internal/target"
	"github.com/0xjam3z/webscanner/internal/tools"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <target>",
		Short: "Scan a target range and report web page titles",
		Long: `Scan discovers hosts with open HTTP ports in the target range, fetches
each one's front page, and writes a report mapping IPs to page titles.

The target may be:
- A single IP, CIDR block, or IP range (passed to the scanner verbatim)
- A pre-built target list file (with --list)
- An ASN prefix table in JSON form (detected by the .json extension)

Examples:
  # Scan a CIDR block
  webscanner scan 203.0.113.0/24

  # Scan targets from a pre-built list file
  webscanner scan --list targets.txt

  # Extract Norwegian ranges from an ASN table and scan them
  webscanner scan --country Norway 2116.json

  # Reprocess existing scanner output without re-scanning
  webscanner scan --skip-scan 203.0.113.0/24

  # Print a JSON run summary
  webscanner scan --json 203.0.113.0/24`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScanCmd,
	}

	// Target flags
	cmd.Flags().BoolP("list", "l", false,
		"Treat the target argument as a pre-built list file")
	cmd.Flags().String("country", "",
		"Restrict ASN JSON extraction to one country (JSON input only)")

	// Scanner flags
	cmd.Flags().String("ports", config.DefaultPorts,
		"Comma-separated ports passed to the scanner")
	cmd.Flags().String("rate", config.DefaultRate,
		"Scanner packet rate (packets per second)")
	cmd.Flags().Bool("skip-scan", false,
		"Reprocess existing scanner output without invoking external tools")

	// Workspace flags
	cmd.Flags().StringP("workdir", "w", ".",
		"Workspace directory for the target list and intermediate files")
	cmd.Flags().StringP("output", "o", config.DefaultReportFile,
		"Report file path (relative paths are placed in the workspace)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webscanner in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Print a JSON run summary (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print a Markdown run summary (mutually exclusive with --json)")

	// Enrichment and history flags
	cmd.Flags().String("geoip", "",
		"GeoLite2 database path for country enrichment")
	cmd.Flags().Bool("no-save", false,
		"Do not record this run in the history database")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the
// optional defaults file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	if len(args) > 0 {
		cfg.Input = args[0]
	}

	var err error

	cfg.ListMode, err = cmd.Flags().GetBool("list")
	if err != nil {
		return nil, err
	}

	cfg.CountryFilter, err = cmd.Flags().GetString("country")
	if err != nil {
		return nil, err
	}

	cfg.Ports, err = cmd.Flags().GetString("ports")
	if err != nil {
		return nil, err
	}

	cfg.Rate, err = cmd.Flags().GetString("rate")
	if err != nil {
		return nil, err
	}

	cfg.SkipScan, err = cmd.Flags().GetBool("skip-scan")
	if err != nil {
		return nil, err
	}

	cfg.WorkDir, err = cmd.Flags().GetString("workdir")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.GeoIPPath, err = cmd.Flags().GetString("geoip")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	// Load defaults from the configuration file, if one exists.
	// If the user explicitly specified a config file path, error if not
	// found. If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg, changedFlags(cmd))
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// changedFlags collects which overridable flags the user set
// explicitly; file values never override those.
func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := make(map[string]bool)
	for _, name := range []string{"ports", "rate", "workdir", "output", "geoip"} {
		if cmd.Flags().Changed(name) {
			changed[name] = true
		}
	}
	return changed
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return slog.New(handler)
}

// runScan detects the target, assembles the pipeline, and executes it.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	spec, err := target.Detect(cfg.Input, cfg.ListMode, cfg.CountryFilter)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.WorkDir, 0750); err != nil {
		return fmt.Errorf("failed to create workspace %s: %w", cfg.WorkDir, err)
	}
	paths := config.NewPaths(cfg.WorkDir, cfg.ReportFile)

	logger.Info("starting scan",
		"input", cfg.Input,
		"kind", spec.Kind,
		"ports", cfg.Ports,
		"rate", cfg.Rate,
		"skipScan", cfg.SkipScan,
	)

	p, cleanup, err := assemblePipeline(cfg, paths, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	run := model.NewScanRun(cfg.Input, spec)

	fmt.Printf("Scanning %s...\n", cfg.Input)
	startTime := time.Now()
	execErr := p.Execute(ctx, run)
	run.Elapsed = time.Since(startTime)

	if execErr != nil {
		fmt.Fprintf(os.Stderr, "Scan error: %v\n", execErr)
	} else {
		fmt.Printf("Scan completed in %s\n\n", run.Elapsed.Round(time.Millisecond))
	}

	if err := outputSummary(cfg, run); err != nil {
		logger.Error("summary failed", "error", err)
	}

	if cfg.SaveToDB {
		if err := saveRun(ctx, cfg, run, logger); err != nil {
			logger.Error("failed to save run", "error", err)
		}
	}

	return execErr
}

// assemblePipeline builds the step list for one run. Steps that invoke
// external tools are omitted in skip-scan mode, which reprocesses the
// scanner and grabber output already in the workspace. The returned
// cleanup releases the GeoIP resolver, if one was opened.
func assemblePipeline(cfg *config.Config, paths config.Paths, logger *slog.Logger) (*pipeline.Pipeline, func(), error) {
	p := pipeline.New(pipeline.WithLogger(logger))
	cleanup := func() {}

	if !cfg.SkipScan {
		masscanPath, err := tools.Locate("masscan", cfg.WorkDir)
		if err != nil {
			return nil, nil, err
		}
		zgrabPath, err := tools.Locate("zgrab2", cfg.WorkDir)
		if err != nil {
			return nil, nil, err
		}

		builder := target.NewBuilder(target.WithLogger(logger))
		masscan := scan.NewMasscan(masscanPath, cfg.Ports, cfg.Rate, scan.WithMasscanLogger(logger))
		zgrab := grab.NewZgrab(zgrabPath, grab.WithZgrabLogger(logger))

		p.AddSteps(
			pipeline.NewBuildListStep(builder, paths, logger),
			pipeline.NewPortScanStep(masscan, paths, logger),
			pipeline.NewSplitStep(paths, logger),
			pipeline.NewGrabStep(zgrab, paths, logger),
		)
	} else {
		p.AddStep(pipeline.NewSplitStep(paths, logger))
	}

	extractor := grab.NewExtractor(grab.WithExtractorLogger(logger))
	p.AddStep(pipeline.NewTitleStep(extractor, paths, logger))

	if cfg.GeoIPPath != "" {
		resolver, err := ipinfo.NewResolver(cfg.GeoIPPath)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() {
			_ = resolver.Close() //nolint:errcheck // Best effort cleanup
		}
		p.AddStep(pipeline.NewEnrichStep(resolver, logger))
	}

	return p, cleanup, nil
}

// outputSummary prints the run summary in the requested format.
// The title report file itself is written by the pipeline; the summary
// describes the run to the terminal.
func outputSummary(cfg *config.Config, run *model.ScanRun) error {
	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(os.Stdout, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(os.Stdout)
	default:
		w = report.NewTextWriter(os.Stdout)
	}

	_, err := w.Write(run)
	return err
}

// saveRun records the run in the history database.
func saveRun(ctx context.Context, cfg *config.Config, run *model.ScanRun, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runID, err := db.SaveRun(ctx, run)
	if err != nil {
		return err
	}

	logger.Info("run saved", "id", runID, "dir", cfg.DBDir, "path", filepath.Join(cfg.DBDir, "webscanner.db"))
	return nil
}
