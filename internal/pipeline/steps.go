package pipeline

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/0xjam3z/webscanner/internal/config"
	"github.com/0xjam3z/webscanner/internal/grab"
	"github.com/0xjam3z/webscanner/internal/ipinfo"
	"github.com/0xjam3z/webscanner/internal/model"
	"github.com/0xjam3z/webscanner/internal/scan"
	"github.com/0xjam3z/webscanner/internal/target"
)

// grabPorts are the ports the grab and title phases cover. Scan hits
// on other ports are dropped by the splitter, so these two lists stay
// in lockstep with it.
var grabPorts = []string{"80", "443"}

// BuildListStep materializes the canonical target list from the
// detected target spec. For ASN JSON input this extracts IPv4 ranges;
// for list files it copies; for a single host it writes one line.
type BuildListStep struct {
	// builder produces the list file.
	builder *target.Builder

	// paths locates the canonical list in the workspace.
	paths config.Paths

	// logger for structured logging.
	logger *slog.Logger
}

// NewBuildListStep creates the list-building step.
func NewBuildListStep(builder *target.Builder, paths config.Paths, logger *slog.Logger) *BuildListStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &BuildListStep{builder: builder, paths: paths, logger: logger}
}

// Name returns the step name.
func (s *BuildListStep) Name() string {
	return "build_list"
}

// Do writes the canonical list and records the entry count.
func (s *BuildListStep) Do(_ context.Context, run *model.ScanRun) error {
	entries, err := s.builder.Build(run.Target, s.paths.List)
	if err != nil {
		return err
	}

	run.ListEntries = entries
	s.logger.Info("target list ready", "path", s.paths.List, "entries", entries)
	return nil
}

// PortScanStep runs the external port scanner over the canonical list.
type PortScanStep struct {
	// masscan is the scanner wrapper.
	masscan *scan.Masscan

	// paths locates the list and the scanner output.
	paths config.Paths

	// logger for structured logging.
	logger *slog.Logger
}

// NewPortScanStep creates the port-scanning step.
func NewPortScanStep(masscan *scan.Masscan, paths config.Paths, logger *slog.Logger) *PortScanStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &PortScanStep{masscan: masscan, paths: paths, logger: logger}
}

// Name returns the step name.
func (s *PortScanStep) Name() string {
	return "port_scan"
}

// Do invokes the scanner. The scanner writes its own output file; this
// step only surfaces its exit status.
func (s *PortScanStep) Do(ctx context.Context, _ *model.ScanRun) error {
	return s.masscan.Run(ctx, s.paths.List, s.paths.ScanResults)
}

// SplitStep routes scanner hits into per-port IP files.
type SplitStep struct {
	// paths locates the scanner output and the per-port files.
	paths config.Paths

	// logger for structured logging.
	logger *slog.Logger
}

// NewSplitStep creates the result-splitting step.
func NewSplitStep(paths config.Paths, logger *slog.Logger) *SplitStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SplitStep{paths: paths, logger: logger}
}

// Name returns the step name.
func (s *SplitStep) Name() string {
	return "split_results"
}

// Do splits the scan results and records the per-port open counts.
func (s *SplitStep) Do(_ context.Context, run *model.ScanRun) error {
	result, err := scan.SplitByPort(s.logger, s.paths.ScanResults, s.paths.Open80, s.paths.Open443)
	if err != nil {
		return err
	}

	run.Open80 = result.Open80
	run.Open443 = result.Open443
	return nil
}

// GrabStep fetches HTTP responses for every discovered IP, one grabber
// invocation per port, run concurrently.
type GrabStep struct {
	// zgrab is the grabber wrapper.
	zgrab *grab.Zgrab

	// paths locates the per-port IP files and grab outputs.
	paths config.Paths

	// logger for structured logging.
	logger *slog.Logger
}

// NewGrabStep creates the response-grabbing step.
func NewGrabStep(zgrab *grab.Zgrab, paths config.Paths, logger *slog.Logger) *GrabStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &GrabStep{zgrab: zgrab, paths: paths, logger: logger}
}

// Name returns the step name.
func (s *GrabStep) Name() string {
	return "grab_responses"
}

// Do runs the grabber for each port with discovered IPs. Ports whose
// IP file is empty are skipped. A grabber failure on one port is
// logged and does not fail the step: the title phase still reports
// whatever the other port produced.
func (s *GrabStep) Do(ctx context.Context, _ *model.ScanRun) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, port := range grabPorts {
		input := s.paths.OpenIPs(port)
		output := s.paths.GrabResults(port)

		if !fileHasContent(input) {
			s.logger.Info("no open IPs for port, skipping grab", "port", port)
			continue
		}

		g.Go(func() error {
			if err := s.zgrab.Run(ctx, port, input, output); err != nil {
				s.logger.Warn("grab failed", "port", port, "error", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// TitleStep extracts page titles from the grab outputs and writes the
// final report file, port 80 records first, then port 443.
type TitleStep struct {
	// extractor parses grabber output.
	extractor *grab.Extractor

	// paths locates the grab outputs and the report destination.
	paths config.Paths

	// logger for structured logging.
	logger *slog.Logger
}

// NewTitleStep creates the title-extraction step.
func NewTitleStep(extractor *grab.Extractor, paths config.Paths, logger *slog.Logger) *TitleStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &TitleStep{extractor: extractor, paths: paths, logger: logger}
}

// Name returns the step name.
func (s *TitleStep) Name() string {
	return "extract_titles"
}

// Do truncates the report file and appends one line per grab record.
// A missing grab output for a port (skipped or failed grab) is not an
// error; the report covers whatever exists.
func (s *TitleStep) Do(_ context.Context, run *model.ScanRun) error {
	report, err := os.Create(s.paths.Report)
	if err != nil {
		return err
	}
	defer report.Close()

	for _, port := range grabPorts {
		grabPath := s.paths.GrabResults(port)
		if _, err := os.Stat(grabPath); err != nil {
			s.logger.Debug("no grab output for port", "port", port)
			continue
		}

		records, err := s.extractor.Extract(grabPath, port, report)
		if err != nil {
			return err
		}
		run.Titles = append(run.Titles, records...)
	}

	s.logger.Info("report written", "path", s.paths.Report, "records", run.TitleCount())
	return nil
}

// EnrichStep annotates title records with GeoIP country names.
// It is only added to the pipeline when a GeoIP database is configured.
type EnrichStep struct {
	// resolver performs the lookups.
	resolver *ipinfo.Resolver

	// logger for structured logging.
	logger *slog.Logger
}

// NewEnrichStep creates the GeoIP enrichment step.
func NewEnrichStep(resolver *ipinfo.Resolver, logger *slog.Logger) *EnrichStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrichStep{resolver: resolver, logger: logger}
}

// Name returns the step name.
func (s *EnrichStep) Name() string {
	return "enrich_geoip"
}

// Do resolves a country for each title record. Lookup failures on
// individual records are logged and skipped; enrichment is best
// effort.
func (s *EnrichStep) Do(_ context.Context, run *model.ScanRun) error {
	for i := range run.Titles {
		country, err := s.resolver.Country(run.Titles[i].IP)
		if err != nil {
			s.logger.Debug("geoip lookup failed", "ip", run.Titles[i].IP, "error", err)
			continue
		}
		run.Titles[i].Country = country
	}
	return nil
}

// fileHasContent reports whether path exists and is non-empty.
func fileHasContent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
