package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/sentinel/internal/batch"
	"github.com/nao1215/sentinel/internal/classifier"
	"github.com/nao1215/sentinel/internal/config"
	"github.com/nao1215/sentinel/internal/model"
	"github.com/nao1215/sentinel/internal/report"
	"github.com/nao1215/sentinel/internal/scenario"
	"github.com/nao1215/sentinel/internal/session"
	"github.com/spf13/cobra"
)

var (
	// errNoInput is returned when scan is given nothing to scan.
	errNoInput = errors.New("nothing to scan (give text, --scenario or --all)")

	// errConflictingInput is returned when more than one input is given.
	errConflictingInput = errors.New("text, --scenario and --all are mutually exclusive")

	// errThreatDetected is returned with --fail-on-threat when a scan
	// offered a protective action.
	errThreatDetected = errors.New("threat detected")
)

// scanInput describes what one scan invocation runs.
type scanInput struct {
	text     string
	scenario string
	all      bool
	context  model.AppContext
}

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [text]",
		Short: "Scan text for fraud, phishing and social engineering",
		Long: `Scan runs one input through a scan session and prints the verdict.

The input is free text from the arguments ("-" reads standard input),
a built-in or configured scenario, or every scenario at once.

Examples:
  # Scan a message
  sentinel scan "Dear customer, your KYC is pending. Update at http://kyc-update.example"

  # Scan text piped from another program
  pbpaste | sentinel scan -

  # Scan as if the text came from the browser
  sentinel scan --context browser "Enter the OTP sent to your phone"

  # Replay a built-in scenario offline
  sentinel scan --offline --scenario phone

  # Scan every scenario, four at a time, and write a Markdown report
  sentinel scan --all --batch 4 --markdown -o report.md

  # Use a SOCKS5 proxy for Gemini requests
  sentinel scan --proxy 127.0.0.1:1080 "Pay the fee to release your parcel"`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	// Input flags
	cmd.Flags().StringP("context", "C", string(model.ContextMessages),
		"App context of free text (messages, browser, phone, wallet, qr, dashboard)")
	cmd.Flags().StringP("scenario", "s", "",
		"Scan a scenario by name (see 'sentinel scenarios')")
	cmd.Flags().Bool("all", false,
		"Scan every scenario concurrently")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent scans with --all")

	addClassifierFlags(cmd)

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("fail-on-threat", false,
		"Exit with an error when a scan offers a protective action")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, in, err := buildScanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	failOnThreat, err := cmd.Flags().GetBool("fail-on-threat")
	if err != nil {
		return err
	}

	reports, err := runScan(ctx, cfg, in, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
	if err != nil {
		return err
	}

	if failOnThreat {
		for _, r := range reports {
			if r.ActionOffered {
				return fmt.Errorf("%w: %s scored %d", errThreatDetected, r.Source, r.RiskScore())
			}
		}
	}
	return nil
}

// buildScanConfig creates the config and the scan input from flags and args.
func buildScanConfig(cmd *cobra.Command, args []string) (*config.Config, scanInput, error) {
	var in scanInput

	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, in, err
	}

	if err := applyClassifierFlags(cmd, cfg); err != nil {
		return nil, in, err
	}

	flags := cmd.Flags()
	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return nil, in, err
		}
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, in, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, in, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, in, err
	}

	if in.scenario, err = flags.GetString("scenario"); err != nil {
		return nil, in, err
	}
	if in.all, err = flags.GetBool("all"); err != nil {
		return nil, in, err
	}

	contextName, err := flags.GetString("context")
	if err != nil {
		return nil, in, err
	}
	if in.context, err = model.ParseAppContext(contextName); err != nil {
		return nil, in, err
	}

	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, in, fmt.Errorf("failed to read standard input: %w", err)
		}
		in.text = strings.TrimSpace(string(data))
	} else {
		in.text = strings.TrimSpace(strings.Join(args, " "))
	}

	given := 0
	for _, set := range []bool{in.text != "", in.scenario != "", in.all} {
		if set {
			given++
		}
	}
	switch given {
	case 0:
		return nil, in, errNoInput
	case 1:
	default:
		return nil, in, errConflictingInput
	}

	return cfg, in, nil
}

// scanJobs resolves the input into jobs.
func scanJobs(catalog *scenario.Catalog, in scanInput) ([]batch.Job, error) {
	switch {
	case in.all:
		scenarios := catalog.All()
		jobs := make([]batch.Job, 0, len(scenarios))
		for _, s := range scenarios {
			jobs = append(jobs, batch.FromScenario(s))
		}
		return jobs, nil
	case in.scenario != "":
		s, err := catalog.Get(in.scenario)
		if err != nil {
			return nil, err
		}
		return []batch.Job{batch.FromScenario(s)}, nil
	default:
		return []batch.Job{{
			Name:    "manual",
			Text:    in.text,
			Source:  model.SourceManual,
			Context: in.context,
		}}, nil
	}
}

// runScan executes the scan and writes the report.
// Progress goes to status so that stdout carries only the report.
func runScan(
	ctx context.Context,
	cfg *config.Config,
	in scanInput,
	stdout, status io.Writer,
	logger *slog.Logger,
) ([]*model.ScanReport, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	jobs, err := scanJobs(catalog, in)
	if err != nil {
		return nil, err
	}

	cls, err := newClassifier(ctx, cfg, catalog, logger)
	if err != nil {
		return nil, err
	}

	processor := newProcessor(cls, cfg, logger)

	output, closeOutput, err := openOutput(cfg.ReportFile, stdout)
	if err != nil {
		return nil, err
	}
	defer closeOutput()

	writer := newReportWriter(cfg, output)

	if !in.all {
		job := jobs[0]
		fmt.Fprintf(status, "Scanning %s input with %s...\n", job.Source, cls.Name())
		startTime := time.Now()

		r, err := processor.Run(ctx, job)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		fmt.Fprintf(status, "Scan completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))

		if _, err := writer.Write(r); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		return []*model.ScanReport{r}, nil
	}

	fmt.Fprintf(status, "Starting batch scan of %d scenarios (concurrency: %d)...\n\n",
		len(jobs), cfg.BatchSize)

	b, err := processor.ProcessBatch(ctx, jobs)
	if err != nil {
		return nil, fmt.Errorf("batch scan failed: %w", err)
	}
	fmt.Fprintf(status, "Batch scan completed in %s\n\n", b.Duration.Round(time.Millisecond))

	if _, err := writer.WriteBatch(b); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return b.Reports, nil
}

// newProcessor creates a batch processor whose controllers share cls.
func newProcessor(cls classifier.Classifier, cfg *config.Config, logger *slog.Logger) *batch.Processor {
	timings := sessionTimings(cfg)
	return batch.NewProcessor(
		func() *session.Controller {
			return session.NewController(cls,
				session.WithTimings(timings),
				session.WithLogger(logger),
			)
		},
		batch.WithConcurrency(cfg.BatchSize),
		batch.WithLogger(logger),
	)
}

// newReportWriter selects the report format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output,
			report.WithPrettyPrint(),
			report.WithVersion(getVersion()),
		)
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

// openOutput returns the report destination. An empty path means stdout.
// The returned close function is always safe to call.
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports contain the scanned text, so only the owner may read them.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil //nolint:errcheck // Best effort close
}
