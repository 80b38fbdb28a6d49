// Package pipeline runs the full ETL sequence: clean, parse, optionally
// filter, enrich against the product catalog, aggregate, and render the
// report. Stages run synchronously and each one hands a fresh collection
// to the next.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/salespipe-dev/salespipe/internal/analytics"
	"github.com/salespipe-dev/salespipe/internal/catalog"
	"github.com/salespipe-dev/salespipe/internal/cleaner"
	"github.com/salespipe-dev/salespipe/internal/config"
	"github.com/salespipe-dev/salespipe/internal/encio"
	"github.com/salespipe-dev/salespipe/internal/filter"
	"github.com/salespipe-dev/salespipe/internal/model"
	"github.com/salespipe-dev/salespipe/internal/report"
	"github.com/salespipe-dev/salespipe/internal/runlog"
	"github.com/salespipe-dev/salespipe/internal/txfile"
)

// File names written under the output directory.
const (
	CleanedFile  = "first_question.txt"
	EnrichedFile = "enriched_sales_data.txt"
	ReportFile   = "sales_report.txt"
)

// Pipeline wires the ETL stages together.
type Pipeline struct {
	cfg     *config.Config
	root    string // project root, holds logs/
	log     zerolog.Logger
	catalog *catalog.Client
	now     func() time.Time
}

// New creates a Pipeline rooted at root.
func New(cfg *config.Config, root string, logger zerolog.Logger) *Pipeline {
	timeout := time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Pipeline{
		cfg:     cfg,
		root:    root,
		log:     logger,
		catalog: catalog.NewClient(cfg.Catalog.BaseURL, timeout),
		now:     time.Now,
	}
}

// Run executes the pipeline once. A failed catalog fetch degrades to an
// empty catalog; a cleaning or parsing failure on the input as a whole is
// fatal, individual bad rows are not.
func (p *Pipeline) Run(ctx context.Context, opts filter.Options) error {
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Logger()
	var audit []runlog.Entry

	record := func(stage, details string) {
		audit = append(audit, runlog.Entry{
			Timestamp: p.now(),
			RunID:     runID,
			Stage:     stage,
			Details:   details,
		})
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	// Stage 1: clean.
	cleanedPath := filepath.Join(p.cfg.OutputDir, CleanedFile)
	sum, err := cleaner.CleanFile(p.cfg.Input, cleanedPath)
	if err != nil {
		return fmt.Errorf("cleaning: %w", err)
	}
	log.Info().
		Int("total", sum.Total).
		Int("invalid", sum.Invalid).
		Int("valid", sum.Valid()).
		Msg("cleaned input")
	record("clean", fmt.Sprintf("total=%d invalid=%d valid=%d", sum.Total, sum.Invalid, sum.Valid()))

	// Stage 2: parse.
	raw, err := encio.ReadFile(cleanedPath)
	if err != nil {
		return fmt.Errorf("reading cleaned data: %w", err)
	}
	txns, rejections, err := txfile.ReadTransactions(raw)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	for _, r := range rejections {
		log.Warn().Int("line", r.Line).Err(r.Err).Msg("row rejected during parse")
	}
	record("parse", fmt.Sprintf("parsed=%d rejected=%d", len(txns), len(rejections)))

	// Stage 3: optional filter.
	if opts.Enabled() {
		var fsum filter.Summary
		txns, fsum = filter.Apply(txns, opts)
		log.Info().
			Int("input", fsum.TotalInput).
			Int("invalid", fsum.Invalid).
			Int("by_region", fsum.FilteredByRegion).
			Int("by_amount", fsum.FilteredByAmount).
			Int("final", fsum.FinalCount).
			Msg("filtered transactions")
		record("filter", fmt.Sprintf("input=%d final=%d", fsum.TotalInput, fsum.FinalCount))
	}

	if len(txns) == 0 {
		return fmt.Errorf("no valid transactions to report on")
	}

	// Stage 4: enrich.
	products, err := p.catalog.FetchProducts(ctx, p.cfg.Catalog.Limit)
	if err != nil {
		log.Warn().Err(err).Msg("catalog fetch failed, continuing without enrichment")
		products = nil
	}
	mapping := catalog.NewMapping(products)
	enriched := catalog.Enrich(txns, mapping)
	matched := countMatched(enriched)
	log.Info().
		Int("catalog_size", mapping.Len()).
		Int("matched", matched).
		Int("unmatched", len(enriched)-matched).
		Msg("enriched transactions")
	record("enrich", fmt.Sprintf("catalog=%d matched=%d", mapping.Len(), matched))

	p.writeEnrichedArtifact(log, enriched)

	// Stage 5: aggregate and render.
	peak, err := analytics.PeakSalesDay(txns)
	if err != nil {
		return fmt.Errorf("finding peak day: %w", err)
	}

	data := report.Data{
		GeneratedAt:  p.now(),
		Transactions: txns,
		Enriched:     enriched,
		Regions:      analytics.RegionWise(txns),
		TopProducts:  analytics.TopProducts(txns, p.cfg.Report.TopProducts),
		Customers:    analytics.Customers(txns),
		Daily:        analytics.DailyTrend(txns),
		Peak:         peak,
		Low:          analytics.LowPerformers(txns, p.cfg.Report.LowQuantityThreshold),
		Currency:     p.cfg.Report.Currency,
		TopCustomers: p.cfg.Report.TopCustomers,
	}

	reportPath := filepath.Join(p.cfg.OutputDir, ReportFile)
	f, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()
	if err := report.Render(f, data); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	record("report", fmt.Sprintf("records=%d path=%s", len(txns), reportPath))

	if err := runlog.Append(p.root, audit); err != nil {
		log.Warn().Err(err).Msg("could not append run log")
	}

	log.Info().Str("path", reportPath).Msg("report written")
	return nil
}

// writeEnrichedArtifact persists the enriched dataset as a checkpoint.
// Best effort: the in-memory results stand on their own.
func (p *Pipeline) writeEnrichedArtifact(log zerolog.Logger, enriched []model.Transaction) {
	path := filepath.Join(p.cfg.OutputDir, EnrichedFile)
	f, err := os.Create(path)
	if err != nil {
		log.Warn().Err(err).Msg("could not write enriched artifact")
		return
	}
	defer f.Close()
	if err := txfile.WriteEnriched(f, enriched); err != nil {
		log.Warn().Err(err).Msg("could not write enriched artifact")
	}
}

func countMatched(txns []model.Transaction) int {
	var n int
	for _, txn := range txns {
		if txn.Enrichment.Matched {
			n++
		}
	}
	return n
}
