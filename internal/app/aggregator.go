package app

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/sgmodkit/sgmerge/internal/cache"
	"github.com/sgmodkit/sgmerge/internal/config"
	"github.com/sgmodkit/sgmerge/internal/domain"
	"github.com/sgmodkit/sgmerge/internal/fetcher"
	"github.com/sgmodkit/sgmerge/internal/manifest"
	"github.com/sgmodkit/sgmerge/internal/module"
	"github.com/sgmodkit/sgmerge/internal/output"
	"github.com/sgmodkit/sgmerge/internal/utils"
)

// Fallback header metadata when neither the CLI nor the manifest provide
// any.
const (
	DefaultName = "Aggregated Module"
	DefaultDesc = "Auto-generated by sgmerge"
)

// Aggregator drives the fetch-parse-merge pipeline: every manifest rule
// is fetched (possibly in parallel), parsed, and folded into one merge
// state strictly in manifest order, then the result is rendered and
// written once.
type Aggregator struct {
	cfg          *config.Config
	fetcher      domain.Fetcher
	cache        domain.Cache
	writer       *output.Writer
	logger       *utils.Logger
	name         string
	desc         string
	showProgress bool
}

// AggregatorOptions contains options for creating an Aggregator
type AggregatorOptions struct {
	Config *config.Config

	// Name and Desc override the manifest's header metadata.
	Name string
	Desc string

	ShowProgress bool

	// RefreshCache clears the fetch cache before the run.
	RefreshCache bool

	// Fetcher and Logger may be injected for testing.
	Fetcher domain.Fetcher
	Logger  *utils.Logger
}

// NewAggregator creates a new aggregator with the given configuration
func NewAggregator(opts AggregatorOptions) (*Aggregator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
	}

	var fetchCache domain.Cache
	if cfg.Cache.Enabled {
		c, err := cache.NewBadgerCache(cache.Options{
			Directory: utils.ExpandPath(cfg.Cache.Directory),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		if opts.RefreshCache {
			if err := c.Clear(); err != nil {
				_ = c.Close()
				return nil, fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		fetchCache = c
	}

	src := opts.Fetcher
	if src == nil {
		client, err := fetcher.NewClient(fetcher.ClientOptions{
			Timeout:     cfg.Fetch.Timeout,
			Retries:     cfg.Fetch.Retries,
			BackoffBase: cfg.Fetch.BackoffBase,
			PreferLocal: cfg.Fetch.PreferLocal,
			UserAgent:   cfg.Fetch.UserAgent,
			HostHeaders: cfg.Fetch.HostHeaders,
			ProxyURL:    cfg.Fetch.ProxyURL,
			EnableCache: cfg.Cache.Enabled,
			CacheTTL:    cfg.Cache.TTL,
			Cache:       fetchCache,
		})
		if err != nil {
			if fetchCache != nil {
				_ = fetchCache.Close()
			}
			return nil, fmt.Errorf("failed to create fetcher: %w", err)
		}
		src = client
	}

	return &Aggregator{
		cfg:          cfg,
		fetcher:      src,
		cache:        fetchCache,
		writer:       output.NewWriter(output.WriterOptions{Path: cfg.Output.Path, DryRun: cfg.Output.DryRun}),
		logger:       logger.WithComponent("aggregator"),
		name:         opts.Name,
		desc:         opts.Desc,
		showProgress: opts.ShowProgress,
	}, nil
}

// Close releases the aggregator's resources.
func (a *Aggregator) Close() error {
	err := a.fetcher.Close()
	if a.cache != nil {
		if cerr := a.cache.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Run aggregates every manifest rule into the output file and returns the
// run summary. Per-source failures are recorded and skipped; only an
// unusable manifest or a failed output write aborts the run.
func (a *Aggregator) Run(ctx context.Context, m *manifest.Manifest) (*domain.Summary, error) {
	rules := m.UsableRules()
	if skipped := len(m.Rules) - len(rules); skipped > 0 {
		a.logger.Warn().Int("skipped", skipped).Msg("Manifest entries without url were skipped")
	}
	if len(rules) == 0 {
		return nil, domain.ErrNoRules
	}

	a.logger.Info().
		Int("rules", len(rules)).
		Str("output", a.writer.Path()).
		Int("workers", a.cfg.Fetch.Workers).
		Msg("Starting aggregation")

	texts, errs := a.fetchAll(ctx, rules)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Folding is strictly sequential in manifest order: first-seen
	// ordering and de-duplication are defined relative to it.
	state := module.NewMergeState()
	summary := &domain.Summary{TotalRules: len(rules)}

	for i, rule := range rules {
		if errs[i] != nil {
			a.logger.Warn().
				Str("source", rule.Source).
				Err(errs[i]).
				Msg("Source skipped")
			summary.Failures = append(summary.Failures, domain.SourceFailure{
				Index:  i,
				Source: rule.Source,
				Error:  errs[i].Error(),
			})
			continue
		}

		summary.Fetched++
		state.Fold(module.Parse(texts[i], rule.DropTokens))
	}

	doc := state.Document(a.resolveName(m), a.resolveDesc(m))
	if err := a.writer.Write(module.Render(doc)); err != nil {
		return nil, err
	}

	summary.Lines = state.LineCount()
	summary.Hostnames = state.HostCount()

	a.logger.Info().
		Int("fetched", summary.Fetched).
		Int("failed", summary.Failed()).
		Int("lines", summary.Lines).
		Int("hostnames", summary.Hostnames).
		Msg("Aggregation complete")

	return summary, nil
}

// fetchAll retrieves every rule's text with bounded parallelism. Results
// are index-addressed so the fold can run in manifest order regardless of
// fetch completion order; workers never touch the merge state.
func (a *Aggregator) fetchAll(ctx context.Context, rules []domain.Rule) ([]string, []error) {
	texts := make([]string, len(rules))

	var bar *progressbar.ProgressBar
	if a.showProgress {
		bar = utils.NewProgressBar(len(rules), utils.DescDownloading)
	}

	errs := utils.ParallelForEach(ctx, rules, a.cfg.Fetch.Workers, func(ctx context.Context, idx int, rule domain.Rule) error {
		a.logger.Debug().Str("source", rule.Source).Msg("Fetching source")
		text, err := a.fetcher.Fetch(ctx, rule.Source)
		if err == nil {
			texts[idx] = text
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		return err
	})

	return texts, errs
}

func (a *Aggregator) resolveName(m *manifest.Manifest) string {
	if a.name != "" {
		return a.name
	}
	if m.Name != "" {
		return m.Name
	}
	return DefaultName
}

func (a *Aggregator) resolveDesc(m *manifest.Manifest) string {
	if a.desc != "" {
		return a.desc
	}
	if m.Desc != "" {
		return m.Desc
	}
	return DefaultDesc
}
