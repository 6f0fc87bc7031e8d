// Package app wires the domain pieces into one resolution service: roster
// loading and index swaps, evidence fan-out, aggregation, caching and the
// scoring pool.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/rostermatch/internal/adapters/pool"
	"github.com/okian/rostermatch/internal/config"
	"github.com/okian/rostermatch/internal/domain/cache"
	"github.com/okian/rostermatch/internal/domain/fuzzy"
	"github.com/okian/rostermatch/internal/domain/index"
	"github.com/okian/rostermatch/internal/domain/lexical"
	"github.com/okian/rostermatch/internal/domain/model"
	"github.com/okian/rostermatch/internal/domain/resolve"
	"github.com/okian/rostermatch/internal/domain/team"
	"github.com/okian/rostermatch/pkg/logger"
	"github.com/okian/rostermatch/pkg/metrics"
)

// Service resolves free-text mentions against the active roster index.
type Service struct {
	cfg      *config.Config
	provider *index.Provider
	scorer   fuzzy.Scorer
	agg      *resolve.Aggregator
	pool     *pool.Pool
	cache    cache.Cache
	log      logger.Logger

	variant fuzzy.Variant
	weights index.Weights
}

// New creates a Service from configuration. The service starts without an
// index; call Rebuild with roster data before resolving.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg,
		provider: &index.Provider{},
		scorer:   fuzzy.NewRatioScorer(),
		log:      logger.Named("app"),
		variant:  fuzzy.Variant(cfg.ScoringVariant),
		weights: index.Weights{
			LastName:  cfg.LastNameWeight,
			FirstName: cfg.FirstNameWeight,
			Nickname:  cfg.NicknameWeight,
		},
		agg: resolve.NewAggregator(
			resolve.WithTeamBoost(cfg.TeamBoost),
			resolve.WithSurnameBoost(cfg.SurnameBoost),
			resolve.WithSurnamePenalty(cfg.SurnamePenalty),
			resolve.WithHighConfidenceCutoff(cfg.HighConfidenceCutoff),
			resolve.WithLimit(cfg.Limit),
		),
		pool: pool.New(
			pool.WithWorkers(cfg.PoolWorkers),
			pool.WithQueueSize(cfg.PoolQueueSize),
		),
	}
	if cfg.CacheSize > 0 {
		s.cache = cache.NewInMemoryCache(cache.WithMaxSize(cfg.CacheSize))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the scoring pool workers.
func (s *Service) Start(ctx context.Context) {
	s.pool.Start(ctx)
	s.log.Info(ctx, "service started",
		logger.Int("pool_workers", s.cfg.PoolWorkers),
		logger.String("scoring_variant", string(s.variant)))
}

// Stop drains the scoring pool.
func (s *Service) Stop(ctx context.Context) {
	s.pool.Stop()
	s.log.Info(ctx, "service stopped")
}

// Rebuild constructs a fresh index from roster data and swaps it in
// atomically. In-flight resolutions finish against the index they started
// with.
func (s *Service) Rebuild(ctx context.Context, entities []model.Entity, teams []model.Team, aliases index.AliasTable) error {
	idx, err := index.Build(entities, teams, aliases, index.WithWeights(s.weights))
	if err != nil {
		metrics.RecordErrorByComponent("index", "build")
		return fmt.Errorf("%w: %v", ErrBuildIndex, err)
	}
	s.provider.Swap(idx)
	s.log.Info(ctx, "roster index swapped",
		logger.String("version", idx.Version()),
		logger.Int("entities", idx.EntityCount()),
		logger.Int("teams", idx.TeamCount()))
	return nil
}

// fuzzyOutcome carries the scorer result out of the pool task.
type fuzzyOutcome struct {
	scores map[string]float64
	err    error
}

// Resolve resolves the athletes mentioned in text. Empty or blank text is a
// valid input and yields an empty resolution.
func (s *Service) Resolve(ctx context.Context, text string) (model.Resolution, error) {
	start := time.Now()
	metrics.RecordResolution()

	if strings.TrimSpace(text) == "" {
		return model.Resolution{}, nil
	}

	idx := s.provider.Current()
	if idx == nil {
		return model.Resolution{}, ErrNoIndex
	}

	key := cache.Key(idx.Version(), text)
	if s.cache != nil {
		if res, ok := s.cache.Get(ctx, key); ok {
			metrics.RecordCacheHit()
			return res, nil
		}
		metrics.RecordCacheMiss()
	}

	var (
		lexScores   map[string]float64
		fuzzyScores map[string]float64
		mentioned   map[string]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lexScores = lexical.Match(text, idx)
		return nil
	})
	g.Go(func() error {
		mentioned = team.Detect(text, idx)
		return nil
	})
	g.Go(func() error {
		out, err := s.scoreFuzzy(gctx, text, idx)
		if err != nil {
			return err
		}
		fuzzyScores = out
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Resolution{}, err
	}

	res := s.agg.Aggregate(idx, lexScores, fuzzyScores, mentioned)

	s.observe(res, time.Since(start))
	if s.cache != nil {
		s.cache.Put(ctx, key, res)
		metrics.UpdateCacheSize(int(s.cache.Size()))
	}
	s.log.Debug(ctx, "resolved mention",
		logger.Int("matches", len(res.Matches)),
		logger.Int("teams", len(res.Teams)),
		logger.Bool("ambiguous", res.Ambiguous))
	return res, nil
}

// scoreFuzzy routes one scoring pass through the worker pool and maps the
// surviving results back to entity ids. The buffered channel keeps the
// worker from blocking when this call has already given up on the result.
func (s *Service) scoreFuzzy(ctx context.Context, text string, idx *index.Index) (map[string]float64, error) {
	done := make(chan fuzzyOutcome, 1)
	accepted := s.pool.Submit(ctx, func() {
		scores, err := s.runScorer(ctx, text, idx)
		done <- fuzzyOutcome{scores: scores, err: err}
	})
	if !accepted {
		metrics.RecordErrorByComponent("pool", "saturated")
		return nil, ErrSaturated
	}

	select {
	case out := <-done:
		return out.scores, out.err
	case <-ctx.Done():
		return nil, fmt.Errorf("resolution cancelled: %w", ctx.Err())
	}
}

// runScorer executes the scorer over every canonical name and keeps results
// at or above the configured floor.
func (s *Service) runScorer(ctx context.Context, text string, idx *index.Index) (map[string]float64, error) {
	start := time.Now()
	results, err := s.scorer.ScoreAll(ctx, text, idx.Names(), s.variant, s.cfg.FuzzyResultCap)
	metrics.RecordFuzzyLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordFuzzyError()
		return nil, fmt.Errorf("%w: %v", ErrScoring, err)
	}

	scores := make(map[string]float64)
	for _, r := range results {
		if r.Score < s.cfg.FuzzyThreshold {
			continue
		}
		for _, id := range idx.IDsForName(r.Name) {
			if r.Score > scores[id] {
				scores[id] = r.Score
			}
		}
	}
	return scores, nil
}

// observe records the outcome metrics of one resolution.
func (s *Service) observe(res model.Resolution, elapsed time.Duration) {
	metrics.RecordResolutionLatency(float64(elapsed.Milliseconds()))
	metrics.RecordCandidatesReturned(len(res.Matches))
	if len(res.Matches) == 0 {
		metrics.RecordEmptyResult()
	}
	if res.HighConfidence {
		metrics.RecordHighConfidenceResult()
	}
	if res.Ambiguous {
		metrics.RecordAmbiguousResult()
	}
}

// Stats reports the state of the active index and cache for operational
// endpoints.
func (s *Service) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"scoring_variant": string(s.variant),
		"limit":           s.cfg.Limit,
	}
	if idx := s.provider.Current(); idx != nil {
		stats["index_version"] = idx.Version()
		stats["index_built_at"] = idx.BuiltAt().Format(time.RFC3339)
		stats["entities"] = idx.EntityCount()
		stats["teams"] = idx.TeamCount()
		stats["aliases"] = idx.AliasCount()
	}
	if s.cache != nil {
		stats["cache_size"] = s.cache.Size()
	}
	return stats
}
