package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"waxscope/internal/model"
	"waxscope/internal/source"
	"waxscope/internal/storage"
)

// Stage identifies a phase of one ingestion run.
type Stage string

const (
	StageFetching          Stage = "fetching"
	StageExtractingTokens  Stage = "extracting_tokens"
	StagePersistingTokens  Stage = "persisting_tokens"
	StagePersistingPools   Stage = "persisting_pools"
	StagePersistingMarkets Stage = "persisting_markets"
	StageDone              Stage = "done"
)

// Feeds provides the three upstream snapshot fetches. The fetches have no
// ordering dependency on each other.
type Feeds interface {
	WaxonedgePools(ctx context.Context) ([]source.PoolEntry, error)
	AlcorPools(ctx context.Context) ([]source.PoolEntry, error)
	Markets(ctx context.Context) ([]source.MarketEntry, error)
}

// Runner executes one ingestion run end to end: fan out the three fetches,
// extract the token set, build deduplicated collections, and upsert them.
// All intermediate state is run-local; a Runner holds no mutable state
// between runs.
type Runner struct {
	feeds  Feeds
	store  storage.Upserter
	logger *zap.Logger
	now    func() time.Time
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(feeds Feeds, store storage.Upserter, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		feeds:  feeds,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Run performs one ingestion run. A failed fetch isolates to its source:
// that source contributes empty collections and a summary entry. A failed
// upsert is recorded and does not block the remaining collections. The
// returned error is non-nil only for broken wiring; upstream and store
// failures surface as summary data.
func (r *Runner) Run(ctx context.Context) (model.RunSummary, error) {
	if r.feeds == nil {
		return model.RunSummary{}, fmt.Errorf("feeds is nil")
	}
	if r.store == nil {
		return model.RunSummary{}, fmt.Errorf("store is nil")
	}

	started := r.now()
	summary := model.RunSummary{
		RunID:          uuid.NewString(),
		PoolsPerSource: map[string]int{source.UpstreamWaxonedge: 0, source.UpstreamAlcor: 0},
		SourceErrors:   map[string]string{},
		StoreErrors:    map[string]string{},
	}
	logger := r.logger.With(zap.String("run_id", summary.RunID))

	logger.Info("run stage", zap.String("stage", string(StageFetching)))
	waxPools, alcorPools, markets := r.fetchAll(ctx, logger, summary.SourceErrors)

	logger.Info("run stage", zap.String("stage", string(StageExtractingTokens)))
	rawPools := make([]source.PoolEntry, 0, len(waxPools)+len(alcorPools))
	rawPools = append(rawPools, waxPools...)
	rawPools = append(rawPools, alcorPools...)
	tokens := ExtractTokens(rawPools)

	logger.Info("run stage", zap.String("stage", string(StagePersistingTokens)), zap.Int("tokens", len(tokens)))
	if count, err := r.store.UpsertTokens(ctx, tokens); err != nil {
		summary.StoreErrors["tokens"] = err.Error()
		logger.Error("upsert tokens", zap.Error(err))
	} else {
		summary.TokensUpserted = count
	}

	logger.Info("run stage", zap.String("stage", string(StagePersistingPools)))
	for _, batch := range []struct {
		upstream string
		entries  []source.PoolEntry
	}{
		{source.UpstreamWaxonedge, waxPools},
		{source.UpstreamAlcor, alcorPools},
	} {
		records := BuildPools(batch.entries, r.now())
		count, err := r.store.UpsertPools(ctx, records)
		if err != nil {
			summary.StoreErrors["pools_"+batch.upstream] = err.Error()
			logger.Error("upsert pools", zap.String("upstream", batch.upstream), zap.Error(err))
			continue
		}
		summary.PoolsPerSource[batch.upstream] = count
	}

	logger.Info("run stage", zap.String("stage", string(StagePersistingMarkets)))
	marketRecords := BuildMarkets(markets, r.now())
	if count, err := r.store.UpsertMarkets(ctx, marketRecords); err != nil {
		summary.StoreErrors["markets"] = err.Error()
		logger.Error("upsert markets", zap.Error(err))
	} else {
		summary.MarketsUpserted = count
	}

	summary.DurationMS = r.now().Sub(started).Milliseconds()
	logger.Info("run stage",
		zap.String("stage", string(StageDone)),
		zap.Int("tokens", summary.TokensUpserted),
		zap.Int("markets", summary.MarketsUpserted),
		zap.Int("source_errors", len(summary.SourceErrors)),
		zap.Int("store_errors", len(summary.StoreErrors)),
		zap.Int64("duration_ms", summary.DurationMS),
	)
	return summary, nil
}

// fetchAll runs the three fetches as independent tasks and joins only after
// every one has settled. A failure never short-circuits the others; the
// failed source resolves to an empty slice plus an error entry.
func (r *Runner) fetchAll(
	ctx context.Context,
	logger *zap.Logger,
	sourceErrors map[string]string,
) ([]source.PoolEntry, []source.PoolEntry, []source.MarketEntry) {
	var (
		wg         sync.WaitGroup
		waxPools   []source.PoolEntry
		alcorPools []source.PoolEntry
		markets    []source.MarketEntry
		waxErr     error
		alcorErr   error
		marketsErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		waxPools, waxErr = r.feeds.WaxonedgePools(ctx)
	}()
	go func() {
		defer wg.Done()
		alcorPools, alcorErr = r.feeds.AlcorPools(ctx)
	}()
	go func() {
		defer wg.Done()
		markets, marketsErr = r.feeds.Markets(ctx)
	}()
	wg.Wait()

	if waxErr != nil {
		sourceErrors[source.UpstreamWaxonedge] = waxErr.Error()
		waxPools = nil
		logger.Warn("fetch failed", zap.String("upstream", source.UpstreamWaxonedge), zap.Error(waxErr))
	}
	if alcorErr != nil {
		sourceErrors[source.UpstreamAlcor] = alcorErr.Error()
		alcorPools = nil
		logger.Warn("fetch failed", zap.String("upstream", source.UpstreamAlcor), zap.Error(alcorErr))
	}
	if marketsErr != nil {
		sourceErrors[source.UpstreamMarkets] = marketsErr.Error()
		markets = nil
		logger.Warn("fetch failed", zap.String("upstream", source.UpstreamMarkets), zap.Error(marketsErr))
	}

	logger.Info("fetch complete",
		zap.Int("waxonedge_pools", len(waxPools)),
		zap.Int("alcor_pools", len(alcorPools)),
		zap.Int("markets", len(markets)),
	)
	return waxPools, alcorPools, markets
}
