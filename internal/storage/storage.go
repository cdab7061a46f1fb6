package storage

import (
	"context"

	"waxscope/internal/model"
)

// Upserter persists run collections with insert-or-replace-by-key semantics.
// Tokens replace on contract, pools and markets on pair_key. Re-submitting
// identical batches must produce the same stored state. Each call returns
// the number of records written.
type Upserter interface {
	UpsertTokens(ctx context.Context, tokens []model.Token) (int, error)
	UpsertPools(ctx context.Context, pools []model.PoolRecord) (int, error)
	UpsertMarkets(ctx context.Context, markets []model.MarketRecord) (int, error)
}
