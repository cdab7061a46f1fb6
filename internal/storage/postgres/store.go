package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"waxscope/internal/model"
)

// Store provides Postgres persistence for the three run collections.
// Every statement is an insert-or-full-replace on the collection's unique
// key, so re-running a batch leaves the same stored state.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertTokens replaces token records by contract.
func (s *Store) UpsertTokens(ctx context.Context, tokens []model.Token) (int, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, token := range tokens {
		batch.Queue(`
			INSERT INTO tokens (
				contract, symbol, precision, is_wax, occurrences, updated_at
			) VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (contract)
			DO UPDATE SET
				symbol = EXCLUDED.symbol,
				precision = EXCLUDED.precision,
				is_wax = EXCLUDED.is_wax,
				occurrences = EXCLUDED.occurrences,
				updated_at = now()
		`,
			token.Contract,
			token.Symbol,
			token.Precision,
			token.IsWax,
			token.Occurrences,
		)
	}
	if err := s.sendBatch(ctx, batch, len(tokens)); err != nil {
		return 0, err
	}
	return len(tokens), nil
}

// UpsertPools replaces pool records by pair_key.
func (s *Store) UpsertPools(ctx context.Context, pools []model.PoolRecord) (int, error) {
	if len(pools) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, pool := range pools {
		batch.Queue(`
			INSERT INTO pools (
				pair_key, dex_source, token0_contract, token0_symbol,
				token1_contract, token1_symbol, reserve0, reserve1,
				tvl_usd, volume_24h_usd, price, is_wax_pair, has_arbitrage, last_updated
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
			ON CONFLICT (pair_key)
			DO UPDATE SET
				dex_source = EXCLUDED.dex_source,
				token0_contract = EXCLUDED.token0_contract,
				token0_symbol = EXCLUDED.token0_symbol,
				token1_contract = EXCLUDED.token1_contract,
				token1_symbol = EXCLUDED.token1_symbol,
				reserve0 = EXCLUDED.reserve0,
				reserve1 = EXCLUDED.reserve1,
				tvl_usd = EXCLUDED.tvl_usd,
				volume_24h_usd = EXCLUDED.volume_24h_usd,
				price = EXCLUDED.price,
				is_wax_pair = EXCLUDED.is_wax_pair,
				has_arbitrage = EXCLUDED.has_arbitrage,
				last_updated = EXCLUDED.last_updated
		`,
			pool.PairKey,
			pool.DexSource,
			pool.Token0Contract,
			pool.Token0Symbol,
			pool.Token1Contract,
			pool.Token1Symbol,
			pool.Reserve0,
			pool.Reserve1,
			pool.TVLUSD,
			pool.Volume24hUSD,
			pool.Price,
			pool.IsWaxPair,
			pool.HasArbitrage,
			pool.LastUpdated,
		)
	}
	if err := s.sendBatch(ctx, batch, len(pools)); err != nil {
		return 0, err
	}
	return len(pools), nil
}

// UpsertMarkets replaces market records by pair_key.
func (s *Store) UpsertMarkets(ctx context.Context, markets []model.MarketRecord) (int, error) {
	if len(markets) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, market := range markets {
		batch.Queue(`
			INSERT INTO markets (
				pair_key, dex_source, token0_contract, token0_symbol,
				token1_contract, token1_symbol, last_price_int, price,
				last_side, is_wax_pair, last_updated
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			ON CONFLICT (pair_key)
			DO UPDATE SET
				dex_source = EXCLUDED.dex_source,
				token0_contract = EXCLUDED.token0_contract,
				token0_symbol = EXCLUDED.token0_symbol,
				token1_contract = EXCLUDED.token1_contract,
				token1_symbol = EXCLUDED.token1_symbol,
				last_price_int = EXCLUDED.last_price_int,
				price = EXCLUDED.price,
				last_side = EXCLUDED.last_side,
				is_wax_pair = EXCLUDED.is_wax_pair,
				last_updated = EXCLUDED.last_updated
		`,
			market.PairKey,
			market.DexSource,
			market.Token0Contract,
			market.Token0Symbol,
			market.Token1Contract,
			market.Token1Symbol,
			market.LastPriceInt,
			market.Price,
			market.LastSide,
			market.IsWaxPair,
			market.LastUpdated,
		)
	}
	if err := s.sendBatch(ctx, batch, len(markets)); err != nil {
		return 0, err
	}
	return len(markets), nil
}

func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch, count int) error {
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < count; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
