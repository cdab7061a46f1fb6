package source

import "context"

// Waxonedge payloads carry a full symbol with explicit per-token precision.

type waxonedgeSymbol struct {
	Ticker    string `json:"ticker"`
	Precision int    `json:"precision"`
}

type waxonedgeToken struct {
	Contract string          `json:"contract"`
	Symbol   waxonedgeSymbol `json:"symbol"`
}

type waxonedgePool struct {
	Src      string         `json:"src"`
	Token0   waxonedgeToken `json:"token0"`
	Token1   waxonedgeToken `json:"token1"`
	Reserve0 float64        `json:"reserve0"`
	Reserve1 float64        `json:"reserve1"`
}

type waxonedgeMarket struct {
	Src       string         `json:"src"`
	Token0    waxonedgeToken `json:"token0"`
	Token1    waxonedgeToken `json:"token1"`
	LastPrice *int64         `json:"lastPrice"`
	LastSide  string         `json:"lastSide"`
}

// WaxonedgePools fetches the reserve-based pool feed.
func (c *Client) WaxonedgePools(ctx context.Context) ([]PoolEntry, error) {
	var raw []waxonedgePool
	if err := c.getJSON(ctx, c.cfg.PoolsURL, &raw); err != nil {
		return nil, err
	}

	entries := make([]PoolEntry, 0, len(raw))
	for _, pool := range raw {
		entries = append(entries, PoolEntry{
			Upstream:   UpstreamWaxonedge,
			Dex:        pool.Src,
			ContractA:  pool.Token0.Contract,
			SymbolA:    pool.Token0.Symbol.Ticker,
			PrecisionA: pool.Token0.Symbol.Precision,
			ContractB:  pool.Token1.Contract,
			SymbolB:    pool.Token1.Symbol.Ticker,
			PrecisionB: pool.Token1.Symbol.Precision,
			ReserveA:   pool.Reserve0,
			ReserveB:   pool.Reserve1,
		})
	}
	return entries, nil
}

// Markets fetches the market feed. LastPrice is optional in the payload.
func (c *Client) Markets(ctx context.Context) ([]MarketEntry, error) {
	var raw []waxonedgeMarket
	if err := c.getJSON(ctx, c.cfg.MarketsURL, &raw); err != nil {
		return nil, err
	}

	entries := make([]MarketEntry, 0, len(raw))
	for _, market := range raw {
		entry := MarketEntry{
			Upstream:   UpstreamMarkets,
			Dex:        market.Src,
			ContractA:  market.Token0.Contract,
			SymbolA:    market.Token0.Symbol.Ticker,
			PrecisionA: market.Token0.Symbol.Precision,
			ContractB:  market.Token1.Contract,
			SymbolB:    market.Token1.Symbol.Ticker,
			PrecisionB: market.Token1.Symbol.Precision,
			LastSide:   market.LastSide,
		}
		if market.LastPrice != nil {
			entry.LastPrice = *market.LastPrice
			entry.HasLastPrice = true
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
