package source

import "context"

// Alcor payloads carry a bare symbol string and no precision field; the
// assumed precision comes from Config.AlcorPrecision. TVL and volume are
// optional and default to zero.

type alcorToken struct {
	Contract string `json:"contract"`
	Symbol   string `json:"symbol"`
}

type alcorPool struct {
	TokenA      alcorToken `json:"tokenA"`
	TokenB      alcorToken `json:"tokenB"`
	TVLUSD      *float64   `json:"tvlUSD"`
	VolumeUSD24 *float64   `json:"volumeUSD24"`
}

// AlcorPools fetches the TVL/volume-reporting pool feed.
func (c *Client) AlcorPools(ctx context.Context) ([]PoolEntry, error) {
	var raw []alcorPool
	if err := c.getJSON(ctx, c.cfg.AlcorPoolsURL, &raw); err != nil {
		return nil, err
	}

	precision := c.cfg.AlcorPrecision

	entries := make([]PoolEntry, 0, len(raw))
	for _, pool := range raw {
		entry := PoolEntry{
			Upstream:   UpstreamAlcor,
			Dex:        UpstreamAlcor,
			ContractA:  pool.TokenA.Contract,
			SymbolA:    pool.TokenA.Symbol,
			PrecisionA: precision,
			ContractB:  pool.TokenB.Contract,
			SymbolB:    pool.TokenB.Symbol,
			PrecisionB: precision,
		}
		if pool.TVLUSD != nil {
			entry.TVLUSD = *pool.TVLUSD
		}
		if pool.VolumeUSD24 != nil {
			entry.Volume24hUSD = *pool.VolumeUSD24
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
