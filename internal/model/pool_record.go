package model

// PoolRecord is one AMM pool snapshot keyed by its canonical pair key.
// Token fields keep the order of the raw payload; only the pair key sorts.
type PoolRecord struct {
	PairKey        string  `json:"pair_key"`
	DexSource      string  `json:"dex_source"`
	Token0Contract string  `json:"token0_contract"`
	Token0Symbol   string  `json:"token0_symbol"`
	Token1Contract string  `json:"token1_contract"`
	Token1Symbol   string  `json:"token1_symbol"`
	Reserve0       float64 `json:"reserve0"`
	Reserve1       float64 `json:"reserve1"`
	TVLUSD         float64 `json:"tvl_usd"`
	Volume24hUSD   float64 `json:"volume_24h_usd"`
	Price          float64 `json:"price"`
	IsWaxPair      bool    `json:"is_wax_pair"`
	HasArbitrage   bool    `json:"has_arbitrage"`
	LastUpdated    string  `json:"last_updated"`
}
