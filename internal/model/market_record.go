package model

// MarketRecord is one market snapshot keyed by its canonical pair key.
// LastPriceInt carries the raw integer price as reported by the source;
// Price is precision-adjusted. LastSide is nil when the source omits it.
type MarketRecord struct {
	PairKey        string  `json:"pair_key"`
	DexSource      string  `json:"dex_source"`
	Token0Contract string  `json:"token0_contract"`
	Token0Symbol   string  `json:"token0_symbol"`
	Token1Contract string  `json:"token1_contract"`
	Token1Symbol   string  `json:"token1_symbol"`
	LastPriceInt   int64   `json:"last_price_int"`
	Price          float64 `json:"price"`
	LastSide       *string `json:"last_side"`
	IsWaxPair      bool    `json:"is_wax_pair"`
	LastUpdated    string  `json:"last_updated"`
}
