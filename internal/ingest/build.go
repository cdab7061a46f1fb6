package ingest

import (
	"math"
	"time"

	"waxscope/internal/model"
	"waxscope/internal/source"
)

// BuildPools collapses raw pool entries into records, one per pair key.
// Duplicate keys within the batch resolve first-seen wins with no field
// merge. Records come back in first-seen order.
//
// Price derives from reserves when the denominator is non-zero and is an
// explicit zero sentinel otherwise, which also covers TVL-reporting sources
// that expose no reserves at all.
func BuildPools(entries []source.PoolEntry, now time.Time) []model.PoolRecord {
	seen := make(map[string]struct{}, len(entries))
	records := make([]model.PoolRecord, 0, len(entries))
	updated := now.UTC().Format(time.RFC3339)

	for _, entry := range entries {
		key := PairKey(entry.ContractA, entry.ContractB, entry.Dex)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		price := 0.0
		if entry.ReserveA != 0 {
			price = entry.ReserveB / entry.ReserveA
		}

		records = append(records, model.PoolRecord{
			PairKey:        key,
			DexSource:      entry.Dex,
			Token0Contract: entry.ContractA,
			Token0Symbol:   entry.SymbolA,
			Token1Contract: entry.ContractB,
			Token1Symbol:   entry.SymbolB,
			Reserve0:       entry.ReserveA,
			Reserve1:       entry.ReserveB,
			TVLUSD:         entry.TVLUSD,
			Volume24hUSD:   entry.Volume24hUSD,
			Price:          price,
			IsWaxPair:      isWaxPair(entry.ContractA, entry.ContractB),
			HasArbitrage:   false,
			LastUpdated:    updated,
		})
	}
	return records
}

// BuildMarkets collapses raw market entries into records, one per pair key,
// first-seen wins. The precision-adjusted price divides the raw integer
// price by 10^(precision0-precision1); the exponent may be negative, in
// which case the division amounts to a multiplication.
func BuildMarkets(entries []source.MarketEntry, now time.Time) []model.MarketRecord {
	seen := make(map[string]struct{}, len(entries))
	records := make([]model.MarketRecord, 0, len(entries))
	updated := now.UTC().Format(time.RFC3339)

	for _, entry := range entries {
		key := PairKey(entry.ContractA, entry.ContractB, entry.Dex)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		price := 0.0
		if entry.HasLastPrice {
			exponent := entry.PrecisionA - entry.PrecisionB
			price = float64(entry.LastPrice) / math.Pow(10, float64(exponent))
		}

		var lastSide *string
		if entry.LastSide != "" {
			side := entry.LastSide
			lastSide = &side
		}

		records = append(records, model.MarketRecord{
			PairKey:        key,
			DexSource:      entry.Dex,
			Token0Contract: entry.ContractA,
			Token0Symbol:   entry.SymbolA,
			Token1Contract: entry.ContractB,
			Token1Symbol:   entry.SymbolB,
			LastPriceInt:   entry.LastPrice,
			Price:          price,
			LastSide:       lastSide,
			IsWaxPair:      isWaxPair(entry.ContractA, entry.ContractB),
			LastUpdated:    updated,
		})
	}
	return records
}

func isWaxPair(contractA, contractB string) bool {
	return contractA == waxContract || contractB == waxContract
}
