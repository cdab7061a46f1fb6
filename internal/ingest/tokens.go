package ingest

import (
	"sort"

	"waxscope/internal/model"
	"waxscope/internal/source"
)

// ExtractTokens builds the run-scoped token set from raw pool entries.
// Every entry contributes, duplicates included: occurrences counts pool
// participations, not unique pairs. The first sighting of a contract fixes
// symbol, precision and the wax flag; later sightings only increment the
// count. The result is sorted by contract for deterministic batches.
func ExtractTokens(entries []source.PoolEntry) []model.Token {
	seen := make(map[string]*model.Token)

	record := func(upstream, contract, symbol string, precision int) {
		if token, ok := seen[contract]; ok {
			token.Occurrences++
			return
		}
		seen[contract] = &model.Token{
			Contract:    contract,
			Symbol:      symbol,
			Precision:   precision,
			IsWax:       tokenIsWax(upstream, contract, symbol),
			Occurrences: 1,
		}
	}

	for _, entry := range entries {
		record(entry.Upstream, entry.ContractA, entry.SymbolA, entry.PrecisionA)
		record(entry.Upstream, entry.ContractB, entry.SymbolB, entry.PrecisionB)
	}

	tokens := make([]model.Token, 0, len(seen))
	for _, token := range seen {
		tokens = append(tokens, *token)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Contract < tokens[j].Contract })
	return tokens
}

// tokenIsWax applies the per-upstream WAX rule. The rule is asymmetric on
// purpose: the Waxonedge feed reports a full symbol and requires the WAX
// ticker, while the Alcor feed identifies the token by contract alone.
func tokenIsWax(upstream, contract, symbol string) bool {
	if upstream == source.UpstreamAlcor {
		return contract == waxContract
	}
	return contract == waxContract && symbol == "WAX"
}
