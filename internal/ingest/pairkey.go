package ingest

// waxContract is the system token contract on WAX.
const waxContract = "eosio.token"

// PairKey returns the canonical identifier for a trading pair on a dex.
// The two contracts are sorted lexicographically before joining, so the key
// does not depend on which operand position either token occupied in the raw
// payload.
func PairKey(contractX, contractY, dex string) string {
	a, b := contractX, contractY
	if b < a {
		a, b = b, a
	}
	return a + "|" + b + "|" + dex
}
