package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		PoolsURL:       srv.URL + "/pools/",
		AlcorPoolsURL:  srv.URL + "/alcor",
		MarketsURL:     srv.URL + "/markets/",
		AlcorPrecision: 8,
	}, srv.Client())
	return client, srv
}

func TestWaxonedgePools(t *testing.T) {
	payload := `[
		{
			"src": "taco",
			"token0": {"contract": "alien.worlds", "symbol": {"ticker": "TLM", "precision": 4}},
			"token1": {"contract": "eosio.token", "symbol": {"ticker": "WAX", "precision": 8}},
			"reserve0": 100.5,
			"reserve1": 50.25
		}
	]`
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pools/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(payload))
	}))

	entries, err := client.WaxonedgePools(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []PoolEntry{{
		Upstream:   UpstreamWaxonedge,
		Dex:        "taco",
		ContractA:  "alien.worlds",
		SymbolA:    "TLM",
		PrecisionA: 4,
		ContractB:  "eosio.token",
		SymbolB:    "WAX",
		PrecisionB: 8,
		ReserveA:   100.5,
		ReserveB:   50.25,
	}}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("entries mismatch: %+v != %+v", entries, want)
	}
}

func TestAlcorPoolsDefaults(t *testing.T) {
	// Second pool omits tvlUSD and volumeUSD24; both default to zero.
	payload := `[
		{
			"tokenA": {"contract": "alien.worlds", "symbol": "TLM"},
			"tokenB": {"contract": "eosio.token", "symbol": "WAX"},
			"tvlUSD": 1234.5,
			"volumeUSD24": 67.8
		},
		{
			"tokenA": {"contract": "token.rfox", "symbol": "RFOX"},
			"tokenB": {"contract": "eosio.token", "symbol": "WAX"}
		}
	]`
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))

	entries, err := client.AlcorPools(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].TVLUSD != 1234.5 || entries[0].Volume24hUSD != 67.8 {
		t.Fatalf("tvl/volume mismatch: %+v", entries[0])
	}
	if entries[1].TVLUSD != 0 || entries[1].Volume24hUSD != 0 {
		t.Fatalf("missing numerics must default to zero: %+v", entries[1])
	}
	if entries[0].PrecisionA != 8 || entries[1].PrecisionB != 8 {
		t.Fatalf("alcor tokens must carry the assumed precision: %+v", entries)
	}
	if entries[0].Dex != UpstreamAlcor || entries[0].Upstream != UpstreamAlcor {
		t.Fatalf("alcor tagging mismatch: %+v", entries[0])
	}
}

func TestAlcorPoolsConfigurablePrecision(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"tokenA": {"contract": "a", "symbol": "A"}, "tokenB": {"contract": "b", "symbol": "B"}}]`))
	}))
	defer srv.Close()

	client := NewClient(Config{AlcorPoolsURL: srv.URL, AlcorPrecision: 4}, srv.Client())
	entries, err := client.AlcorPools(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries[0].PrecisionA != 4 || entries[0].PrecisionB != 4 {
		t.Fatalf("configured precision not applied: %+v", entries[0])
	}
}

func TestMarkets(t *testing.T) {
	payload := `[
		{
			"src": "alcor",
			"token0": {"contract": "alien.worlds", "symbol": {"ticker": "TLM", "precision": 4}},
			"token1": {"contract": "eosio.token", "symbol": {"ticker": "WAX", "precision": 8}},
			"lastPrice": 12345,
			"lastSide": "buy"
		},
		{
			"src": "alcor",
			"token0": {"contract": "token.rfox", "symbol": {"ticker": "RFOX", "precision": 8}},
			"token1": {"contract": "eosio.token", "symbol": {"ticker": "WAX", "precision": 8}}
		}
	]`
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))

	entries, err := client.Markets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if !entries[0].HasLastPrice || entries[0].LastPrice != 12345 || entries[0].LastSide != "buy" {
		t.Fatalf("market entry mismatch: %+v", entries[0])
	}
	if entries[1].HasLastPrice || entries[1].LastPrice != 0 || entries[1].LastSide != "" {
		t.Fatalf("optional fields must default: %+v", entries[1])
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	if _, err := client.WaxonedgePools(context.Background()); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
	if _, err := client.AlcorPools(context.Background()); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
	if _, err := client.Markets(context.Background()); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}

func TestFetchMalformedPayload(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))

	if _, err := client.Markets(context.Background()); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
