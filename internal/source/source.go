package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Upstream identifiers. These name the feed an entry came from, which is
// distinct from the per-entry dex tag: the Waxonedge aggregator reports pools
// for several dexes, each tagged in the payload.
const (
	UpstreamWaxonedge = "waxonedge"
	UpstreamAlcor     = "alcor"
	UpstreamMarkets   = "markets"
)

// PoolEntry is the common intermediate shape every pool adapter produces.
// Optional numerics default to zero, never to a null-like sentinel.
type PoolEntry struct {
	Upstream     string
	Dex          string
	ContractA    string
	SymbolA      string
	PrecisionA   int
	ContractB    string
	SymbolB      string
	PrecisionB   int
	ReserveA     float64
	ReserveB     float64
	TVLUSD       float64
	Volume24hUSD float64
}

// MarketEntry is the common intermediate shape for market adapters.
type MarketEntry struct {
	Upstream     string
	Dex          string
	ContractA    string
	SymbolA      string
	PrecisionA   int
	ContractB    string
	SymbolB      string
	PrecisionB   int
	LastPrice    int64
	HasLastPrice bool
	LastSide     string
}

// Config holds upstream endpoints and parsing defaults.
type Config struct {
	PoolsURL       string
	AlcorPoolsURL  string
	MarketsURL     string
	AlcorPrecision int
	Timeout        time.Duration
}

// Client fetches and normalizes the upstream DEX feeds.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient builds a Client. A nil httpClient gets one with the configured
// timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// getJSON fetches url and decodes the response body into out.
// Non-2xx statuses and malformed payloads are errors; both stay inside the
// adapter boundary as a per-source failure.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
