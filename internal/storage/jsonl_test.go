package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"waxscope/internal/model"
)

func TestJSONLSinkAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "run.jsonl")
	sink := NewJSONLSink(path)
	ctx := context.Background()

	count, err := sink.UpsertTokens(ctx, []model.Token{
		{Contract: "eosio.token", Symbol: "WAX", Precision: 8, IsWax: true, Occurrences: 2},
	})
	if err != nil {
		t.Fatalf("upsert tokens: %v", err)
	}
	if count != 1 {
		t.Fatalf("count mismatch: got %d", count)
	}

	if _, err := sink.UpsertPools(ctx, []model.PoolRecord{
		{PairKey: "a|b|alcor", DexSource: "alcor"},
	}); err != nil {
		t.Fatalf("upsert pools: %v", err)
	}

	if _, err := sink.UpsertMarkets(ctx, nil); err != nil {
		t.Fatalf("empty batch must be a no-op: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var collections []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var line struct {
			Collection string `json:"collection"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		collections = append(collections, line.Collection)
	}

	want := []string{"tokens", "pools"}
	if len(collections) != len(want) {
		t.Fatalf("line count mismatch: %v", collections)
	}
	for i, collection := range want {
		if collections[i] != collection {
			t.Fatalf("collection mismatch at %d: %v", i, collections)
		}
	}
}
