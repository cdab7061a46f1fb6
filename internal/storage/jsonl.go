package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"waxscope/internal/model"
)

// JSONLSink appends upsert batches to a JSONL file, one record per line
// wrapped with its collection name. It implements Upserter for store-less
// dry runs; replace-by-key is left to whoever consumes the file.
type JSONLSink struct {
	path string
	mu   sync.Mutex
}

func NewJSONLSink(path string) *JSONLSink {
	return &JSONLSink{path: path}
}

type jsonlLine struct {
	Collection string `json:"collection"`
	Record     any    `json:"record"`
}

func (s *JSONLSink) UpsertTokens(ctx context.Context, tokens []model.Token) (int, error) {
	lines := make([]jsonlLine, 0, len(tokens))
	for _, token := range tokens {
		lines = append(lines, jsonlLine{Collection: "tokens", Record: token})
	}
	return len(tokens), s.append(lines)
}

func (s *JSONLSink) UpsertPools(ctx context.Context, pools []model.PoolRecord) (int, error) {
	lines := make([]jsonlLine, 0, len(pools))
	for _, pool := range pools {
		lines = append(lines, jsonlLine{Collection: "pools", Record: pool})
	}
	return len(pools), s.append(lines)
}

func (s *JSONLSink) UpsertMarkets(ctx context.Context, markets []model.MarketRecord) (int, error) {
	lines := make([]jsonlLine, 0, len(markets))
	for _, market := range markets {
		lines = append(lines, jsonlLine{Collection: "markets", Record: market})
	}
	return len(markets), s.append(lines)
}

func (s *JSONLSink) append(lines []jsonlLine) error {
	if len(lines) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		data, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
