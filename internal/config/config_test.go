package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.PoolsURL != DefaultPoolsURL {
		t.Fatalf("pools url mismatch: %q", cfg.PoolsURL)
	}
	if cfg.AlcorPrecision != 8 {
		t.Fatalf("alcor precision default mismatch: %d", cfg.AlcorPrecision)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("http timeout default mismatch: %v", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level default mismatch: %q", cfg.LogLevel)
	}
	if cfg.PGDSN != "" {
		t.Fatalf("pg dsn must have no default: %q", cfg.PGDSN)
	}
}

func TestLoadFlagOverrides(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("pg-dsn", "", "")
	flags.Int("alcor-default-precision", 8, "")
	if err := flags.Parse([]string{"--pg-dsn=postgres://localhost/wax", "--alcor-default-precision=4"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.PGDSN != "postgres://localhost/wax" {
		t.Fatalf("pg dsn mismatch: %q", cfg.PGDSN)
	}
	if cfg.AlcorPrecision != 4 {
		t.Fatalf("alcor precision mismatch: %d", cfg.AlcorPrecision)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("WAXSCOPE_LOG_LEVEL", "debug")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("env override not applied: %q", cfg.LogLevel)
	}
}
