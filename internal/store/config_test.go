package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	p := writeConfig(t, "mode: SIMULATED\n")

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DefaultSymbol != "AAPL" {
		t.Errorf("Expected default symbol AAPL, got %s", cfg.DefaultSymbol)
	}
	if cfg.Market.DailyWindowDays != 90 {
		t.Errorf("Expected daily window 90, got %d", cfg.Market.DailyWindowDays)
	}
	if cfg.Market.IntradayWindowDays != 30 {
		t.Errorf("Expected intraday window 30, got %d", cfg.Market.IntradayWindowDays)
	}
	if cfg.Insight.Model != "gemini-2.5-flash" {
		t.Errorf("Expected default model gemini-2.5-flash, got %s", cfg.Insight.Model)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Server.Port)
	}
}

func TestLoadConfigRejectsUnknownMode(t *testing.T) {
	p := writeConfig(t, "mode: PAPER\n")

	if _, err := LoadConfig(p); err == nil {
		t.Fatal("Expected validation error for unknown mode")
	}
}

func TestEffectiveModeForcesSimulatedWithoutCredential(t *testing.T) {
	p := writeConfig(t, "mode: LIVE\n")

	cfg, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	t.Setenv(MarketAPIKeyEnv, "")
	if got := cfg.EffectiveMode(); got != "SIMULATED" {
		t.Errorf("Expected SIMULATED without credential, got %s", got)
	}

	t.Setenv(MarketAPIKeyEnv, "token")
	if got := cfg.EffectiveMode(); got != "LIVE" {
		t.Errorf("Expected LIVE with credential, got %s", got)
	}
}
