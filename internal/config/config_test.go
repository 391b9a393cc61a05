package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnvOverrides(t *testing.T) {
	t.Helper()
	for _, key := range []string{envAPIKey, envModel, envTelegramToken, envTelegramChat} {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if !cfg.Scrape.Headless {
		t.Error("default headless should be true")
	}
	if cfg.Scrape.NavigationTimeout != 30 || cfg.Scrape.WaitTimeout != 10 {
		t.Errorf("default timeouts wrong: nav=%d wait=%d", cfg.Scrape.NavigationTimeout, cfg.Scrape.WaitTimeout)
	}
	if cfg.Analysis.Provider != ProviderOpenAI {
		t.Errorf("default provider = %q", cfg.Analysis.Provider)
	}
	if len(cfg.Scrape.BlockedResources) == 0 {
		t.Error("default blocked resources should not be empty")
	}
}

func TestMergeOverlaysNonZeroFields(t *testing.T) {
	t.Parallel()

	override := &Config{}
	override.Scrape.WaitTimeout = 25
	override.Analysis.Model = "gpt-4o"
	override.Telegram.ChatID = "-100123"

	merged := Merge(Default(), override)

	if merged.Scrape.WaitTimeout != 25 {
		t.Errorf("wait timeout = %d, want 25", merged.Scrape.WaitTimeout)
	}
	if merged.Analysis.Model != "gpt-4o" {
		t.Errorf("model = %q", merged.Analysis.Model)
	}
	if merged.Telegram.ChatID != "-100123" {
		t.Errorf("chat id = %q", merged.Telegram.ChatID)
	}
	// Untouched fields keep their defaults.
	if merged.Scrape.NavigationTimeout != 30 {
		t.Errorf("navigation timeout = %d, want default 30", merged.Scrape.NavigationTimeout)
	}
	if merged.Analysis.Endpoint == "" {
		t.Error("endpoint default was lost")
	}
}

func TestMergeZeroOverrideKeepsDefaults(t *testing.T) {
	t.Parallel()

	merged := Merge(Default(), &Config{})
	def := Default()
	if merged.Scrape.UserAgent != def.Scrape.UserAgent || merged.Analysis.Model != def.Analysis.Model {
		t.Errorf("empty override changed defaults: %+v", merged)
	}
}

func TestLoadFromPartialFile(t *testing.T) {
	clearEnvOverrides(t)

	path := writeConfigFile(t, `
[scrape]
wait_timeout_secs = 20

[analysis]
model = "claude-sonnet-4-20250514"
provider = "anthropic"

[[watchlists]]
name = "alpha"
schedule = "0 * * * *"
urls = ["https://x.com/a/status/1"]
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Scrape.WaitTimeout != 20 {
		t.Errorf("wait timeout = %d", cfg.Scrape.WaitTimeout)
	}
	if cfg.Scrape.NavigationTimeout != 30 {
		t.Errorf("navigation timeout lost its default: %d", cfg.Scrape.NavigationTimeout)
	}
	if cfg.Analysis.Provider != ProviderAnthropic || cfg.Analysis.Model != "claude-sonnet-4-20250514" {
		t.Errorf("analysis section wrong: %+v", cfg.Analysis)
	}
	if len(cfg.Watchlists) != 1 || cfg.Watchlists[0].Name != "alpha" {
		t.Errorf("watchlists wrong: %+v", cfg.Watchlists)
	}
}

func TestLoadFromHeadlessOnlyWhenPresent(t *testing.T) {
	clearEnvOverrides(t)

	cfg, err := LoadFrom(writeConfigFile(t, "[scrape]\nheadless = false\n"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Scrape.Headless {
		t.Error("explicit headless=false was ignored")
	}

	cfg, err = LoadFrom(writeConfigFile(t, "[scrape]\nwait_timeout_secs = 5\n"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !cfg.Scrape.Headless {
		t.Error("absent headless key must keep the default true")
	}
}

func TestApplyEnvOverridesSecrets(t *testing.T) {
	t.Setenv(envAPIKey, "sk-from-env")
	t.Setenv(envModel, "gpt-4o")
	t.Setenv(envTelegramToken, "123:abc")
	t.Setenv(envTelegramChat, "-100456")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.Analysis.APIKey != "sk-from-env" || cfg.Analysis.Model != "gpt-4o" {
		t.Errorf("analysis env overrides not applied: %+v", cfg.Analysis)
	}
	if cfg.Telegram.BotToken != "123:abc" || cfg.Telegram.ChatID != "-100456" {
		t.Errorf("telegram env overrides not applied: %+v", cfg.Telegram)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestTimeoutDurations(t *testing.T) {
	t.Parallel()

	s := ScrapeConfig{NavigationTimeout: 30, WaitTimeout: 10}
	if s.NavigationTimeoutDuration().Seconds() != 30 || s.WaitTimeoutDuration().Seconds() != 10 {
		t.Errorf("duration helpers wrong: %v %v", s.NavigationTimeoutDuration(), s.WaitTimeoutDuration())
	}
}
