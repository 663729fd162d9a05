package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eugenenazirov/exhibit-optimizer/internal/catalog"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ARTIFACT_VALUES", "")
	t.Setenv("ARTIFACT_WEIGHTS", "")
	t.Setenv("CAPACITY", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	want := catalog.DefaultCatalog()
	if len(cfg.InitialCatalog.Artifacts) != len(want.Artifacts) {
		t.Fatalf("expected default artifacts, got %v", cfg.InitialCatalog.Artifacts)
	}
	if cfg.InitialCatalog.Capacity != want.Capacity {
		t.Fatalf("expected default capacity %d, got %d", want.Capacity, cfg.InitialCatalog.Capacity)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ARTIFACT_VALUES", "5, 8 , 13")
	t.Setenv("ARTIFACT_WEIGHTS", "1,2,3")
	t.Setenv("CAPACITY", "4")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	wantArtifacts := []catalog.Artifact{
		{Value: 5, Weight: 1},
		{Value: 8, Weight: 2},
		{Value: 13, Weight: 3},
	}
	if len(cfg.InitialCatalog.Artifacts) != len(wantArtifacts) {
		t.Fatalf("unexpected artifacts: %v", cfg.InitialCatalog.Artifacts)
	}
	for i, a := range wantArtifacts {
		if cfg.InitialCatalog.Artifacts[i] != a {
			t.Fatalf("expected artifact %v at position %d, got %v", a, i, cfg.InitialCatalog.Artifacts[i])
		}
	}
	if cfg.InitialCatalog.Capacity != 4 {
		t.Fatalf("expected capacity 4, got %d", cfg.InitialCatalog.Capacity)
	}
}

func TestLoadEnvIgnoresMismatchedLists(t *testing.T) {
	t.Setenv("ARTIFACT_VALUES", "5,8")
	t.Setenv("ARTIFACT_WEIGHTS", "1,2,3")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := catalog.DefaultCatalog()
	if len(cfg.InitialCatalog.Artifacts) != len(want.Artifacts) {
		t.Fatalf("expected default artifacts for mismatched env lists, got %v", cfg.InitialCatalog.Artifacts)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ARTIFACT_VALUES", "")
	t.Setenv("ARTIFACT_WEIGHTS", "")
	t.Setenv("CAPACITY", "")

	content := `
port: "8090"
artifacts:
  - value: 60
    weight: 10
  - value: 100
    weight: 20
capacity: 25
shutdown_grace_period: 2s
enable_request_logging: true
rate_limit:
  rps: 10
  burst: 20
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8090" {
		t.Fatalf("expected port 8090, got %s", cfg.Port)
	}
	if len(cfg.InitialCatalog.Artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %v", cfg.InitialCatalog.Artifacts)
	}
	if cfg.InitialCatalog.Capacity != 25 {
		t.Fatalf("expected capacity 25, got %d", cfg.InitialCatalog.Capacity)
	}
	if cfg.ShutdownGracePeriod != 2*time.Second {
		t.Fatalf("expected 2s grace period, got %s", cfg.ShutdownGracePeriod)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Fatalf("unexpected rate limit: %v/%v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadYAMLKeepsLoggingDefaultWhenOmitted(t *testing.T) {
	content := `
port: "8091"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !cfg.EnableRequestLogging {
		t.Fatalf("expected request logging to stay enabled when the YAML key is omitted")
	}
}

func TestLoadYAMLDisablesLoggingExplicitly(t *testing.T) {
	content := `
enable_request_logging: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.EnableRequestLogging {
		t.Fatalf("expected request logging to be disabled by the YAML file")
	}
}

func TestLoadCLIOverridesWinOverEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CAPACITY", "10")

	port := "7070"
	values := "1,2"
	weights := "3,4"
	capacity := 99

	cfg, err := Load(&CLIOverrides{
		Port:       &port,
		ValuesStr:  &values,
		WeightsStr: &weights,
		Capacity:   &capacity,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7070" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.InitialCatalog.Capacity != 99 {
		t.Fatalf("expected CLI capacity to win, got %d", cfg.InitialCatalog.Capacity)
	}
	if len(cfg.InitialCatalog.Artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %v", cfg.InitialCatalog.Artifacts)
	}
}

func TestLoadRejectsLoneValuesFlag(t *testing.T) {
	values := "1,2"

	if _, err := Load(&CLIOverrides{ValuesStr: &values}); err == nil {
		t.Fatalf("expected error when weights flag is missing")
	}
}

func TestLoadRejectsMismatchedFlagLengths(t *testing.T) {
	values := "1,2,3"
	weights := "1,2"

	if _, err := Load(&CLIOverrides{ValuesStr: &values, WeightsStr: &weights}); err == nil {
		t.Fatalf("expected error for mismatched list lengths")
	}
}

func TestParseIntList(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := parseIntList("0,2,3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []int{0, 2, 3}; len(got) != len(want) {
			t.Fatalf("unexpected entries: %v", got)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := parseIntList(" , "); err == nil {
			t.Fatalf("expected error for empty string")
		}
		if _, err := parseIntList("1,a"); err == nil {
			t.Fatalf("expected error for invalid integer")
		}
		if _, err := parseIntList("1,-2"); err == nil {
			t.Fatalf("expected error for negative entry")
		}
	})
}
