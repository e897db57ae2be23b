package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNoPrimaryStore is returned when no primary store URL is configured.
// It is fatal: analysis cannot start without the authoritative id
// generator, and the condition is never retried.
var ErrNoPrimaryStore = errors.New("primary store URL is required (set DATABASE_URL or primary_store_url)")

// FileConfig is the on-disk YAML configuration shape. Pointer fields
// distinguish "unset" from zero values so precedence can be applied.
type FileConfig struct {
	PrimaryStoreURL      *string `yaml:"primary_store_url"`
	SecurityForkURL      *string `yaml:"security_fork_url"`
	QualityForkURL       *string `yaml:"quality_fork_url"`
	PerformanceForkURL   *string `yaml:"performance_fork_url"`
	BestPracticesForkURL *string `yaml:"best_practices_fork_url"`
	FailurePolicy        *string `yaml:"failure_policy"` // fail_fast | best_effort

	Include  *string `yaml:"include"`
	Exclude  *string `yaml:"exclude"`
	MaxBytes *int64  `yaml:"max_bytes"`
	NoColor  *bool   `yaml:"no_color"`
	Debug    *bool   `yaml:"debug"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .quadlens.yml/.yaml and quadlens.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".quadlens.yml", ".quadlens.yaml", "quadlens.yml", "quadlens.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "quadlens", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// StoreConfig holds the resolved store URLs and failure policy. It is
// produced once at startup and passed explicitly to the coordinator; no
// component consults the environment after this point.
type StoreConfig struct {
	PrimaryURL           string
	SecurityForkURL      string
	QualityForkURL       string
	PerformanceForkURL   string
	BestPracticesForkURL string
	FailurePolicy        string
}

// ResolveStores merges the environment over the file configs (local over
// global) for the store surface. Environment variables are authoritative
// for URLs, matching the deployment contract.
func ResolveStores(local, global FileConfig) StoreConfig {
	sc := StoreConfig{
		PrimaryURL:           fromEnvOr("DATABASE_URL", local.PrimaryStoreURL, global.PrimaryStoreURL),
		SecurityForkURL:      fromEnvOr("SECURITY_FORK_URL", local.SecurityForkURL, global.SecurityForkURL),
		QualityForkURL:       fromEnvOr("QUALITY_FORK_URL", local.QualityForkURL, global.QualityForkURL),
		PerformanceForkURL:   fromEnvOr("PERFORMANCE_FORK_URL", local.PerformanceForkURL, global.PerformanceForkURL),
		BestPracticesForkURL: fromEnvOr("BEST_PRACTICES_FORK_URL", local.BestPracticesForkURL, global.BestPracticesForkURL),
		FailurePolicy:        pickString("", local.FailurePolicy, global.FailurePolicy),
	}
	return sc
}

// Validate checks the resolved store configuration once, at startup.
func (sc StoreConfig) Validate() error {
	if sc.PrimaryURL == "" {
		return ErrNoPrimaryStore
	}
	if sc.FailurePolicy != "" && sc.FailurePolicy != "fail_fast" && sc.FailurePolicy != "best_effort" {
		return errors.New("failure_policy must be fail_fast or best_effort")
	}
	return nil
}

func fromEnvOr(key string, local, global *string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return pickString("", local, global)
}

func pickString(flag string, local, global *string) string {
	if flag != "" {
		return flag
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

// PickString resolves CLI flag > local > global for file-level options.
func PickString(flag string, local, global *string) string { return pickString(flag, local, global) }

// PickInt64 resolves CLI flag > local > global, treating 0 as unset only
// for the file values.
func PickInt64(flag int64, local, global *int64) int64 {
	if flag != 0 {
		return flag
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return 0
}

// PickBool resolves a boolean with CLI winning when set true, otherwise
// falling back to local then global file values.
func PickBool(flag bool, local, global *bool) bool {
	if flag {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
