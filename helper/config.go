package helper

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FusionConfiguration holds the default fusion parameters applied when a
// request does not override them
type FusionConfiguration struct {
	Strategy        string  `yaml:"strategy"`
	PrimaryWeight   float64 `yaml:"primary_weight"`
	SecondaryWeight float64 `yaml:"secondary_weight"`
	TopK            int     `yaml:"top_k"`
	DedupThreshold  float64 `yaml:"dedup_threshold"`
}

// PracticesConfiguration configures the teaching-practice lookup service
type PracticesConfiguration struct {
	BaseURL      string `yaml:"base_url"`
	APIKeyEnv    string `yaml:"api_key_env"`
	CacheTTLSecs int    `yaml:"cache_ttl_secs"`
	TimeoutSecs  int    `yaml:"timeout_secs"`
}

// GeneratorConfiguration selects and configures the text generator
type GeneratorConfiguration struct {
	Provider  string `yaml:"provider"` // openai or anthropic
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url,omitempty"`
}

// EmbedderConfiguration selects and configures the embedder
type EmbedderConfiguration struct {
	Type      string `yaml:"type"` // hugot or openai
	Model     string `yaml:"model,omitempty"`
	Dimension int    `yaml:"dimension"`
}

// PlannerConfiguration is the root configuration for the lesson planner
type PlannerConfiguration struct {
	Fusion    FusionConfiguration    `yaml:"fusion"`
	Practices PracticesConfiguration `yaml:"practices"`
	Generator GeneratorConfiguration `yaml:"generator"`
	Embedder  EmbedderConfiguration  `yaml:"embedder"`
}

// LoadPlannerConfiguration reads a config from the given path. If the file
// does not exist, defaults are returned.
func LoadPlannerConfiguration(path string) (*PlannerConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultPlannerConfiguration(), nil
		}
		return nil, NewError("read planner configuration", err)
	}

	var cfg PlannerConfiguration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, NewError("parse planner configuration", err)
	}
	applyPlannerDefaults(&cfg)

	return &cfg, nil
}

// SavePlannerConfiguration writes the config to the given path, creating
// directories as needed
func SavePlannerConfiguration(path string, cfg *PlannerConfiguration) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewError("create configuration directory", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return NewError("marshal planner configuration", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultPlannerConfiguration returns the built-in defaults
func DefaultPlannerConfiguration() *PlannerConfiguration {
	return &PlannerConfiguration{
		Fusion: FusionConfiguration{
			Strategy:        "weighted",
			PrimaryWeight:   0.6,
			SecondaryWeight: 0.4,
			TopK:            5,
			DedupThreshold:  0.8,
		},
		Practices: PracticesConfiguration{
			APIKeyEnv:    "PRACTICES_API_KEY",
			CacheTTLSecs: 3600,
			TimeoutSecs:  30,
		},
		Generator: GeneratorConfiguration{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Embedder: EmbedderConfiguration{
			Type:      "hugot",
			Dimension: 384,
		},
	}
}

func applyPlannerDefaults(cfg *PlannerConfiguration) {
	def := DefaultPlannerConfiguration()
	if cfg.Fusion.Strategy == "" {
		cfg.Fusion = def.Fusion
	}
	if cfg.Practices.CacheTTLSecs == 0 {
		cfg.Practices.CacheTTLSecs = def.Practices.CacheTTLSecs
	}
	if cfg.Practices.TimeoutSecs == 0 {
		cfg.Practices.TimeoutSecs = def.Practices.TimeoutSecs
	}
	if cfg.Practices.APIKeyEnv == "" {
		cfg.Practices.APIKeyEnv = def.Practices.APIKeyEnv
	}
	if cfg.Generator.Provider == "" {
		cfg.Generator = def.Generator
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder = def.Embedder
	}
	if cfg.Embedder.Dimension == 0 {
		cfg.Embedder.Dimension = def.Embedder.Dimension
	}
}
