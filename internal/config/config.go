package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var policyYAML []byte

type Config struct {
	Database DatabaseConfig
	Web      WebConfig
	Log      LogConfig
	Policy   PolicyConfig
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type WebConfig struct {
	Host string // defaults to 0.0.0.0
	Port int    // defaults to 8080
}

type LogConfig struct {
	Level  string // zerolog level name, defaults to info
	Format string // console or json, defaults to console
}

// PolicyConfig holds the tunables of people reconstruction and cluster suggestions.
type PolicyConfig struct {
	People      PeoplePolicy     `yaml:"people"`
	Suggestions SuggestionPolicy `yaml:"suggestions"`
	Previews    PreviewPolicy    `yaml:"previews"`
}

type PeoplePolicy struct {
	// MinClusterFaces is the number of visible faces an unnamed cluster needs
	// before it is shown as a person.
	MinClusterFaces int `yaml:"min_cluster_faces"`
}

type SuggestionPolicy struct {
	MinCandidateFaces int     `yaml:"min_candidate_faces"`
	SampleSize        int     `yaml:"sample_size"`
	Threshold         float64 `yaml:"threshold"`
	MaxSuggestions    int     `yaml:"max_suggestions"`
}

type PreviewPolicy struct {
	MaxFaces int `yaml:"max_faces"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString returns the environment variable or the default when unset.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// DefaultPolicy returns the embedded policy.
func DefaultPolicy() PolicyConfig {
	var policy PolicyConfig
	if err := yaml.Unmarshal(policyYAML, &policy); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded policy.yaml: " + err.Error())
	}
	return policy
}

// LoadPolicy reads a policy file on top of the embedded defaults.
// Keys missing from the file keep their default values.
func LoadPolicy(path string) (PolicyConfig, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return policy, fmt.Errorf("reading policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("parsing policy file %s: %w", path, err)
	}
	if err := policy.Validate(); err != nil {
		return policy, fmt.Errorf("policy file %s: %w", path, err)
	}
	return policy, nil
}

// Validate rejects policies the engine cannot run with.
func (p PolicyConfig) Validate() error {
	switch {
	case p.People.MinClusterFaces < 1:
		return fmt.Errorf("people.min_cluster_faces must be positive, got %d", p.People.MinClusterFaces)
	case p.Suggestions.MinCandidateFaces < 1:
		return fmt.Errorf("suggestions.min_candidate_faces must be positive, got %d", p.Suggestions.MinCandidateFaces)
	case p.Suggestions.SampleSize < 1:
		return fmt.Errorf("suggestions.sample_size must be positive, got %d", p.Suggestions.SampleSize)
	case p.Suggestions.MaxSuggestions < 1:
		return fmt.Errorf("suggestions.max_suggestions must be positive, got %d", p.Suggestions.MaxSuggestions)
	case p.Previews.MaxFaces < 1:
		return fmt.Errorf("previews.max_faces must be positive, got %d", p.Previews.MaxFaces)
	}
	return nil
}

// Load builds the configuration from the environment.
// A broken policy file is reported as an error since thresholds silently
// falling back to defaults would change every ranking.
func Load() (*Config, error) {
	policy, err := LoadPolicy(os.Getenv("PEOPLE_POLICY_PATH"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Web: WebConfig{
			Host: envString("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8080),
		},
		Log: LogConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "console"),
		},
		Policy: policy,
	}, nil
}
