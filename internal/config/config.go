// Package config loads and validates YAML run configurations for the
// mapper command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config describes one Mapper run.
type Config struct {
	Input       string           `yaml:"input" validate:"required"`
	Lens        LensConfig       `yaml:"lens"`
	Cover       CoverConfig      `yaml:"cover"`
	Clustering  ClusteringConfig `yaml:"clustering"`
	Workers     int              `yaml:"workers" validate:"gte=0"`
	MemoryLimit int64            `yaml:"memory_limit" validate:"gte=0"`
	Nerve       string           `yaml:"nerve" validate:"oneof=indexed pairwise"`
	LogLevel    string           `yaml:"log_level" validate:"oneof=debug info warn error"`
	Output      OutputConfig     `yaml:"output"`
}

// LensConfig selects the filter function.
type LensConfig struct {
	Type        string    `yaml:"type" validate:"oneof=projection norm"`
	Coordinates []int     `yaml:"coordinates" validate:"required_if=Type projection,dive,gte=0"`
	Center      []float64 `yaml:"center" validate:"required_if=Type norm"`
}

// CoverConfig holds the cover parameters. Ranges may be omitted to derive
// them from the data.
type CoverConfig struct {
	Ranges   [][2]float64 `yaml:"ranges"`
	Lengths  []float64    `yaml:"lengths" validate:"required,dive,gt=0"`
	Overlaps []float64    `yaml:"overlaps" validate:"required,dive,gte=0"`
}

// ClusteringConfig selects and parameterises the backend.
type ClusteringConfig struct {
	Algorithm      string  `yaml:"algorithm" validate:"oneof=dbscan kmeans single"`
	Eps            float64 `yaml:"eps" validate:"required_if=Algorithm dbscan,gte=0"`
	MinSamples     int     `yaml:"min_samples" validate:"gte=0"`
	K              int     `yaml:"k" validate:"required_if=Algorithm kmeans,gte=0"`
	MaxIter        int     `yaml:"max_iter" validate:"gte=0"`
	Seed           int64   `yaml:"seed"`
	Metric         string  `yaml:"metric"`
	MinClusterSize int     `yaml:"min_cluster_size" validate:"gte=0"`
}

// OutputConfig describes where the graph document goes.
type OutputConfig struct {
	Store       string `yaml:"store" validate:"oneof=local s3 minio"`
	Path        string `yaml:"path" validate:"required"`
	Bucket      string `yaml:"bucket" validate:"required_unless=Store local"`
	Prefix      string `yaml:"prefix"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint" validate:"required_if=Store minio"`
	AccessKey   string `yaml:"access_key"`
	SecretKey   string `yaml:"secret_key"`
	Secure      bool   `yaml:"secure"`
	Codec       string `yaml:"codec" validate:"oneof=json go-json"`
	Pretty      bool   `yaml:"pretty"`
	Compression string `yaml:"compression" validate:"oneof=none lz4 zstd"`
	RateLimit   int64  `yaml:"rate_limit" validate:"gte=0"`
}

// Load reads, defaults and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a YAML configuration.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Lens.Type == "" {
		c.Lens.Type = "projection"
	}
	if c.Clustering.Algorithm == "" {
		c.Clustering.Algorithm = "dbscan"
	}
	if c.Clustering.Algorithm == "dbscan" && c.Clustering.MinSamples == 0 {
		c.Clustering.MinSamples = 3
	}
	if c.Nerve == "" {
		c.Nerve = "indexed"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Output.Store == "" {
		c.Output.Store = "local"
	}
	if c.Output.Path == "" {
		c.Output.Path = "graph.json"
	}
	if c.Output.Codec == "" {
		c.Output.Codec = "go-json"
	}
	if c.Output.Compression == "" {
		c.Output.Compression = "none"
	}
}

// Validate checks field constraints and the cross-field cover shape.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s failed on %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}

	dim := len(c.Cover.Lengths)
	if len(c.Cover.Overlaps) != dim {
		return fmt.Errorf("config: cover has %d lengths but %d overlaps", dim, len(c.Cover.Overlaps))
	}
	if c.Cover.Ranges != nil && len(c.Cover.Ranges) != dim {
		return fmt.Errorf("config: cover has %d lengths but %d ranges", dim, len(c.Cover.Ranges))
	}
	if c.Lens.Type == "projection" && len(c.Lens.Coordinates) != dim {
		return fmt.Errorf("config: projection lens has %d coordinates for a %d-dimensional cover", len(c.Lens.Coordinates), dim)
	}
	if c.Lens.Type == "norm" && dim != 1 {
		return fmt.Errorf("config: norm lens needs a 1-dimensional cover, got %d", dim)
	}
	return nil
}
