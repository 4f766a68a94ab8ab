package main

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	log "github.com/sirupsen/logrus"

	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/track"
)

// Config is the kftool configuration file.
type Config struct {
	LogLevel        string          `yaml:"log_level"`
	Animation       AnimationConfig `yaml:"animation"`
	Sample          SampleConfig    `yaml:"sample"`
	Bundle          BundleConfig    `yaml:"bundle"`
	GlobalSequences []int           `yaml:"global_sequences"`
}

// NewDefaultConfig returns the configuration used when no file is present.
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Animation: AnimationConfig{
			Start: 0,
			End:   1000,
		},
		Sample: SampleConfig{
			Step:    100,
			Workers: 4,
		},
		Bundle: BundleConfig{
			Compression: "zstd",
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Required,
			validation.In("trace", "debug", "info", "warn", "warning", "error")),
		validation.Field(&c.GlobalSequences, validation.Each(validation.Min(0))),
	); err != nil {
		return err
	}
	if err := c.Animation.Validate(); err != nil {
		return err
	}
	if err := c.Sample.Validate(); err != nil {
		return err
	}

	return c.Bundle.Validate()
}

// Level returns the logrus level for LogLevel, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}

	return lvl
}

// Resolver returns the global sequence table; the index is the sequence id.
func (c *Config) Resolver() track.GlobalSequences {
	return track.GlobalSequences(c.GlobalSequences)
}

// AnimationConfig is the animation window tracks are sampled in.
type AnimationConfig struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Validate validates the animation window.
func (c *AnimationConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Start, validation.Min(0)),
		validation.Field(&c.End, validation.Min(0)),
	); err != nil {
		return err
	}
	if c.End < c.Start {
		return fmt.Errorf("animation: end %d is before start %d", c.End, c.Start)
	}

	return nil
}

// Range returns the window as a track range.
func (c *AnimationConfig) Range() track.Range {
	return track.Range{Start: c.Start, End: c.End}
}

// SampleConfig controls the sample command.
type SampleConfig struct {
	Step    int `yaml:"step"`
	Workers int `yaml:"workers"`
}

// Validate validates the sampling configuration.
func (c *SampleConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Step, validation.Required, validation.Min(1)),
		validation.Field(&c.Workers, validation.Required, validation.Min(1), validation.Max(256)),
	)
}

// BundleConfig controls the convert command.
type BundleConfig struct {
	Compression string `yaml:"compression"`
}

// Validate validates the bundle configuration.
func (c *BundleConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Compression, validation.Required, validation.In("none", "zstd", "s2", "lz4")),
	)
}

// CompressionType returns the configured payload compression.
func (c *BundleConfig) CompressionType() format.CompressionType {
	ct, ok := format.ParseCompression(c.Compression)
	if !ok {
		return format.CompressionZstd
	}

	return ct
}
