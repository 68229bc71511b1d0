// Package config loads server settings from the environment and corrector
// settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ngramcorrector/internal/model"
	"ngramcorrector/pkg/options"
)

var ErrInvalidConfig = errors.New("invalid corrector configuration")

// CorrectorFile models a corrector YAML file. Keys left out keep their
// defaults.
type CorrectorFile struct {
	Order              int      `yaml:"order"`
	MaxThreshold       int      `yaml:"max_threshold"`
	InLexiconThreshold int      `yaml:"in_lexicon_threshold"`
	MinCandidates      int      `yaml:"min_candidates"`
	TopKSuggestions    int      `yaml:"top_k_suggestions"`
	MinWordLength      int      `yaml:"min_word_length"`
	IgnoreCase         bool     `yaml:"ignore_case"`
	PreserveCase       bool     `yaml:"preserve_case"`
	ExtraWords         []string `yaml:"extra_words,omitempty"`
}

// DefaultCorrectorFile mirrors options.DefaultOptions.
func DefaultCorrectorFile() CorrectorFile {
	d := options.DefaultOptions
	return CorrectorFile{
		Order:              model.DefaultOrder,
		MaxThreshold:       d.MaxThreshold,
		InLexiconThreshold: d.InLexiconThreshold,
		MinCandidates:      d.MinCandidates,
		TopKSuggestions:    d.TopKSuggestions,
		MinWordLength:      d.MinWordLength,
		IgnoreCase:         d.IgnoreCase,
		PreserveCase:       d.PreserveCase,
	}
}

// ParseCorrectorFile decodes data over the defaults and validates it.
func ParseCorrectorFile(data []byte) (*CorrectorFile, error) {
	cf := DefaultCorrectorFile()
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("decoding corrector config: %w", err)
	}
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return &cf, nil
}

// LoadCorrectorFile reads path. An empty path yields the defaults.
func LoadCorrectorFile(path string) (*CorrectorFile, error) {
	if path == "" {
		cf := DefaultCorrectorFile()
		return &cf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corrector config: %w", err)
	}
	return ParseCorrectorFile(data)
}

func (cf *CorrectorFile) Validate() error {
	switch {
	case cf.Order < 1:
		return fmt.Errorf("%w: order %d", ErrInvalidConfig, cf.Order)
	case cf.MaxThreshold < 0 || cf.InLexiconThreshold < 0:
		return fmt.Errorf("%w: negative threshold", ErrInvalidConfig)
	case cf.MinCandidates < 1:
		return fmt.Errorf("%w: min_candidates %d", ErrInvalidConfig, cf.MinCandidates)
	case cf.TopKSuggestions < 0:
		return fmt.Errorf("%w: top_k_suggestions %d", ErrInvalidConfig, cf.TopKSuggestions)
	}
	return nil
}

// Options converts the file into corrector options.
func (cf *CorrectorFile) Options() []options.Options {
	opts := []options.Options{
		options.WithMaxThreshold(cf.MaxThreshold),
		options.WithInLexiconThreshold(cf.InLexiconThreshold),
		options.WithMinCandidates(cf.MinCandidates),
		options.WithTopKSuggestions(cf.TopKSuggestions),
		options.WithMinWordLength(cf.MinWordLength),
	}
	if cf.IgnoreCase {
		opts = append(opts, options.WithIgnoreCase())
	}
	if !cf.PreserveCase {
		opts = append(opts, options.WithoutPreserveCase())
	}
	return opts
}

// ModelOptions returns the options for building or loading a model.
func (cf *CorrectorFile) ModelOptions() []model.Option {
	if len(cf.ExtraWords) == 0 {
		return nil
	}
	return []model.Option{model.WithExtraWords(cf.ExtraWords)}
}
