// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/transformpoc/pkg/mapping"
	"github.com/walteh/transformpoc/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// DefaultContentGlobs selects the files whose content is rewritten
var DefaultContentGlobs = []string{"**/*.java", "**/*.xml", "**/*.json"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config describes a single transform run
type Config struct {
	SourceDir    string          `json:"source_dir" yaml:"source_dir"`
	TargetDir    string          `json:"target_dir" yaml:"target_dir"`
	Replacements mapping.Mapping `json:"replacements" yaml:"replacements"`
	ContentGlobs []string        `json:"content_globs,omitempty" yaml:"content_globs,omitempty"`
	RuleOrder    string          `json:"rule_order,omitempty" yaml:"rule_order,omitempty"`
}

// 🎯 Load reads and parses the config at path.
// Relative directories in the file are resolved against the file's directory.
// The result is not validated so that command line values can still be applied.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	base := filepath.Dir(path)
	cfg.SourceDir = resolve(base, cfg.SourceDir)
	cfg.TargetDir = resolve(base, cfg.TargetDir)

	logger.Debug().
		Str("source_dir", cfg.SourceDir).
		Str("target_dir", cfg.TargetDir).
		Int("replacements", cfg.Replacements.Len()).
		Msg("configuration loaded")

	return cfg, nil
}

func resolve(base, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// Override applies non-empty command line values on top of cfg.
// Pairs are applied after the file's replacements so they win on conflicts.
func (cfg *Config) Override(sourceDir, targetDir string, pairs *mapping.Mapping) {
	if sourceDir != "" {
		cfg.SourceDir = sourceDir
	}
	if targetDir != "" {
		cfg.TargetDir = targetDir
	}
	if pairs != nil {
		cfg.Replacements.Merge(pairs)
	}
}

// 🔍 Validate checks required fields and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.SourceDir == "" {
		return errors.Errorf("source_dir is required")
	}
	if cfg.TargetDir == "" {
		return errors.Errorf("target_dir is required")
	}

	cfg.SourceDir = filepath.Clean(cfg.SourceDir)
	cfg.TargetDir = filepath.Clean(cfg.TargetDir)

	if len(cfg.ContentGlobs) == 0 {
		cfg.ContentGlobs = append([]string(nil), DefaultContentGlobs...)
	}
	for _, g := range cfg.ContentGlobs {
		if !doublestar.ValidatePattern(g) {
			return errors.Errorf("invalid content glob %q", g)
		}
	}

	if _, err := rules.ParseOrder(cfg.RuleOrder); err != nil {
		return errors.Errorf("validating rule_order: %w", err)
	}

	return nil
}

// Order returns the parsed rule order; call Validate first
func (cfg *Config) Order() rules.Order {
	o, _ := rules.ParseOrder(cfg.RuleOrder)
	return o
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	var b strings.Builder
	b.WriteString(cfg.SourceDir)
	b.WriteString(" -> ")
	b.WriteString(cfg.TargetDir)
	if cfg.Replacements.Len() > 0 {
		b.WriteString(" [")
		b.WriteString(cfg.Replacements.String())
		b.WriteString("]")
	}
	return b.String()
}
