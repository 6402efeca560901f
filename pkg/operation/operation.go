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

// Package operation copies a source tree and applies substitution rules to it
package operation

import (
	"context"
	"fmt"

	"github.com/walteh/transformpoc/pkg/config"
	"github.com/walteh/transformpoc/pkg/mapping"
	"github.com/walteh/transformpoc/pkg/rules"
	"gitlab.com/tozd/go/errors"
)

// 🎨 ChangeKind describes what happened to an entry of the target tree
type ChangeKind int

const (
	DirRenamed ChangeKind = iota
	FileRenamed
	ContentRewritten
)

// String returns a short label for k
func (k ChangeKind) String() string {
	switch k {
	case DirRenamed:
		return "dir"
	case FileRenamed:
		return "file"
	case ContentRewritten:
		return "content"
	default:
		return "unknown"
	}
}

// 🖼️ Change is a single mutation made under the target directory
type Change struct {
	Kind ChangeKind
	// Path is slash separated and relative to the target directory, after the change
	Path string
	// OldName and NewName are base names; equal for content rewrites
	OldName string
	NewName string
	// Replacements counts rule matches in the file content
	Replacements int
}

// String formats c for humans
func (c Change) String() string {
	if c.Kind == ContentRewritten {
		return fmt.Sprintf("%s %s (%d replacements)", c.Kind, c.Path, c.Replacements)
	}
	return fmt.Sprintf("%s %s -> %s", c.Kind, c.OldName, c.NewName)
}

// 👀 Observer is notified of every change as it happens
type Observer interface {
	ObserveChange(ctx context.Context, c Change)
}

// 📊 Report lists everything a transform changed, in walk order
type Report struct {
	Changes []Change
}

// Count returns the number of changes of kind k
func (r *Report) Count(k ChangeKind) int {
	n := 0
	for _, c := range r.Changes {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Replacements returns the total number of content replacements
func (r *Report) Replacements() int {
	n := 0
	for _, c := range r.Changes {
		n += c.Replacements
	}
	return n
}

// 🔧 Options contains configuration for a transform
type Options struct {
	// SourceDir is copied into TargetDir; it must exist
	SourceDir string
	// TargetDir is removed and recreated
	TargetDir string
	// Replacements must hold the engine and car keys
	Replacements *mapping.Mapping
	// ContentGlobs select files, by slash path relative to TargetDir, whose content is rewritten
	ContentGlobs []string
	// Order of the rule groups
	Order rules.Order
	// Observer is optional
	Observer Observer
}

// OptionsFromConfig converts a validated config into Options
func OptionsFromConfig(cfg *config.Config) Options {
	m := cfg.Replacements
	return Options{
		SourceDir:    cfg.SourceDir,
		TargetDir:    cfg.TargetDir,
		Replacements: &m,
		ContentGlobs: cfg.ContentGlobs,
		Order:        cfg.Order(),
	}
}

func (o Options) validate() error {
	if o.SourceDir == "" {
		return errors.Errorf("source directory is required")
	}
	if o.TargetDir == "" {
		return errors.Errorf("target directory is required")
	}
	return nil
}
