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

package operation

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/transformpoc/pkg/config"
	"github.com/walteh/transformpoc/pkg/mapping"
	"github.com/walteh/transformpoc/pkg/rules"
	"github.com/walteh/transformpoc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Transform copies SourceDir to TargetDir, then renames and rewrites the copy.
//
// The copy happens before the rules are built, so a mapping without the
// engine or car keys fails after TargetDir has already been replaced.
// A failure part way through leaves TargetDir as far as the walk got.
func Transform(ctx context.Context, opts Options) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	if err := opts.validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}

	globs := opts.ContentGlobs
	if len(globs) == 0 {
		globs = config.DefaultContentGlobs
	}
	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			return nil, errors.Errorf("invalid content glob %q", g)
		}
	}

	replacements := opts.Replacements
	if replacements == nil {
		replacements = &mapping.Mapping{}
	}

	if err := CopyTree(ctx, opts.SourceDir, opts.TargetDir); err != nil {
		return nil, errors.Errorf("copying source tree: %w", err)
	}

	rs, err := rules.BuildOrdered(replacements, opts.Order)
	if err != nil {
		return nil, errors.Errorf("building rules: %w", err)
	}

	logger.Debug().Int("rules", len(rs)).Str("order", opts.Order.String()).Msg("built substitution rules")
	for i, r := range rs {
		logger.Trace().Int("index", i).Str("rule", r.String()).Msg("rule")
	}

	w := &walker{
		root:     opts.TargetDir,
		rules:    rs,
		globs:    globs,
		replacer: text.NewRegexpTextReplacer(),
		observer: opts.Observer,
		report:   &Report{},
	}

	if err := w.walkDir(ctx, "."); err != nil {
		return w.report, errors.Errorf("transforming %s: %w", opts.TargetDir, err)
	}

	logger.Debug().
		Int("dirs_renamed", w.report.Count(DirRenamed)).
		Int("files_renamed", w.report.Count(FileRenamed)).
		Int("files_rewritten", w.report.Count(ContentRewritten)).
		Msg("transform complete")

	return w.report, nil
}

type walker struct {
	root     string
	rules    text.Rules
	globs    []string
	replacer *text.RegexpTextReplacer
	observer Observer
	report   *Report
}

func (w *walker) record(ctx context.Context, c Change) {
	w.report.Changes = append(w.report.Changes, c)
	if w.observer != nil {
		w.observer.ObserveChange(ctx, c)
	}
}

// walkDir handles one level: subdirectory renames, then files, then descent
func (w *walker) walkDir(ctx context.Context, rel string) error {
	dir := filepath.Join(w.root, filepath.FromSlash(rel))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Errorf("reading directory %s: %w", rel, err)
	}

	var dirs []string
	var files []fs.DirEntry
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		} else {
			files = append(files, e)
		}
	}

	for i, name := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		renamed, _ := w.rules.Apply(name)
		if renamed == name {
			continue
		}
		if err := os.Rename(filepath.Join(dir, name), filepath.Join(dir, renamed)); err != nil {
			return errors.Errorf("renaming directory %s: %w", path.Join(rel, name), err)
		}
		dirs[i] = renamed
		w.record(ctx, Change{Kind: DirRenamed, Path: path.Join(rel, renamed), OldName: name, NewName: renamed})
	}

	for _, e := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.processFile(ctx, rel, dir, e); err != nil {
			return err
		}
	}

	for _, name := range dirs {
		if err := w.walkDir(ctx, path.Join(rel, name)); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) processFile(ctx context.Context, rel, dir string, e fs.DirEntry) error {
	name := e.Name()
	renamed, _ := w.rules.Apply(name)
	if renamed != name {
		if err := os.Rename(filepath.Join(dir, name), filepath.Join(dir, renamed)); err != nil {
			return errors.Errorf("renaming file %s: %w", path.Join(rel, name), err)
		}
		w.record(ctx, Change{Kind: FileRenamed, Path: path.Join(rel, renamed), OldName: name, NewName: renamed})
	}

	// symlinks keep their name change only; their targets are not ours to rewrite
	if !e.Type().IsRegular() {
		return nil
	}

	relPath := path.Join(rel, renamed)
	if !w.isContentFile(relPath) {
		return nil
	}

	return w.rewrite(ctx, filepath.Join(dir, renamed), relPath)
}

func (w *walker) isContentFile(relPath string) bool {
	for _, g := range w.globs {
		if ok, _ := doublestar.Match(g, relPath); ok {
			return true
		}
	}
	return false
}

func (w *walker) rewrite(ctx context.Context, abs, relPath string) error {
	content, err := os.ReadFile(abs)
	if err != nil {
		return errors.Errorf("reading %s: %w", relPath, err)
	}

	result, err := w.replacer.ReplaceText(ctx, bytes.NewReader(content), w.rules)
	if err != nil {
		return errors.Errorf("replacing text in %s: %w", relPath, err)
	}
	if !result.WasModified {
		return nil
	}

	if err := writeFileAtomic(abs, result.ModifiedContent); err != nil {
		return errors.Errorf("writing %s: %w", relPath, err)
	}

	w.record(ctx, Change{
		Kind:         ContentRewritten,
		Path:         relPath,
		OldName:      path.Base(relPath),
		NewName:      path.Base(relPath),
		Replacements: result.ReplacementCount,
	})
	return nil
}

// writeFileAtomic replaces target via a sibling temp file, keeping the existing mode
func writeFileAtomic(target string, content []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return errors.Errorf("stat: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
