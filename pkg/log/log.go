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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/transformpoc/pkg/operation"
)

// 🎨 Display configuration
const (
	entryIndent = 2  // spaces to indent change entries
	kindWidth   = 8  // width for the change kind
	nameWidth   = 35 // base width for the old name
)

// 🎯 Logger prints one console line per change and mirrors it into zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	changes []operation.Change
}

// 🏭 New creates a new logger writing changes to console
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 formatChange formats a change for display
func (l *Logger) formatChange(c operation.Change) string {
	var symbol rune
	var symbolColor color.Attribute
	switch c.Kind {
	case operation.DirRenamed:
		symbol = '▸'
		symbolColor = color.FgCyan
	case operation.FileRenamed:
		symbol = '→'
		symbolColor = color.FgBlue
	case operation.ContentRewritten:
		symbol = '⟳'
		symbolColor = color.FgGreen
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	prefix := fmt.Sprintf("%*s%s %s",
		entryIndent, "",
		color.New(symbolColor).Sprint(string(symbol)),
		color.New(color.Faint).Sprintf("%-*s", kindWidth, c.Kind))

	if c.Kind == operation.ContentRewritten {
		return fmt.Sprintf("%s %-*s %s", prefix, nameWidth, c.Path,
			color.New(color.FgYellow).Sprintf("%d replacements", c.Replacements))
	}
	return fmt.Sprintf("%s %-*s %s", prefix, nameWidth, c.OldName,
		color.New(color.Bold).Sprint(c.Path))
}

// 📝 ObserveChange implements operation.Observer
func (l *Logger) ObserveChange(ctx context.Context, c operation.Change) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.changes = append(l.changes, c)

	fmt.Fprintln(l.console, l.formatChange(c))

	l.zlog.Debug().
		Str("kind", c.Kind.String()).
		Str("path", c.Path).
		Str("old_name", c.OldName).
		Str("new_name", c.NewName).
		Int("replacements", c.Replacements).
		Msg("change")
}

// 📝 Header prints the run header
func (l *Logger) Header(src, dst string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("transformpoc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+src+" → "+dst))
	l.zlog.Info().Str("source", src).Str("target", dst).Msg("transform started")
}

// 📊 Summary prints totals for every change seen so far
func (l *Logger) Summary() {
	l.mu.Lock()
	defer l.mu.Unlock()

	var dirs, files, rewrites, replacements int
	for _, c := range l.changes {
		switch c.Kind {
		case operation.DirRenamed:
			dirs++
		case operation.FileRenamed:
			files++
		case operation.ContentRewritten:
			rewrites++
			replacements += c.Replacements
		}
	}

	fmt.Fprintf(l.console, "\n%s %d directories renamed, %d files renamed, %d files rewritten (%d replacements)\n",
		color.New(color.FgMagenta).Sprint("◆"), dirs, files, rewrites, replacements)

	l.zlog.Info().
		Int("dirs_renamed", dirs).
		Int("files_renamed", files).
		Int("files_rewritten", rewrites).
		Int("replacements", replacements).
		Msg("transform summary")
}
