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

package text

import (
	"context"
	"io"
	"regexp"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is a single regexp substitution. Replacement is inserted literally.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// 📋 Rules is an ordered rule list; each rule sees the output of the previous one
type Rules []Rule

// 📊 ReplacementResult holds the outcome of running rules over some content
type ReplacementResult struct {
	OriginalContent  []byte
	ModifiedContent  []byte
	ReplacementCount int
	WasModified      bool
}

// WholeWord builds a rule matching literal only when it is not adjacent to word characters
func WholeWord(literal, replacement string) Rule {
	return Rule{
		Pattern:     regexp.MustCompile(`\b` + regexp.QuoteMeta(literal) + `\b`),
		Replacement: replacement,
	}
}

// String returns the rule as pattern -> replacement
func (r Rule) String() string {
	if r.Pattern == nil {
		return "<nil> -> " + r.Replacement
	}
	return r.Pattern.String() + " -> " + r.Replacement
}

// Apply runs every rule over s in order and returns the result and the number of matches
func (rs Rules) Apply(s string) (string, int) {
	count := 0
	for _, r := range rs {
		if r.Pattern == nil {
			continue
		}
		n := len(r.Pattern.FindAllStringIndex(s, -1))
		if n == 0 {
			continue
		}
		count += n
		s = r.Pattern.ReplaceAllLiteralString(s, r.Replacement)
	}
	return s, count
}

// RegexpTextReplacer applies Rules to UTF-8 text content
type RegexpTextReplacer struct{}

// NewRegexpTextReplacer creates a new RegexpTextReplacer
func NewRegexpTextReplacer() *RegexpTextReplacer {
	return &RegexpTextReplacer{}
}

// ReplaceText reads all of content and applies rules to it
func (r *RegexpTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules Rules) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	if !utf8.Valid(originalContent) {
		return nil, errors.Errorf("content is not valid UTF-8")
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	modified, count := rules.Apply(string(originalContent))
	if modified != string(originalContent) {
		result.WasModified = true
		result.ModifiedContent = []byte(modified)
	}
	result.ReplacementCount = count

	return result, nil
}

// ValidateRules checks that every rule has a pattern
func (r *RegexpTextReplacer) ValidateRules(rules Rules) error {
	for i, rule := range rules {
		if rule.Pattern == nil {
			return errors.Errorf("rule %d: pattern is required", i)
		}
	}
	return nil
}
