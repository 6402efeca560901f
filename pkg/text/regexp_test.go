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
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexpTextReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        Rules
		want         string
		wantCount    int
		wantError    string
		wantModified bool
	}{
		{
			name:         "whole_word_replacement",
			content:      "class EngineGas extends Engine {}",
			rules:        Rules{WholeWord("Engine", "Project")},
			want:         "class EngineGas extends Project {}",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "embedded_identifier_untouched",
			content:      "engineer engines engine_x",
			rules:        Rules{WholeWord("engine", "project")},
			want:         "engineer engines engine_x",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "case_sensitive",
			content:      "Car car CAR",
			rules:        Rules{WholeWord("car", "commodity")},
			want:         "Car commodity CAR",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "rules_chain_in_order",
			content: "engine",
			rules: Rules{
				WholeWord("engine", "motor"),
				WholeWord("motor", "project"),
			},
			want:         "project",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:         "hyphen_is_a_boundary",
			content:      `"artifactId": "car-engine-json"`,
			rules:        Rules{WholeWord("car-engine-json", "project-commodity-json")},
			want:         `"artifactId": "project-commodity-json"`,
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "replacement_is_literal",
			content:      "engine",
			rules:        Rules{WholeWord("engine", "$1${0}")},
			want:         "$1${0}",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "same_replacement_is_not_a_modification",
			content:      "engine",
			rules:        Rules{WholeWord("engine", "engine")},
			want:         "engine",
			wantCount:    1,
			wantModified: false,
		},
		{
			name:         "empty_content",
			content:      "",
			rules:        Rules{WholeWord("engine", "project")},
			want:         "",
			wantModified: false,
		},
		{
			name:         "empty_rules",
			content:      "engine",
			rules:        Rules{},
			want:         "engine",
			wantModified: false,
		},
		{
			name:      "invalid_utf8",
			content:   "engine \xff",
			rules:     Rules{WholeWord("engine", "project")},
			wantError: "not valid UTF-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewRegexpTextReplacer()
			result, err := replacer.ReplaceText(
				context.Background(),
				strings.NewReader(tt.content),
				tt.rules,
			)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestRegexpTextReplacer_ValidateRules(t *testing.T) {
	replacer := NewRegexpTextReplacer()

	require.NoError(t, replacer.ValidateRules(Rules{WholeWord("a", "b")}))
	require.NoError(t, replacer.ValidateRules(nil))

	err := replacer.ValidateRules(Rules{WholeWord("a", "b"), {Replacement: "c"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule 1: pattern is required")
}

func TestRule_String(t *testing.T) {
	assert.Equal(t, `\bengines\.EngineGas\b -> x`, Rule{Pattern: regexp.MustCompile(`\bengines\.EngineGas\b`), Replacement: "x"}.String())
	assert.Equal(t, `\bcar\b -> commodity`, WholeWord("car", "commodity").String())
}
