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

package mapping

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func TestParsePairs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []Pair
		wantErr error
	}{
		{
			name: "ordered_pairs",
			args: []string{"engine=project", "car=commodity", "gas=project1"},
			want: []Pair{
				{Old: "engine", New: "project"},
				{Old: "car", New: "commodity"},
				{Old: "gas", New: "project1"},
			},
		},
		{
			name: "value_keeps_extra_equals",
			args: []string{"engine=a=b"},
			want: []Pair{{Old: "engine", New: "a=b"}},
		},
		{
			name: "empty_value",
			args: []string{"engine="},
			want: []Pair{{Old: "engine", New: ""}},
		},
		{
			name: "duplicate_key_keeps_position",
			args: []string{"engine=a", "car=b", "engine=c"},
			want: []Pair{
				{Old: "engine", New: "c"},
				{Old: "car", New: "b"},
			},
		},
		{
			name: "no_args",
			args: nil,
			want: []Pair{},
		},
		{
			name:    "missing_equals",
			args:    []string{"engine=project", "car"},
			wantErr: ErrMalformedPair,
		},
		{
			name:    "empty_key",
			args:    []string{"=project"},
			wantErr: ErrMalformedPair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParsePairs(tt.args)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Pairs())
		})
	}
}

func TestMapping_Require(t *testing.T) {
	m := New(Pair{Old: "engine", New: "project"})

	require.NoError(t, m.Require("engine"))

	err := m.Require("engine", "car")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingKey))
	assert.Contains(t, err.Error(), `"car"`)
}

func TestMapping_Merge(t *testing.T) {
	base := New(Pair{Old: "engine", New: "project"}, Pair{Old: "car", New: "commodity"})
	base.Merge(New(Pair{Old: "car", New: "thing"}, Pair{Old: "gas", New: "project1"}))

	assert.Equal(t, "engine=project car=thing gas=project1", base.String())
	v, ok := base.Get("car")
	assert.True(t, ok)
	assert.Equal(t, "thing", v)
	assert.False(t, base.Has("suv"))
}

func TestMapping_ZeroValue(t *testing.T) {
	var m Mapping
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has("engine"))
	m.Set("engine", "project")
	assert.Equal(t, 1, m.Len())
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		key    string
		want   string
		wantOk bool
	}{
		{key: "engin", want: "engine", wantOk: true},
		{key: "gass", want: "gas", wantOk: true},
		{key: "hybird", want: "hybrid", wantOk: true},
		{key: "engine", wantOk: false},
		{key: "wheel", wantOk: false},
		{key: "bus", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := Suggest(tt.key)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapping_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{
			name:  "mapping_form_keeps_order",
			input: "suv: crate\nengine: project\ncar: commodity\n",
			want:  "suv=crate engine=project car=commodity",
		},
		{
			name:  "list_form",
			input: "- old: engine\n  new: project\n- old: car\n  new: commodity\n",
			want:  "engine=project car=commodity",
		},
		{
			name:    "scalar_rejected",
			input:   "engine\n",
			wantErr: "must be a mapping or a list",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Mapping
			err := yaml.Unmarshal([]byte(tt.input), &m)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMapping_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "object_form_keeps_order",
			input: `{"sedan": "box", "engine": "project", "car": "commodity"}`,
			want:  "sedan=box engine=project car=commodity",
		},
		{
			name:  "array_form",
			input: `[{"old": "engine", "new": "project"}]`,
			want:  "engine=project",
		},
		{
			name:    "non_string_value",
			input:   `{"engine": 1}`,
			wantErr: true,
		},
		{
			name:    "string_rejected",
			input:   `"engine"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Mapping
			err := json.Unmarshal([]byte(tt.input), &m)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMapping_MarshalJSON(t *testing.T) {
	m := New(Pair{Old: "engine", New: "project"}, Pair{Old: "car", New: "commodity"})
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"engine":"project","car":"commodity"}`, string(data))
}
