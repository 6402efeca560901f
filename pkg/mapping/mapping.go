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
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMalformedPair is returned for a replacement argument without a key=value shape
	ErrMalformedPair = errors.Base("invalid replacement pair")
	// ErrMissingKey is returned when a required mapping key is absent
	ErrMissingKey = errors.Base("missing replacement key")
)

// Vocabulary axis keys with dedicated derived rules
const (
	KeyEngine   = "engine"
	KeyCar      = "car"
	KeyGas      = "gas"
	KeyElectric = "electric"
	KeyHybrid   = "hybrid"
	KeySedan    = "sedan"
	KeySuv      = "suv"
)

// KnownKeys lists every key that drives a derived rule
var KnownKeys = []string{KeyEngine, KeyCar, KeyGas, KeyElectric, KeyHybrid, KeySedan, KeySuv}

// 🔄 Pair is a single old -> new identifier substitution
type Pair struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// 📚 Mapping is an insertion-ordered old -> new table.
// The zero value is an empty mapping ready to use.
type Mapping struct {
	pairs []Pair
	index map[string]int
}

// 🏭 New builds a mapping from pairs, later pairs overriding earlier ones
func New(pairs ...Pair) *Mapping {
	m := &Mapping{}
	for _, p := range pairs {
		m.Set(p.Old, p.New)
	}
	return m
}

// Set adds old -> new. An existing key keeps its position and takes the new value.
func (m *Mapping) Set(old, to string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[old]; ok {
		m.pairs[i].New = to
		return
	}
	m.index[old] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Old: old, New: to})
}

// Get returns the replacement for old
func (m *Mapping) Get(old string) (string, bool) {
	if m == nil || m.index == nil {
		return "", false
	}
	i, ok := m.index[old]
	if !ok {
		return "", false
	}
	return m.pairs[i].New, true
}

// Has reports whether old is present
func (m *Mapping) Has(old string) bool {
	_, ok := m.Get(old)
	return ok
}

// Len returns the number of pairs
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Pairs returns a copy of the pairs in insertion order
func (m *Mapping) Pairs() []Pair {
	if m == nil {
		return nil
	}
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Merge applies every pair of other on top of m
func (m *Mapping) Merge(other *Mapping) {
	for _, p := range other.Pairs() {
		m.Set(p.Old, p.New)
	}
}

// 🔍 Require fails with ErrMissingKey for the first absent key
func (m *Mapping) Require(keys ...string) error {
	for _, k := range keys {
		if !m.Has(k) {
			return errors.Errorf("%w: %q", ErrMissingKey, k)
		}
	}
	return nil
}

// String renders the mapping as space separated key=value pairs
func (m *Mapping) String() string {
	parts := make([]string, 0, m.Len())
	for _, p := range m.Pairs() {
		parts = append(parts, p.Old+"="+p.New)
	}
	return strings.Join(parts, " ")
}

// 📝 ParsePair splits s on its first '='
func ParsePair(s string) (Pair, error) {
	old, to, ok := strings.Cut(s, "=")
	if !ok || old == "" {
		return Pair{}, errors.Errorf("%w: %s", ErrMalformedPair, s)
	}
	return Pair{Old: old, New: to}, nil
}

// 📝 ParsePairs parses every key=value argument into a mapping
func ParsePairs(args []string) (*Mapping, error) {
	m := &Mapping{}
	for _, arg := range args {
		p, err := ParsePair(arg)
		if err != nil {
			return nil, err
		}
		m.Set(p.Old, p.New)
	}
	return m, nil
}

// 🎯 Suggest returns the known key closest to key when key looks like a typo of one.
// Known keys and keys with no close match return false.
func Suggest(key string) (string, bool) {
	for _, k := range KnownKeys {
		if k == key {
			return "", false
		}
	}

	maxDist := 1
	if len(key) >= 5 {
		maxDist = 2
	}

	type candidate struct {
		key  string
		dist int
	}
	var candidates []candidate
	for _, k := range KnownKeys {
		d := fuzzy.LevenshteinDistance(key, k)
		if d <= maxDist && d < len(k) {
			candidates = append(candidates, candidate{key: k, dist: d})
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	return candidates[0].key, true
}

// UnmarshalYAML accepts either a mapping node (document order is kept) or a sequence of {old, new}
func (m *Mapping) UnmarshalYAML(value *yaml.Node) error {
	*m = Mapping{}
	switch value.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			var old, to string
			if err := value.Content[i].Decode(&old); err != nil {
				return errors.Errorf("decoding replacement key at line %d: %w", value.Content[i].Line, err)
			}
			if err := value.Content[i+1].Decode(&to); err != nil {
				return errors.Errorf("decoding replacement %q: %w", old, err)
			}
			if old == "" {
				return errors.Errorf("%w: empty key at line %d", ErrMalformedPair, value.Content[i].Line)
			}
			m.Set(old, to)
		}
	case yaml.SequenceNode:
		var pairs []Pair
		if err := value.Decode(&pairs); err != nil {
			return errors.Errorf("decoding replacement list: %w", err)
		}
		for _, p := range pairs {
			if p.Old == "" {
				return errors.Errorf("%w: empty old value", ErrMalformedPair)
			}
			m.Set(p.Old, p.New)
		}
	default:
		return errors.Errorf("replacements must be a mapping or a list, got line %d", value.Line)
	}
	return nil
}

// MarshalYAML emits the pairs as an ordered mapping
func (m Mapping) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range m.pairs {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.Old},
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.New},
		)
	}
	return node, nil
}

// UnmarshalJSON accepts an object (document order is kept) or an array of {old, new}
func (m *Mapping) UnmarshalJSON(data []byte) error {
	*m = Mapping{}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var pairs []Pair
		if err := json.Unmarshal(data, &pairs); err != nil {
			return errors.Errorf("decoding replacement list: %w", err)
		}
		for _, p := range pairs {
			if p.Old == "" {
				return errors.Errorf("%w: empty old value", ErrMalformedPair)
			}
			m.Set(p.Old, p.New)
		}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Errorf("reading replacements: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("replacements must be an object or an array")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Errorf("reading replacement key: %w", err)
		}
		old, _ := tok.(string)
		if old == "" {
			return errors.Errorf("%w: empty key", ErrMalformedPair)
		}
		var to string
		if err := dec.Decode(&to); err != nil {
			return errors.Errorf("decoding replacement %q: %w", old, err)
		}
		m.Set(old, to)
	}
	if _, err := dec.Token(); err != nil {
		return errors.Errorf("reading replacements: %w", err)
	}
	return nil
}

// MarshalJSON emits the pairs as an ordered object
func (m Mapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Old)
		if err != nil {
			return nil, errors.Errorf("encoding key %q: %w", p.Old, err)
		}
		v, err := json.Marshal(p.New)
		if err != nil {
			return nil, errors.Errorf("encoding value for %q: %w", p.Old, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
