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

// Package rules derives the ordered substitution table from a replacement mapping.
//
// Rule groups:
//
//  1. every pair as a whole-word rule, in mapping order
//  2. lowercase plurals of the engine and car axes ("engines" -> "<new>s")
//  3. the artifact id car-engine-json
//  4. EngineValidation -> ProjectValidation
//  5. package qualified engine subtypes (engines.EngineGas)
//  6. package qualified car subtypes (cars.CarSedan)
//  7. engines -> projects
//  8. cars -> commodities
//
// OrderListed applies the groups exactly as numbered. Because group 1 matches
// "car" and "engine" inside car-engine-json and group 2 rewrites "engines"
// before group 5 can see it, OrderSpecificFirst (the default) applies
// 3, 4, 5, 6, 7, 8, 1, 2 so that the literal and qualified rules win.
package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/walteh/transformpoc/pkg/mapping"
	"github.com/walteh/transformpoc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const (
	// ArtifactID is the project descriptor id of the source sample
	ArtifactID = "car-engine-json"

	enginePackage = "engines"
	carPackage    = "cars"
)

var (
	engineSubtypes = map[string]bool{mapping.KeyGas: true, mapping.KeyElectric: true, mapping.KeyHybrid: true}
	carSubtypes    = map[string]bool{mapping.KeySedan: true, mapping.KeySuv: true}
)

// 🔀 Order selects the sequence in which rule groups are applied
type Order int

const (
	// OrderSpecificFirst applies literal and package qualified rules before the plain pairs
	OrderSpecificFirst Order = iota
	// OrderListed applies the groups in their numbered order
	OrderListed
)

// String returns the flag spelling of o
func (o Order) String() string {
	switch o {
	case OrderSpecificFirst:
		return "specific-first"
	case OrderListed:
		return "listed"
	default:
		return "unknown"
	}
}

// ParseOrder parses the flag spelling of an Order
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "specific-first":
		return OrderSpecificFirst, nil
	case "listed":
		return OrderListed, nil
	default:
		return 0, errors.Errorf("unknown rule order %q (want specific-first or listed)", s)
	}
}

// 🏭 Build returns the rule list for m in the default order
func Build(m *mapping.Mapping) (text.Rules, error) {
	return BuildOrdered(m, OrderSpecificFirst)
}

// 🏭 BuildOrdered returns the rule list for m. The engine and car keys are required.
func BuildOrdered(m *mapping.Mapping, order Order) (text.Rules, error) {
	if err := m.Require(mapping.KeyEngine, mapping.KeyCar); err != nil {
		return nil, errors.Errorf("building artifact id rule: %w", err)
	}

	pairs := m.Pairs()

	var plain, plurals, qualifiedRules text.Rules
	for _, p := range pairs {
		plain = append(plain, text.WholeWord(p.Old, p.New))
		if p.Old == mapping.KeyEngine || p.Old == mapping.KeyCar {
			plurals = append(plurals, text.WholeWord(strings.ToLower(p.Old)+"s", strings.ToLower(p.New)+"s"))
		}
		if engineSubtypes[p.Old] {
			qualifiedRules = append(qualifiedRules, qualified(enginePackage, "Engine"+Capitalize(p.Old), "projects.Project"+Capitalize(p.New)))
		}
		if carSubtypes[p.Old] {
			qualifiedRules = append(qualifiedRules, qualified(carPackage, "Car"+Capitalize(p.Old), "commodities.Commodity"+Capitalize(p.New)))
		}
	}

	engineNew, _ := m.Get(mapping.KeyEngine)
	carNew, _ := m.Get(mapping.KeyCar)
	literals := text.Rules{
		text.WholeWord(ArtifactID, strings.ToLower(engineNew)+"-"+strings.ToLower(carNew)+"-json"),
		text.WholeWord("EngineValidation", "ProjectValidation"),
	}

	packages := text.Rules{
		text.WholeWord(enginePackage, "projects"),
		text.WholeWord(carPackage, "commodities"),
	}

	rules := make(text.Rules, 0, len(plain)+len(plurals)+len(qualifiedRules)+len(literals)+len(packages))
	switch order {
	case OrderListed:
		rules = append(rules, plain...)
		rules = append(rules, plurals...)
		rules = append(rules, literals...)
		rules = append(rules, qualifiedRules...)
		rules = append(rules, packages...)
	case OrderSpecificFirst:
		rules = append(rules, literals...)
		rules = append(rules, qualifiedRules...)
		rules = append(rules, packages...)
		rules = append(rules, plain...)
		rules = append(rules, plurals...)
	default:
		return nil, errors.Errorf("unknown rule order %d", order)
	}

	return rules, nil
}

// qualified matches the package qualified class reference pkg.Class
func qualified(pkg, class, replacement string) text.Rule {
	return text.WholeWord(pkg+"."+class, replacement)
}

// Capitalize upper-cases the first rune of s and leaves the rest unchanged
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
