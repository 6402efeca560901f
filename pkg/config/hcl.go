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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

type hclReplace struct {
	Old  string `hcl:"old,label"`
	With string `hcl:"with"`
}

type hclConfig struct {
	SourceDir    string       `hcl:"source_dir,optional"`
	TargetDir    string       `hcl:"target_dir,optional"`
	ContentGlobs []string     `hcl:"content_globs,optional"`
	RuleOrder    string       `hcl:"rule_order,optional"`
	Replace      []hclReplace `hcl:"replace,block"`
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL. Replacements are written as
//
//	replace "engine" { with = "project" }
//
// and keep their block order.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		SourceDir:    hclCfg.SourceDir,
		TargetDir:    hclCfg.TargetDir,
		ContentGlobs: hclCfg.ContentGlobs,
		RuleOrder:    hclCfg.RuleOrder,
	}
	for _, r := range hclCfg.Replace {
		if r.Old == "" {
			return nil, errors.Errorf("replace block with empty label")
		}
		cfg.Replacements.Set(r.Old, r.With)
	}

	return cfg, nil
}
