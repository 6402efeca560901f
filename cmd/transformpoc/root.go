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

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/transformpoc/pkg/config"
	"github.com/walteh/transformpoc/pkg/log"
	"github.com/walteh/transformpoc/pkg/mapping"
	"github.com/walteh/transformpoc/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the command line flags
type rootOpts struct {
	sourceDir    string
	targetDir    string
	configFile   string
	ruleOrder    string
	contentGlobs []string
	verbose      bool
	debug        bool
}

// execute runs the command with args and returns the process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		log.NewUserLogger(stderr, zerolog.Nop()).Failure("transform failed", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	o := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "transformpoc --source-dir DIR --target-dir DIR [old=new ...]",
		Short: "Copy a proof of concept tree under a new vocabulary",
		Long: `transformpoc copies a source directory to a target directory, then renames
directories and files and rewrites .java, .xml and .json contents with
whole-word, case-sensitive substitutions built from old=new pairs.

The engine and car keys are required. Any existing target directory is
replaced.`,
		Example:       "  transformpoc --source-dir car-engine-json --target-dir project-commodity-json engine=project car=commodity gas=project1",
		Args:          cobra.ArbitraryArgs,
		Version:       FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}")

	addRootFlags(cmd, o)

	return cmd
}

// addRootFlags adds the flags to the root command
func addRootFlags(cmd *cobra.Command, o *rootOpts) {
	cmd.Flags().StringVar(&o.sourceDir, "source-dir", "", "source proof of concept directory (e.g. car-engine-json)")
	cmd.Flags().StringVar(&o.targetDir, "target-dir", "", "target directory, replaced if present (e.g. project-commodity-json)")
	cmd.Flags().StringVarP(&o.configFile, "config", "c", "", "run description file (.yaml, .yml, .json or .hcl)")
	cmd.Flags().StringVar(&o.ruleOrder, "rule-order", "", "rule group order: specific-first (default) or listed")
	cmd.Flags().StringSliceVar(&o.contentGlobs, "content-glob", nil, "glob of files whose content is rewritten (default **/*.java, **/*.xml, **/*.json)")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "print every rename and rewrite")
	cmd.Flags().BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging builds the zerolog logger for the run
func (o *rootOpts) setupLogging(w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if o.debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

func (o *rootOpts) run(cmd *cobra.Command, args []string) error {
	// pairs are checked before anything touches the filesystem
	pairs, err := mapping.ParsePairs(args)
	if err != nil {
		return errors.Errorf("parsing replacements: %w", err)
	}

	logger := o.setupLogging(cmd.ErrOrStderr())
	ctx := logger.WithContext(cmd.Context())
	user := log.NewUserLogger(cmd.ErrOrStderr(), logger)

	cfg := &config.Config{}
	if o.configFile != "" {
		cfg, err = config.Load(ctx, o.configFile)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
	}

	cfg.Override(o.sourceDir, o.targetDir, pairs)
	if len(o.contentGlobs) > 0 {
		cfg.ContentGlobs = o.contentGlobs
	}
	if cmd.Flags().Changed("rule-order") {
		cfg.RuleOrder = o.ruleOrder
	}

	if cfg.SourceDir == "" {
		return errors.Errorf(`required flag "source-dir" not set`)
	}
	if cfg.TargetDir == "" {
		return errors.Errorf(`required flag "target-dir" not set`)
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	for _, p := range cfg.Replacements.Pairs() {
		if known, ok := mapping.Suggest(p.Old); ok {
			user.Warning(fmt.Sprintf("replacement key %q has no derived rules; did you mean %q?", p.Old, known))
		}
	}

	opts := operation.OptionsFromConfig(cfg)

	var console *log.Logger
	if o.verbose {
		console = log.New(cmd.ErrOrStderr(), logger)
		console.Header(cfg.SourceDir, cfg.TargetDir)
		opts.Observer = console
	}

	logger.Debug().Str("config", cfg.String()).Str("order", opts.Order.String()).Msg("starting transform")

	if _, err := operation.Transform(ctx, opts); err != nil {
		return errors.Errorf("transforming %s: %w", cfg.SourceDir, err)
	}

	if console != nil {
		console.Summary()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Transformed POC from %s to %s\n", cfg.SourceDir, cfg.TargetDir)
	return nil
}
