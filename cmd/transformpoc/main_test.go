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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	src string
	dst string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	tmp := t.TempDir()
	env := cliEnv{
		src: filepath.Join(tmp, "car-engine-json"),
		dst: filepath.Join(tmp, "project-commodity-json"),
	}
	files := map[string]string{
		"pom.xml": "<artifactId>car-engine-json</artifactId>\n",
		"src/main/java/com/example/engine/generated/engines/EngineGas.java": "package com.example.engine.generated.engines;\n",
		"src/main/java/com/example/engine/Use.java":                         "import com.example.engine.generated.engines.EngineGas;\nclass Use { EngineValidation v; }\n",
		"notes/engine.txt":                                                  "engine",
	}
	for rel, content := range files {
		p := filepath.Join(env.src, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return env
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExecute_Success(t *testing.T) {
	env := newCLIEnv(t)

	code, stdout, stderr := run(t, "--source-dir", env.src, "--target-dir", env.dst, "engine=project", "car=commodity", "gas=project1")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	assert.Equal(t, "Transformed POC from "+env.src+" to "+env.dst+"\n", stdout)
	assert.Equal(t, "<artifactId>project-commodity-json</artifactId>\n", readFile(t, filepath.Join(env.dst, "pom.xml")))
	assert.Equal(t,
		"import com.example.project.generated.projects.ProjectProject1;\nclass Use { ProjectValidation v; }\n",
		readFile(t, filepath.Join(env.dst, "src/main/java/com/example/project/Use.java")))
	assert.Equal(t, "engine", readFile(t, filepath.Join(env.dst, "notes/project.txt")), "txt content is never rewritten")
}

func TestExecute_MalformedPairTouchesNothing(t *testing.T) {
	env := newCLIEnv(t)

	code, stdout, stderr := run(t, "--source-dir", env.src, "--target-dir", env.dst, "engine=project", "car")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid replacement pair: car")

	_, err := os.Stat(env.dst)
	assert.True(t, os.IsNotExist(err), "target must not be created")
}

func TestExecute_MissingKeyLeavesCopy(t *testing.T) {
	env := newCLIEnv(t)

	code, _, stderr := run(t, "--source-dir", env.src, "--target-dir", env.dst, "engine=project")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `missing replacement key: "car"`)

	assert.Equal(t, "<artifactId>car-engine-json</artifactId>\n", readFile(t, filepath.Join(env.dst, "pom.xml")))
}

func TestExecute_MissingSource(t *testing.T) {
	env := newCLIEnv(t)

	code, _, stderr := run(t, "--source-dir", env.src+"-missing", "--target-dir", env.dst, "engine=project", "car=commodity")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "reading source directory")
}

func TestExecute_RequiredFlags(t *testing.T) {
	env := newCLIEnv(t)

	code, _, stderr := run(t, "--target-dir", env.dst, "engine=project", "car=commodity")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `"source-dir"`)

	code, _, stderr = run(t, "--source-dir", env.src, "engine=project", "car=commodity")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `"target-dir"`)
}

func TestExecute_ConfigFile(t *testing.T) {
	env := newCLIEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "transform.yaml")
	cfg := "source_dir: " + env.src + "\n" +
		"target_dir: " + env.dst + "\n" +
		"replacements:\n" +
		"  engine: widget\n" +
		"  car: commodity\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	code, stdout, stderr := run(t, "--config", cfgPath, "engine=project")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Transformed POC from "+env.src)

	assert.Equal(t, "<artifactId>project-commodity-json</artifactId>\n", readFile(t, filepath.Join(env.dst, "pom.xml")), "positional pairs override the file")
}

func TestExecute_RuleOrderFlag(t *testing.T) {
	env := newCLIEnv(t)

	code, _, stderr := run(t, "--source-dir", env.src, "--target-dir", env.dst, "--rule-order", "listed", "engine=project", "car=commodity")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "<artifactId>commodity-project-json</artifactId>\n", readFile(t, filepath.Join(env.dst, "pom.xml")))

	code, _, stderr = run(t, "--source-dir", env.src, "--target-dir", env.dst, "--rule-order", "sideways", "engine=project", "car=commodity")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown rule order")
}

func TestExecute_Verbose(t *testing.T) {
	env := newCLIEnv(t)

	code, stdout, stderr := run(t, "-v", "--source-dir", env.src, "--target-dir", env.dst, "engine=project", "car=commodity")
	require.Equal(t, 0, code, "stderr: %s", stderr)

	assert.Contains(t, stderr, "src/main/java/com/example/project")
	assert.Contains(t, stderr, "notes/project.txt")
	assert.Contains(t, stderr, "directories renamed")
	assert.NotContains(t, stdout, "directories renamed", "stdout only carries the confirmation")
}

func TestExecute_TypoWarning(t *testing.T) {
	env := newCLIEnv(t)

	code, _, stderr := run(t, "--source-dir", env.src, "--target-dir", env.dst, "engine=project", "car=commodity", "gass=project1")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stderr, `did you mean "gas"?`)
}

func TestExecute_Version(t *testing.T) {
	code, stdout, _ := run(t, "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "transformpoc version info")
}
