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
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// buildVersion is read from the embedded build info
type buildVersion struct {
	module   string
	revision string
	time     string
	modified bool
}

func readBuildVersion() buildVersion {
	v := buildVersion{module: "dev"}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if info.Main.Version != "" {
		v.module = info.Main.Version
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			v.revision = setting.Value
		case "vcs.time":
			v.time = setting.Value
		case "vcs.modified":
			v.modified = setting.Value == "true"
		}
	}
	return v
}

// FormatVersion returns the --version output
func FormatVersion() string {
	v := readBuildVersion()

	var b strings.Builder
	fmt.Fprintf(&b, "🚀 transformpoc version info:\n")
	fmt.Fprintf(&b, "Version:   %s\n", v.module)
	if v.revision != "" {
		modified := ""
		if v.modified {
			modified = " (modified)"
		}
		fmt.Fprintf(&b, "Revision:  %s%s\n", v.revision, modified)
	}
	if v.time != "" {
		fmt.Fprintf(&b, "Built:     %s\n", v.time)
	}
	fmt.Fprintf(&b, "Go:        %s\n", runtime.Version())
	fmt.Fprintf(&b, "Platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return b.String()
}
