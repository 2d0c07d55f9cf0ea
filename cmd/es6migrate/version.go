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

type buildInfo struct {
	version  string
	revision string
	built    string
	dirty    bool
}

// readBuildInfo falls back to "dev" for binaries built outside a module release.
func readBuildInfo() buildInfo {
	info := buildInfo{version: "dev"}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.revision = s.Value
		case "vcs.time":
			info.built = s.Value
		case "vcs.modified":
			info.dirty = s.Value == "true"
		}
	}
	return info
}

// FormatVersion is printed by the version command.
func FormatVersion() string {
	info := readBuildInfo()

	var b strings.Builder
	fmt.Fprintf(&b, "🚀 es6migrate %s\n", info.version)
	if info.revision != "" {
		rev := info.revision
		if info.dirty {
			rev += "-dirty"
		}
		fmt.Fprintf(&b, "  commit    %s\n", rev)
	}
	if info.built != "" {
		fmt.Fprintf(&b, "  built     %s\n", info.built)
	}
	fmt.Fprintf(&b, "  runtime   %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return b.String()
}
