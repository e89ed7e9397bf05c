// Copyright 2025 Matthew Gall <me@matthewgall.dev>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X main.version=... -X main.commit=..."
var (
	version = "dev"
	commit  = "unknown"
)

// BuildInfo describes the running strombudget binary
type BuildInfo struct {
	Version   string
	Revision  string // Short VCS revision, empty when unknown
	Modified  bool   // Built from a dirty working tree
	GoVersion string
}

// ReadBuildInfo combines ldflags values with the module's embedded build info.
// Ldflags take precedence.
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{Version: version}
	if commit != "unknown" {
		info.Revision = shortRevision(commit)
	}

	embedded, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = embedded.GoVersion

	if info.Version == "dev" && embedded.Main.Version != "" && embedded.Main.Version != "(devel)" {
		info.Version = embedded.Main.Version
	}
	for _, setting := range embedded.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Revision == "" && setting.Value != "" {
				info.Revision = shortRevision(setting.Value)
			}
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}

	return info
}

// Label is the version shown in report footers and --version: the release
// version, else the revision, else "dev"
func (b BuildInfo) Label() string {
	if b.Version != "dev" && b.Version != "" {
		return b.Version
	}
	if b.Revision == "" {
		return "dev"
	}
	if b.Modified {
		return b.Revision + "-dirty"
	}
	return b.Revision
}

// String renders the full build description for the version command
func (b BuildInfo) String() string {
	s := "strombudget " + b.Label()
	if b.Revision != "" && b.Label() != b.Revision && b.Label() != b.Revision+"-dirty" {
		s += fmt.Sprintf(" (%s)", b.Revision)
	}
	if b.GoVersion != "" {
		s += ", " + b.GoVersion
	}
	return s
}

// GetVersion returns the version label of the running binary
func GetVersion() string {
	return ReadBuildInfo().Label()
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
