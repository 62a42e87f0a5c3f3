// Copyright 2025 BarkBase
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
	runtimedebug "runtime/debug"
)

// buildVersion reads the version and VCS metadata the Go toolchain embeds
// at build time. Binaries built outside a module (go run, test binaries)
// report "dev" with empty VCS fields.
func buildVersion() (version, revision, built string) {
	version = "dev"
	info, ok := runtimedebug.ReadBuildInfo()
	if !ok {
		return
	}
	if info.Main.Version != "" {
		version = info.Main.Version
	}
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			built = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty {
		revision += " (modified)"
	}
	return
}

// FormatVersion renders the block printed by the version subcommand
func FormatVersion() string {
	version, revision, built := buildVersion()
	return fmt.Sprintf(`🚀 barkfix version info:
Version:   %s
Revision:  %s
Built:     %s
Go:        %s
Platform:  %s/%s
`, version, revision, built, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
