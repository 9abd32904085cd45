// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package base

// Home directory path for user-level configuration
const BoolsearchHome = "~/.config/boolsearch"

// Config file looked up in the working directory and its parents
const ConfigFileName = "boolsearch.toml"

// Environment variables
const ConfigFileEnvName = "BOOLSEARCH_CONFIG"
const LogLevelEnvName = "BOOLSEARCH_LOGLEVEL"

// BoolsearchVersion is overridden at build time with -ldflags
var BoolsearchVersion = "v0.0.0"

// BoolsearchBuildTime is the build timestamp, empty for dev builds
var BoolsearchBuildTime = ""

// VersionString renders the version the way the version command prints it
func VersionString() string {
	if BoolsearchBuildTime != "" {
		return BoolsearchVersion + "+" + BoolsearchBuildTime
	}
	return BoolsearchVersion + "+dev"
}
