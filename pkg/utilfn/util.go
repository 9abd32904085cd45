package utilfn

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"
)

func GetHomeDir() string {
	homeVar, err := os.UserHomeDir()
	if err != nil {
		return "/"
	}
	return homeVar
}

func ExpandHomeDir(pathStr string) string {
	if pathStr != "~" && !strings.HasPrefix(pathStr, "~/") && (!strings.HasPrefix(pathStr, `~\`) || runtime.GOOS != "windows") {
		return filepath.Clean(pathStr)
	}
	homeDir := GetHomeDir()
	if pathStr == "~" {
		return homeDir
	}
	expandedPath := filepath.Clean(filepath.Join(homeDir, pathStr[2:]))
	return expandedPath
}

// DisplayPath returns path relative to baseDir when it lives under it,
// otherwise path unchanged
func DisplayPath(baseDir string, path string) string {
	if baseDir == "" {
		return path
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// TruncateString shortens s to at most maxLen bytes, adding "..." when cut.
// The cut never splits a multi-byte rune.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:runeBoundary(s, maxLen)]
	}
	return s[:runeBoundary(s, maxLen-3)] + "..."
}

// runeBoundary moves idx back to the start of the rune containing it
func runeBoundary(s string, idx int) int {
	for idx > 0 && !utf8.RuneStart(s[idx]) {
		idx--
	}
	return idx
}
