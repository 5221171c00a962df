package commands

import (
	"regexp"
	"strings"
)

// ansiPattern matches ANSI CSI escape sequences (ESC [ params letter) as they
// appear in CI job traces. Malformed sequences that don't match are left in
// place rather than erroring.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// sanitizeTrace strips terminal control sequences from raw trace output and
// returns at most tailLines trailing lines, in order.
func sanitizeTrace(trace string, tailLines int) []string {
	lines := strings.Split(ansiPattern.ReplaceAllString(trace, ""), "\n")
	if len(lines) > tailLines {
		lines = lines[len(lines)-tailLines:]
	}
	return lines
}
