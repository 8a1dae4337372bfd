// Package gitx builds git command invocations and parses their output for
// the blame viewer. Command construction is pure; only the repository
// helpers in repo.go shell out directly.
package gitx

import (
	"regexp"
	"strings"
)

// revPattern matches the leading revision id of a blame line: a run of at
// least 7 hex characters, optionally prefixed by git's boundary-commit caret.
var revPattern = regexp.MustCompile(`^\^?([0-9a-f]{7,})`)

// BlameArgs builds the argument list for a blame invocation. When rev is
// non-empty the blame is pinned to the state immediately before rev: git
// resolves `<rev>^` to its parent, so the annotations describe the file as
// it stood prior to that commit's changes.
func BlameArgs(flags []string, rev, path string) []string {
	args := append([]string{"blame"}, flags...)
	if rev != "" {
		args = append(args, rev+"^")
	}
	args = append(args, "--", path)
	return args
}

// ParentArgs builds the rev-parse invocation resolving rev's first parent.
// The command exits nonzero when rev has no parent.
func ParentArgs(rev string) []string {
	return []string{"rev-parse", rev + "^"}
}

// ShowFileArgs builds the invocation fetching path's content as of rev.
func ShowFileArgs(rev, path string) []string {
	return []string{"show", rev + ":" + path}
}

// DetailArgs builds the invocation fetching full commit detail for rev.
func DetailArgs(rev string) []string {
	return []string{"show", "--pretty=full", rev}
}

// RevisionID extracts the leading revision id from a blame line. It returns
// the empty string when the line does not start with one, which callers
// treat as a no-op rather than an error.
func RevisionID(line string) string {
	m := revPattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// ShortRev truncates a revision id to the conventional 7 characters for
// display.
func ShortRev(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// SplitOutput splits captured process output into lines, dropping the single
// trailing empty line produced by a final newline. Empty output yields nil.
func SplitOutput(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
		return nil
	}
	return lines
}
