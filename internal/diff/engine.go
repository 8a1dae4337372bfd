// Package diff computes the line delta a commit introduced to a file,
// comparing its content at a revision against the parent revision.
package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Kind classifies a delta line.
type Kind int

const (
	Same Kind = iota
	Added
	Removed
)

// Line is a single line of a revision delta.
type Line struct {
	Kind  Kind
	Text  string
	OldNo int // line number at the parent revision (0 if not applicable)
	NewNo int // line number at the revision (0 if not applicable)
}

// Delta compares a file's lines at the parent revision (old) against the
// revision itself (new). The result interleaves removed and added runs the
// way a unified diff does.
func Delta(old, new []string) []Line {
	opcodes, err := generateOpCodes(old, new)
	if err != nil {
		// Fall back to a simpler pairing when the matcher fails
		return simpleDelta(old, new)
	}

	var lines []Line
	oldNo, newNo := 1, 1

	for _, opcode := range opcodes {
		i1, i2, j1, j2 := opcode.I1, opcode.I2, opcode.J1, opcode.J2

		switch opcode.Tag {
		case 'e': // equal
			for i := i1; i < i2; i++ {
				lines = append(lines, Line{Kind: Same, Text: old[i], OldNo: oldNo, NewNo: newNo})
				oldNo++
				newNo++
			}
		case 'd': // delete
			for i := i1; i < i2; i++ {
				lines = append(lines, Line{Kind: Removed, Text: old[i], OldNo: oldNo})
				oldNo++
			}
		case 'i': // insert
			for j := j1; j < j2; j++ {
				lines = append(lines, Line{Kind: Added, Text: new[j], NewNo: newNo})
				newNo++
			}
		case 'r': // replace
			for i := i1; i < i2; i++ {
				lines = append(lines, Line{Kind: Removed, Text: old[i], OldNo: oldNo})
				oldNo++
			}
			for j := j1; j < j2; j++ {
				lines = append(lines, Line{Kind: Added, Text: new[j], NewNo: newNo})
				newNo++
			}
		}
	}

	return lines
}

// Changed filters a delta down to its added and removed lines.
func Changed(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if l.Kind != Same {
			out = append(out, l)
		}
	}
	return out
}

// Stats totals a delta by kind.
func Stats(lines []Line) (added, removed, same int) {
	for _, l := range lines {
		switch l.Kind {
		case Added:
			added++
		case Removed:
			removed++
		case Same:
			same++
		}
	}
	return
}

func generateOpCodes(old, new []string) (opcodes []difflib.OpCode, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("matcher failed: %v", r)
		}
	}()

	matcher := difflib.NewMatcher(old, new)
	return matcher.GetOpCodes(), nil
}

func simpleDelta(old, new []string) []Line {
	var lines []Line
	oldNo, newNo := 1, 1
	limit := len(old)
	if len(new) > limit {
		limit = len(new)
	}

	for i := 0; i < limit; i++ {
		hasOld := i < len(old)
		hasNew := i < len(new)

		switch {
		case hasOld && hasNew && old[i] == new[i]:
			lines = append(lines, Line{Kind: Same, Text: old[i], OldNo: oldNo, NewNo: newNo})
			oldNo++
			newNo++
		case hasOld && hasNew:
			lines = append(lines, Line{Kind: Removed, Text: old[i], OldNo: oldNo})
			lines = append(lines, Line{Kind: Added, Text: new[i], NewNo: newNo})
			oldNo++
			newNo++
		case hasOld:
			lines = append(lines, Line{Kind: Removed, Text: old[i], OldNo: oldNo})
			oldNo++
		case hasNew:
			lines = append(lines, Line{Kind: Added, Text: new[i], NewNo: newNo})
			newNo++
		}
	}

	return lines
}
