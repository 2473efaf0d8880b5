package layers

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// MembershipDiff renders a unified diff between two sorted archive file lists.
func MembershipDiff(label string, previous []string, current []string) string {
	return udiff.Unified(label+" (previous)", label, joinLines(previous), joinLines(current))
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
