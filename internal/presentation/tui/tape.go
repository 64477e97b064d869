package tui

import (
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/muesli/termenv"
)

// RenderTape draws a snapshot as "|a|[b]|c|", highlighting the head cell.
// Cells come from the snapshot's display content, so blanks show as the placeholder.
func RenderTape(p termenv.Profile, s domain.TapeSnapshot) string {
	var sb strings.Builder
	for i, r := range []rune(s.Content) {
		sb.WriteByte('|')
		if s.Start+i == s.Head {
			cell := "[" + string(r) + "]"
			sb.WriteString(p.String(cell).Foreground(p.Color("#fbc02d")).String())
			continue
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('|')
	return sb.String()
}
