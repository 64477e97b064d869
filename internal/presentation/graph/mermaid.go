package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []domain.StateID
	CurrentState  *domain.StateID
}

// GenerateMermaid produces a Mermaid flowchart of the machine's transition table.
// It applies semantic styling:
// - Initial: ((Circle))
// - Accepting: (((Double circle)))
// - Default: [Rectangle]
// Each edge is labelled "read / write, moves".
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(m *machine.Machine, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	entries := m.Transitions()

	seen := make(map[domain.StateID]bool)
	var states []domain.StateID
	add := func(s domain.StateID) {
		if !seen[s] {
			seen[s] = true
			states = append(states, s)
		}
	}
	add(m.Initial())
	for _, e := range entries {
		add(e.State)
		add(e.Transition.Next())
	}
	for _, s := range m.Acceptance() {
		add(s)
	}

	for _, s := range states {
		opener, closer := "[", "]"
		switch {
		case m.Accepting(s):
			opener, closer = "(((", ")))"
		case s == m.Initial():
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"q%d\"%s\n", nodeID(s), opener, s, closer)
	}

	for _, e := range entries {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n",
			nodeID(e.State), edgeLabel(m, e), nodeID(e.Transition.Next()))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[domain.StateID]bool)
		for _, s := range overlay.VisitedStates {
			if !visited[s] {
				visited[s] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(s))
			}
		}
		if overlay.CurrentState != nil {
			fmt.Fprintf(&sb, "    class %s current;\n", nodeID(*overlay.CurrentState))
		}
	}

	return sb.String()
}

func nodeID(s domain.StateID) string {
	return fmt.Sprintf("q%d", s)
}

func edgeLabel(m *machine.Machine, e machine.Entry) string {
	blank, ph := m.Blank(), m.Placeholder()
	read := make([]string, len(e.Read))
	for i, s := range e.Read {
		read[i] = string(domain.Display(s, blank, ph))
	}
	write := make([]string, e.Transition.Arity())
	moves := make([]string, e.Transition.Arity())
	for i := range write {
		write[i] = string(domain.Display(e.Transition.Write(i), blank, ph))
		moves[i] = e.Transition.Move(i).String()
	}
	label := fmt.Sprintf("%s / %s, %s",
		strings.Join(read, " "), strings.Join(write, " "), strings.Join(moves, " "))
	// Mermaid labels cannot carry double quotes
	return strings.ReplaceAll(label, "\"", "'")
}
