package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/pendant/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedSteps []string
	CurrentStep  string
	Failed       bool
}

const finishedNode = "finished"

// GenerateMermaid produces a Mermaid flowchart of a sequence table.
// It applies semantic styling:
// - Initial step: ((Circle))
// - Final step (NextStep finishes): ([Stadium])
// - Default: [Rectangle]
// NextStep edges are plain arrows, redo edges loop back dotted, and every other outcome is a
// labelled arrow.
func GenerateMermaid(table *domain.SequenceTable, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if table == nil {
		return sb.String()
	}

	finishes := false
	for i, step := range table.Steps {
		id := domain.StepID(i)
		safeID := nodeID(id)

		opener, closer := "[", "]"
		switch {
		case id == table.Initial:
			opener, closer = "((", "))"
		case isFinal(step):
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escape(step.Name), closer)

		for _, t := range step.Transitions {
			to := nodeID(t.To)
			if t.To == domain.End {
				to = finishedNode
				finishes = true
			}

			switch t.On {
			case domain.OutcomeNextStep:
				fmt.Fprintf(&sb, "    %s --> %s\n", safeID, to)
			case domain.OutcomeRedo:
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", safeID, t.On, to)
			default:
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", safeID, t.On, to)
			}
		}
	}
	if finishes {
		fmt.Fprintf(&sb, "    %s(((\"%s\")))\n", finishedNode, finishedNode)
	}

	if overlay != nil {
		writeOverlay(&sb, table, overlay)
	}
	return sb.String()
}

func writeOverlay(sb *strings.Builder, table *domain.SequenceTable, overlay *GraphOverlay) {
	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for contrast regardless of theme.
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
	sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

	index := make(map[string]domain.StepID, len(table.Steps))
	for i, step := range table.Steps {
		if _, ok := index[step.Name]; !ok {
			index[step.Name] = domain.StepID(i)
		}
	}

	seen := make(map[domain.StepID]bool)
	for _, name := range overlay.VisitedSteps {
		id, ok := index[name]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		fmt.Fprintf(sb, "    class %s visited;\n", nodeID(id))
	}

	if id, ok := index[overlay.CurrentStep]; ok {
		class := "current"
		if overlay.Failed {
			class = "failed"
		}
		fmt.Fprintf(sb, "    class %s %s;\n", nodeID(id), class)
	}
}

func isFinal(step domain.Step) bool {
	for _, t := range step.Transitions {
		if t.On == domain.OutcomeNextStep && t.To == domain.End {
			return true
		}
	}
	return false
}

func nodeID(id domain.StepID) string {
	return fmt.Sprintf("s%d", id)
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
