package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/pendant/internal/presentation/graph"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/dsl"
)

func idle(bool) domain.StepOutcome { return domain.OutcomeNothing }

func sampleTable() *domain.SequenceTable {
	b := dsl.New("sample")
	b.Add(0, "wake", domain.StepFunc(idle)).Next(1).Redo(func() domain.Command { return domain.CmdReloadStep })
	b.Add(1, "wait", domain.StepFunc(idle)).Next(2).Goto(domain.OutcomeActionB, 2)
	b.Add(2, "say \"bye\"", domain.StepFunc(idle)).Last()
	return b.MustBuild()
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes",
			contains: []string{
				"graph TD\n",
				"s0((\"wake\"))",
				"s1[\"wait\"]",
				"s2([\"say 'bye'\"])",
				"finished(((\"finished\")))",
			},
			excludes: []string{"classDef"},
		},
		{
			name: "Edges",
			contains: []string{
				"s0 --> s1",
				"s0 -. \"redo\" .-> s0",
				"s1 -- \"action_b\" --> s2",
				"s2 --> finished",
			},
		},
		{
			name: "Overlay",
			overlay: &graph.GraphOverlay{
				VisitedSteps: []string{"wake", "wake", "wait", "ghost"},
				CurrentStep:  "wait",
			},
			contains: []string{
				"class s0 visited;",
				"class s1 visited;",
				"class s1 current;",
			},
			excludes: []string{"ghost"},
		},
		{
			name:     "Failed overlay",
			overlay:  &graph.GraphOverlay{CurrentStep: "wake", Failed: true},
			contains: []string{"class s0 failed;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(sampleTable(), tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() missing %q\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() unexpectedly contains %q\n%s", unwanted, got)
				}
			}
			if n := strings.Count(got, "class s0 visited;"); n > 1 {
				t.Errorf("visited step styled %d times", n)
			}
		})
	}
}

func TestGenerateMermaid_NilTable(t *testing.T) {
	if got := graph.GenerateMermaid(nil, nil); got != "graph TD\n" {
		t.Errorf("GenerateMermaid(nil) = %q", got)
	}
}
