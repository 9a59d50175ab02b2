package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestBgStylePair(t *testing.T) {
	bg := NewBgStyle("#1d2021")
	got := bg.Pair("api", lipgloss.NewStyle(), "lost and found", lipgloss.NewStyle())
	for _, want := range []string{"api", "lost", "and", "found"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Pair = %q, missing %q", got, want)
		}
	}
	if bg.Pair("", lipgloss.NewStyle(), "", lipgloss.NewStyle()) != bg.space {
		t.Fatal("empty pair should be a single space")
	}
}

func TestBgStyleRenderEmpty(t *testing.T) {
	if got := NewBgStyle("#000000").Render("", lipgloss.NewStyle()); got != "" {
		t.Fatalf("Render(\"\") = %q", got)
	}
}
