package ple_test

import (
	"strings"
	"testing"

	"github.com/gople/ple"
)

func buildMarkmanRule(t *testing.T) *ple.Operator {
	t.Helper()
	root := ple.NewOperator(ple.And, ple.Name("both"))
	for _, p := range []string{"^ORDER", "markman"} {
		if err := root.AddParameter(ple.NewOperator(ple.Regex, ple.Pattern(p))); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestDump(t *testing.T) {
	root := buildMarkmanRule(t)
	root.ID = "42"

	out := root.Dump()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != `+ and (name="both") #42` {
		t.Errorf("unexpected root line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], `  + regex (pattern="^ORDER")`) {
		t.Errorf("unexpected first parameter line: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], `  + regex (pattern="markman")`) {
		t.Errorf("unexpected second parameter line: %q", lines[2])
	}
}

func TestTree(t *testing.T) {
	root := buildMarkmanRule(t)

	out := root.Tree()
	for _, want := range []string{
		"and \"both\"",
		"├── regex(^ORDER)",
		"└── regex(markman)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected tree to contain %q, got:\n%s", want, out)
		}
	}
}

func TestString(t *testing.T) {
	root := buildMarkmanRule(t)

	out := root.String()
	for _, want := range []string{"OPERATORS", "and", "both", "^ORDER", "markman"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestTreeDepthLimited(t *testing.T) {
	// A direct cycle is impossible, but rendering caps recursion so
	// even a hand-built cyclic structure terminates.
	a := ple.NewOperator(ple.And, ple.Name("a"))
	b := ple.NewOperator(ple.And, ple.Name("b"))
	if err := a.AddParameter(b); err != nil {
		t.Fatal(err)
	}
	if err := b.AddParameter(a); err != nil {
		t.Fatal(err)
	}

	out := a.Tree()
	if len(out) == 0 {
		t.Error("expected output")
	}
	if strings.Count(out, "\n") > 25 {
		t.Errorf("expected depth-limited output, got %d lines", strings.Count(out, "\n"))
	}
}
