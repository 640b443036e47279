package ple_test

import (
	"errors"
	"testing"

	"github.com/gople/ple"
)

func TestNewOperator(t *testing.T) {
	op := ple.NewOperator(ple.Regex, ple.Name("starts with order"), ple.Pattern("^ORDER"))

	if op.Kind != ple.Regex {
		t.Errorf("expected kind %q, got %q", ple.Regex, op.Kind)
	}
	if op.Name != "starts with order" {
		t.Errorf("expected name to be set, got %q", op.Name)
	}
	if op.Pattern != "^ORDER" {
		t.Errorf("expected pattern to be set, got %q", op.Pattern)
	}
	if op.CaseSensitive {
		t.Error("expected case-insensitive by default")
	}
	if op.ID != "" {
		t.Errorf("expected transient operator to have no ID, got %q", op.ID)
	}
	if op.NumParameters() != 0 {
		t.Errorf("expected no parameters, got %d", op.NumParameters())
	}
}

func TestCaseSensitiveOption(t *testing.T) {
	op := ple.NewOperator(ple.Regex, ple.Pattern("Markman"), ple.CaseSensitive())
	if !op.CaseSensitive {
		t.Error("expected CaseSensitive to be set")
	}
}

func TestAddParameter(t *testing.T) {
	and := ple.NewOperator(ple.And)
	a := ple.NewOperator(ple.AlwaysTrue)
	b := ple.NewOperator(ple.AlwaysFalse)

	if err := and.AddParameter(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := and.AddParameter(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	params := and.Parameters()
	if len(params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(params))
	}
	if params[0] != a || params[1] != b {
		t.Error("expected parameters in insertion order")
	}
}

func TestAddParameterSelfReference(t *testing.T) {
	op := ple.NewOperator(ple.And)
	if err := op.AddParameter(op); !errors.Is(err, ple.ErrSelfReference) {
		t.Fatalf("expected ErrSelfReference, got %v", err)
	}
	if op.NumParameters() != 0 {
		t.Errorf("expected parameter list unchanged, got %d parameters", op.NumParameters())
	}

	// The check is by identity, not value: a distinct operator that
	// happens to look the same is fine.
	twin := ple.NewOperator(ple.And)
	if err := op.AddParameter(twin); err != nil {
		t.Fatalf("unexpected error adding equal-by-value operator: %v", err)
	}
}

func TestAddParameterNil(t *testing.T) {
	op := ple.NewOperator(ple.Or)
	if err := op.AddParameter(nil); err == nil {
		t.Fatal("expected error adding nil parameter")
	}
}

func TestSharedParameter(t *testing.T) {
	// One operator may be a parameter of several parents.
	shared := ple.NewOperator(ple.AlwaysTrue)
	p1 := ple.NewOperator(ple.And)
	p2 := ple.NewOperator(ple.Or)

	if err := p1.AddParameter(shared); err != nil {
		t.Fatal(err)
	}
	if err := p2.AddParameter(shared); err != nil {
		t.Fatal(err)
	}
	if p1.Parameters()[0] != p2.Parameters()[0] {
		t.Error("expected both parents to reference the same operator")
	}
}

func TestParametersIsACopy(t *testing.T) {
	op := ple.NewOperator(ple.And)
	if err := op.AddParameter(ple.NewOperator(ple.AlwaysTrue)); err != nil {
		t.Fatal(err)
	}
	params := op.Parameters()
	_ = append(params, ple.NewOperator(ple.AlwaysFalse))
	if op.NumParameters() != 1 {
		t.Errorf("expected appending to the returned slice to leave the operator unchanged, got %d parameters", op.NumParameters())
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []ple.Kind{
		ple.AlwaysTrue, ple.AlwaysFalse, ple.Regex,
		ple.And, ple.Or, ple.Not, ple.Xor, ple.Nand, ple.Nor,
	} {
		if !k.Valid() {
			t.Errorf("expected %q to be valid", k)
		}
	}
	if ple.Kind("maybe").Valid() {
		t.Error("expected unknown kind to be invalid")
	}
}

func TestParseKind(t *testing.T) {
	k, err := ple.ParseKind("nand")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k != ple.Nand {
		t.Errorf("expected %q, got %q", ple.Nand, k)
	}
	if _, err := ple.ParseKind("bogus"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestWalk(t *testing.T) {
	root := ple.NewOperator(ple.And, ple.Name("root"))
	child := ple.NewOperator(ple.Or)
	grandchild := ple.NewOperator(ple.AlwaysTrue)

	if err := child.AddParameter(grandchild); err != nil {
		t.Fatal(err)
	}
	if err := root.AddParameter(child); err != nil {
		t.Fatal(err)
	}

	var visited []ple.Kind
	err := ple.Walk(root, func(o *ple.Operator) error {
		visited = append(visited, o.Kind)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []ple.Kind{ple.And, ple.Or, ple.AlwaysTrue}
	if len(visited) != len(want) {
		t.Fatalf("expected %d visits, got %d", len(want), len(visited))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visit %d: expected %q, got %q", i, want[i], visited[i])
		}
	}
}

func TestWalkStopsOnError(t *testing.T) {
	root := ple.NewOperator(ple.And)
	if err := root.AddParameter(ple.NewOperator(ple.AlwaysTrue)); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	count := 0
	err := ple.Walk(root, func(o *ple.Operator) error {
		count++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected walk to return the callback error, got %v", err)
	}
	if count != 1 {
		t.Errorf("expected walk to stop after the first error, visited %d", count)
	}
}
