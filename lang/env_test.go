package lang

import (
	"strings"
	"testing"
)

func TestEnvParentLookupAndErrors(t *testing.T) {
	parent := NewEnv(nil)
	parent.Define("x", IntValue(1))
	child := NewEnv(parent)

	if got := child.Get("x"); got.String() != "1" {
		t.Fatalf("expected parent binding, got %v", got)
	}

	child.Def("y", IntValue(2))
	if got := parent.Get("y"); got.String() != "2" {
		t.Fatalf("Def should bind in the outermost frame, got %v", got)
	}

	missing := child.Get("missing")
	if !IsError(missing) || !strings.Contains(missing.Err(), "Unbound Symbol 'missing'") {
		t.Fatalf("expected unbound error, got %v", missing)
	}

	if child.Parent() != parent {
		t.Fatalf("expected Parent to expose enclosing environment")
	}
}

func TestEnvOwnsCopies(t *testing.T) {
	env := NewEnv(nil)
	val := QExpr(IntValue(1))
	env.Define("l", val)
	val.Del()

	got := env.Get("l")
	if got.String() != "{1}" {
		t.Fatalf("binding should survive caller's Del, got %v", got)
	}
	got.Del()
	if again := env.Get("l"); again.String() != "{1}" {
		t.Fatalf("Get should hand out copies, got %v", again)
	}
}
