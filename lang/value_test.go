package lang

import (
	"strings"
	"testing"
)

func TestTypeName(t *testing.T) {
	want := map[ValueType]string{
		TypeNumber:   "Number",
		TypeSymbol:   "Symbol",
		TypeError:    "Error",
		TypeSExpr:    "ExprList",
		TypeQExpr:    "QuotedList",
		TypeFunction: "Function",
	}
	for typ, name := range want {
		if got := TypeName(typ); got != name {
			t.Fatalf("TypeName(%d) = %q, want %q", typ, got, name)
		}
	}

	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "unknown value type") {
			t.Fatalf("expected panic for unknown tag, got %v", r)
		}
	}()
	TypeName(ValueType(99))
}

func TestDelReleasesTree(t *testing.T) {
	inner := QExpr(IntValue(1), SymbolValue("x"))
	leaf := inner.Cells[1]
	outer := SExpr(inner, Errorf("e"))

	outer.Del()
	for _, v := range []*Value{outer, inner, leaf} {
		if !v.Deleted() || v.Count() != 0 {
			t.Fatalf("value not released: %+v", v)
		}
	}
	outer.Del()
	if !outer.Deleted() {
		t.Fatalf("second Del should be a no-op")
	}
}

func TestPopTakeJoin(t *testing.T) {
	list := QExpr(IntValue(1), IntValue(2), IntValue(3))
	mid := list.Pop(1)
	if mid.String() != "2" || list.String() != "{1 3}" {
		t.Fatalf("Pop: got %v from %v", mid, list)
	}

	rest := list.Cells[0]
	last := list.Take(1)
	if last.String() != "3" || !list.Deleted() || !rest.Deleted() {
		t.Fatalf("Take should return the child and destroy the rest")
	}

	y := QExpr(IntValue(5), IntValue(6))
	x := Join(QExpr(IntValue(4)), y)
	if x.String() != "{4 5 6}" || !y.Deleted() {
		t.Fatalf("Join: got %v, y deleted=%v", x, y.Deleted())
	}
	if x.Cells[1].Deleted() {
		t.Fatalf("Join must move children, not destroy them")
	}
}

func TestCopyIsDeep(t *testing.T) {
	orig := SExpr(QExpr(IntValue(1)), SymbolValue("a"))
	dup := orig.Copy()
	orig.Del()
	if dup.String() != "({1} a)" {
		t.Fatalf("copy affected by deleting original: %v", dup)
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		val  *Value
		want string
	}{
		{IntValue(-4), "-4"},
		{SymbolValue("head"), "head"},
		{Errorf("oops %d", 1), "Error: oops 1"},
		{SExpr(), "()"},
		{QExpr(SymbolValue("a"), SExpr(IntValue(1), IntValue(2))), "{a (1 2)}"},
		{FunctionValue("f", nil), "<builtin>"},
		{&Value{}, "<unknown>"},
	}
	for _, tc := range cases {
		if got := tc.val.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestAccessorsIgnoreOtherTypes(t *testing.T) {
	n := IntValue(1)
	if n.Sym() != "" || n.Err() != "" || n.Function() != nil {
		t.Fatalf("number accessors leaked payload")
	}
	if SymbolValue("x").Num() != nil {
		t.Fatalf("symbol should have no number payload")
	}
}
