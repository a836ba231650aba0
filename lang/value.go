package lang

import (
	"fmt"
	"strings"

	"github.com/nukata/goarith"
)

// ValueType enumerates the different runtime value categories.
type ValueType int

const (
	// typeDeleted marks a value released by Del. It is never visible to
	// well-behaved code.
	typeDeleted ValueType = iota
	TypeNumber
	TypeSymbol
	TypeError
	TypeSExpr
	TypeQExpr
	TypeFunction
)

// Value represents any runtime object in the interpreter.
// ExprList and QuotedList values own their Cells exclusively.
type Value struct {
	Type    ValueType
	Cells   []*Value
	payload interface{}
}

// Builtin is a native function exposed to the interpreter. It receives
// ownership of args and returns a value the caller owns.
type Builtin func(ev *Evaluator, args *Value) *Value

// Function is the payload of a TypeFunction value.
type Function struct {
	Name string
	Fn   Builtin
}

// NumberValue constructs a number Value.
func NumberValue(n goarith.Number) *Value {
	return &Value{Type: TypeNumber, payload: n}
}

// IntValue constructs a number Value from a Go integer.
func IntValue(i int64) *Value {
	return NumberValue(goarith.AsNumber(i))
}

// SymbolValue constructs a symbol Value.
func SymbolValue(s string) *Value {
	return &Value{Type: TypeSymbol, payload: s}
}

// FunctionValue wraps a builtin under the given name.
func FunctionValue(name string, fn Builtin) *Value {
	return &Value{Type: TypeFunction, payload: &Function{Name: name, Fn: fn}}
}

// SExpr constructs an expression list owning cells.
func SExpr(cells ...*Value) *Value {
	return &Value{Type: TypeSExpr, Cells: cells}
}

// QExpr constructs a quoted list owning cells.
func QExpr(cells ...*Value) *Value {
	return &Value{Type: TypeQExpr, Cells: cells}
}

// Num returns the payload of a Number value, or nil.
func (v *Value) Num() goarith.Number {
	if n, ok := v.payload.(goarith.Number); ok {
		return n
	}
	return nil
}

// Sym returns the name of a Symbol value.
func (v *Value) Sym() string {
	if v.Type != TypeSymbol {
		return ""
	}
	s, _ := v.payload.(string)
	return s
}

// Err returns the diagnostic message of an Error value.
func (v *Value) Err() string {
	if v.Type != TypeError {
		return ""
	}
	s, _ := v.payload.(string)
	return s
}

// Function returns the builtin wrapped by a Function value, or nil.
func (v *Value) Function() *Function {
	if f, ok := v.payload.(*Function); ok {
		return f
	}
	return nil
}

// Count reports the number of children.
func (v *Value) Count() int {
	return len(v.Cells)
}

// Deleted reports whether Del has released v.
func (v *Value) Deleted() bool {
	return v.Type == typeDeleted
}

// Add appends child to v and returns v.
func (v *Value) Add(child *Value) *Value {
	v.Cells = append(v.Cells, child)
	return v
}

// Pop detaches the i-th child and hands it to the caller.
func (v *Value) Pop(i int) *Value {
	x := v.Cells[i]
	copy(v.Cells[i:], v.Cells[i+1:])
	v.Cells[len(v.Cells)-1] = nil
	v.Cells = v.Cells[:len(v.Cells)-1]
	return x
}

// Take detaches the i-th child and destroys the rest of v.
func (v *Value) Take(i int) *Value {
	x := v.Pop(i)
	v.Del()
	return x
}

// Join moves every child of y onto the end of x and destroys y.
func Join(x, y *Value) *Value {
	x.Cells = append(x.Cells, y.Cells...)
	y.Cells = nil
	y.Del()
	return x
}

// Quote retags an expression list as a quoted list.
func (v *Value) Quote() *Value {
	v.Type = TypeQExpr
	return v
}

// Unquote retags a quoted list as an expression list.
func (v *Value) Unquote() *Value {
	v.Type = TypeSExpr
	return v
}

// Copy returns a deep copy of v.
func (v *Value) Copy() *Value {
	x := &Value{Type: v.Type, payload: v.payload}
	if len(v.Cells) > 0 {
		x.Cells = make([]*Value, len(v.Cells))
		for i, c := range v.Cells {
			x.Cells[i] = c.Copy()
		}
	}
	return x
}

// Del destroys v and all of its children. Deleting twice is a no-op.
func (v *Value) Del() {
	if v == nil || v.Type == typeDeleted {
		return
	}
	for _, c := range v.Cells {
		c.Del()
	}
	v.Cells = nil
	v.payload = nil
	v.Type = typeDeleted
}

// TypeName returns the display name of t. Unknown tags are an internal
// error and panic.
func TypeName(t ValueType) string {
	switch t {
	case TypeNumber:
		return "Number"
	case TypeSymbol:
		return "Symbol"
	case TypeError:
		return "Error"
	case TypeSExpr:
		return "ExprList"
	case TypeQExpr:
		return "QuotedList"
	case TypeFunction:
		return "Function"
	default:
		panic(fmt.Sprintf("lang: unknown value type %d", int(t)))
	}
}

// String renders v in reader syntax.
func (v *Value) String() string {
	switch v.Type {
	case TypeNumber:
		return v.Num().String()
	case TypeSymbol:
		return v.Sym()
	case TypeError:
		return "Error: " + v.Err()
	case TypeSExpr:
		return cellsToString(v, '(', ')')
	case TypeQExpr:
		return cellsToString(v, '{', '}')
	case TypeFunction:
		return "<builtin>"
	default:
		return "<unknown>"
	}
}

func cellsToString(v *Value, lb, rb byte) string {
	var b strings.Builder
	b.WriteByte(lb)
	for i, c := range v.Cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	b.WriteByte(rb)
	return b.String()
}
