package runtime

import (
	"math"

	"github.com/nukata/goarith"
	"github.com/sergev/lispy/lang"
)

func installBuiltins(ev *lang.Evaluator) {
	env := ev.Global
	define := func(name string, fn lang.Builtin) {
		f := lang.FunctionValue(name, fn)
		env.Define(name, f)
		f.Del()
	}

	define("list", builtinList)
	define("head", builtinHead)
	define("tail", builtinTail)
	define("init", builtinInit)
	define("len", builtinLen)
	define("cons", builtinCons)
	define("join", builtinJoin)
	define("eval", builtinEval)
	define("def", builtinDef)

	define("+", arith("+"))
	define("-", arith("-"))
	define("*", arith("*"))
	define("/", arith("/"))
	define("%", arith("%"))
	define("min", arith("min"))
	define("max", arith("max"))
}

func builtinList(ev *lang.Evaluator, args *lang.Value) *lang.Value {
	return args.Quote()
}

func builtinHead(ev *lang.Evaluator, args *lang.Value) *lang.Value {
	if err := checkListArg("head", args); err != nil {
		return err
	}
	if err := lang.CheckNotEmpty("head", args, 0); err != nil {
		return err
	}
	v := args.Take(0)
	for v.Count() > 1 {
		v.Pop(1).Del()
	}
	return v
}

func builtinTail(ev *lang.Evaluator, args *lang.Value) *lang.Value {
	if err := checkListArg("tail", args); err != nil {
		return err
	}
	if err := lang.CheckNotEmpty("tail", args, 0); err != nil {
		return err
	}
	v := args.Take(0)
	v.Pop(0).Del()
	return v
}

func builtinInit(ev *lang.Evaluator, args *lang.Value) *lang.Value {
	if err := checkListArg("init", args); err != nil {
		return err
	}
	if err := lang.CheckNotEmpty("init", args, 0); err != nil {
		return err
	}
	v := args.Take(0)
	v.Pop(v.Count() - 1).Del()
	return v
}

func builtinLen(ev *lang.Evaluator, args *lang.Value) *lang.Value {
	if err := checkListArg("len", args); err != nil {
		return err
	}
	n := args.Cells[0].Count()
	args.Del()
	return lang.IntValue(int64(n))
}

func builtinCons(ev *lang.Evaluator, args *lang.Value) *lang.Value {
	if err := lang.CheckArity("cons", args, 2); err != nil {
		return err
	}
	if err := lang.CheckType("cons", args, 1, lang.TypeQExpr); err != nil {
		return err
	}
	x := args.Pop(0)
	return lang.Join(lang.QExpr(x), args.Take(0))
}

func builtinJoin(ev *lang.Evaluator, args *lang.Value) *lang.Value {
	if err := checkMinArity("join", args, 1); err != nil {
		return err
	}
	for i := range args.Cells {
		if err := lang.CheckType("join", args, i, lang.TypeQExpr); err != nil {
			return err
		}
	}
	x := args.Pop(0)
	for args.Count() > 0 {
		x = lang.Join(x, args.Pop(0))
	}
	args.Del()
	return x
}

func builtinEval(ev *lang.Evaluator, args *lang.Value) *lang.Value {
	if err := checkListArg("eval", args); err != nil {
		return err
	}
	return ev.Eval(args.Take(0).Unquote())
}

func builtinDef(ev *lang.Evaluator, args *lang.Value) *lang.Value {
	if err := checkMinArity("def", args, 1); err != nil {
		return err
	}
	if err := lang.CheckType("def", args, 0, lang.TypeQExpr); err != nil {
		return err
	}
	syms := args.Cells[0]
	for _, s := range syms.Cells {
		if err := lang.Assert(args, s.Type == lang.TypeSymbol,
			"Function 'def' cannot define non-symbol. Got %s, expected %s.",
			lang.TypeName(s.Type), lang.TypeName(lang.TypeSymbol)); err != nil {
			return err
		}
	}
	if err := lang.Assert(args, syms.Count() == args.Count()-1,
		"Function 'def' passed incorrect number of values for symbols. Got %d, expected %d.",
		args.Count()-1, syms.Count()); err != nil {
		return err
	}
	for i, s := range syms.Cells {
		ev.Global.Def(s.Sym(), args.Cells[i+1])
	}
	args.Del()
	return lang.SExpr()
}

// checkListArg is the common prologue of the single-list builtins.
func checkListArg(fn string, args *lang.Value) *lang.Value {
	if err := lang.CheckArity(fn, args, 1); err != nil {
		return err
	}
	return lang.CheckType(fn, args, 0, lang.TypeQExpr)
}

func checkMinArity(fn string, args *lang.Value, n int) *lang.Value {
	return lang.Assert(args, args.Count() >= n,
		"Function '%s' passed incorrect number of arguments. Got %d, expected at least %d.",
		fn, args.Count(), n)
}

var (
	zero     = goarith.AsNumber(int64(0))
	minusOne = goarith.AsNumber(int64(-1))
	floatOne = goarith.AsNumber(1.0)
)

func arith(op string) lang.Builtin {
	minArgs := 1
	if op == "%" {
		minArgs = 2
	}
	return func(ev *lang.Evaluator, args *lang.Value) *lang.Value {
		if err := checkMinArity(op, args, minArgs); err != nil {
			return err
		}
		for i := range args.Cells {
			if err := lang.CheckType(op, args, i, lang.TypeNumber); err != nil {
				return err
			}
		}

		acc := args.Cells[0].Num()
		if args.Count() == 1 {
			switch op {
			case "-":
				acc = zero.Sub(acc)
			case "/":
				if err := lang.Assert(args, acc.Cmp(zero) != 0, "Division By Zero."); err != nil {
					return err
				}
				acc = divide(op, floatOne, acc)
			}
		}
		for _, c := range args.Cells[1:] {
			y := c.Num()
			switch op {
			case "+":
				acc = acc.Add(y)
			case "-":
				acc = acc.Sub(y)
			case "*":
				acc = acc.Mul(y)
			case "/", "%":
				if err := lang.Assert(args, y.Cmp(zero) != 0, "Division By Zero."); err != nil {
					return err
				}
				acc = divide(op, acc, y)
			case "min":
				if y.Cmp(acc) < 0 {
					acc = y
				}
			case "max":
				if y.Cmp(acc) > 0 {
					acc = y
				}
			}
		}
		args.Del()
		return lang.NumberValue(acc)
	}
}

// divide computes x/y or x%y for a non-zero y. Float operands give float
// division; integers truncate and promote on overflow.
func divide(op string, x, y goarith.Number) goarith.Number {
	if isFloat(x) || isFloat(y) {
		a, b := toFloat(x), toFloat(y)
		if op == "/" {
			return goarith.AsNumber(a / b)
		}
		return goarith.AsNumber(math.Mod(a, b))
	}
	if y.Cmp(minusOne) == 0 {
		// QuoRem wraps on the smallest fixnum; negate instead.
		if op == "/" {
			return zero.Sub(x)
		}
		return zero
	}
	q, r := x.QuoRem(y)
	if op == "/" {
		return q
	}
	return r
}

func isFloat(n goarith.Number) bool {
	_, ok := n.(goarith.Float64)
	return ok
}

func toFloat(n goarith.Number) float64 {
	if f, ok := n.(goarith.Float64); ok {
		return float64(f)
	}
	if f, ok := n.Add(goarith.AsNumber(0.0)).(goarith.Float64); ok {
		return float64(f)
	}
	return math.NaN()
}
