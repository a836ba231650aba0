package lang

// Evaluator reduces expressions against a global environment.
type Evaluator struct {
	Global *Env
}

// NewEvaluator constructs an evaluator rooted at a new global environment.
func NewEvaluator() *Evaluator {
	return &Evaluator{Global: NewEnv(nil)}
}

// Eval takes ownership of v and returns its reduced form.
func (ev *Evaluator) Eval(v *Value) *Value {
	switch v.Type {
	case TypeSymbol:
		x := ev.Global.Get(v.Sym())
		v.Del()
		return x
	case TypeSExpr:
		return ev.evalSExpr(v)
	default:
		return v
	}
}

// EvalAll evaluates a sequence of expressions and returns the last result.
// Evaluation stops at the first Error; the remaining forms are destroyed.
func (ev *Evaluator) EvalAll(forms []*Value) *Value {
	result := SExpr()
	for i, form := range forms {
		result.Del()
		result = ev.Eval(form)
		if IsError(result) {
			for _, rest := range forms[i+1:] {
				rest.Del()
			}
			break
		}
	}
	return result
}

func (ev *Evaluator) evalSExpr(v *Value) *Value {
	for i, c := range v.Cells {
		v.Cells[i] = ev.Eval(c)
	}
	for i, c := range v.Cells {
		if c.Type == TypeError {
			return v.Take(i)
		}
	}

	switch v.Count() {
	case 0:
		return v
	case 1:
		return v.Take(0)
	}

	f := v.Pop(0)
	if f.Type != TypeFunction {
		err := Errorf("S-Expression starts with incorrect type. Got %s, expected %s.",
			TypeName(f.Type), TypeName(TypeFunction))
		f.Del()
		v.Del()
		return err
	}
	result := f.Function().Fn(ev, v)
	f.Del()
	return result
}
