package runtime

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/sergev/lispy/lang"
	"github.com/sergev/lispy/reader"
)

// NewEvaluator constructs an evaluator with the standard builtins installed.
func NewEvaluator() *lang.Evaluator {
	ev := lang.NewEvaluator()
	installBuiltins(ev)
	if err := installLibrary(ev); err != nil {
		panic(fmt.Errorf("runtime bootstrap failed: %w", err))
	}
	return ev
}

// SetArgv stores the command-line arguments as a quoted list of symbols.
func SetArgv(env *lang.Env, args []string) {
	argv := lang.QExpr()
	for _, arg := range args {
		argv.Add(lang.SymbolValue(arg))
	}
	env.Define("*argv*", argv)
	argv.Del()
}

func installLibrary(ev *lang.Evaluator) error {
	for _, form := range preludeForms {
		forms, err := reader.ReadString(form)
		if err != nil {
			return err
		}
		result := ev.EvalAll(forms)
		if lang.IsError(result) {
			return fmt.Errorf("prelude: %s", result.Err())
		}
		result.Del()
	}
	return nil
}

func readFileSkippingShebang(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte("#!")) {
		if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
			return data[idx+1:], nil
		}
		return []byte{}, nil
	}
	return data, nil
}

// EvaluateReader consumes all expressions from the reader and evaluates them.
// A parse failure is returned as a Go error; evaluation failures come back
// as an Error value.
func EvaluateReader(ev *lang.Evaluator, r io.Reader) (*lang.Value, error) {
	forms, err := reader.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ev.EvalAll(forms), nil
}

// EvaluateString parses and evaluates source text.
func EvaluateString(ev *lang.Evaluator, src string) (*lang.Value, error) {
	forms, err := reader.ReadString(src)
	if err != nil {
		return nil, err
	}
	return ev.EvalAll(forms), nil
}

// EvaluateLine evaluates one REPL input. Input that starts with a bare
// symbol or atom is read as a single expression list, so "+ 1 2" needs no
// enclosing parentheses; input that starts with a parenthesized form is
// evaluated form by form.
func EvaluateLine(ev *lang.Evaluator, src string) (*lang.Value, error) {
	forms, err := reader.ReadString(src)
	if err != nil {
		return nil, err
	}
	if len(forms) > 0 && forms[0].Type == lang.TypeSExpr {
		return ev.EvalAll(forms), nil
	}
	return ev.Eval(lang.SExpr(forms...)), nil
}

// EvaluateFile loads and executes a source file, allowing a #! shebang.
func EvaluateFile(ev *lang.Evaluator, path string) (*lang.Value, error) {
	data, err := readFileSkippingShebang(path)
	if err != nil {
		return nil, err
	}
	return EvaluateReader(ev, bytes.NewReader(data))
}
