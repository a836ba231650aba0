package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/sergev/lispy/lang"
	"github.com/sergev/lispy/reader"
	"github.com/sergev/lispy/runtime"
)

func main() {
	ev := runtime.NewEvaluator()
	args := os.Args[1:]
	if len(args) > 0 {
		runtime.SetArgv(ev.Global, args)
		os.Exit(runScript(ev, args[0]))
	}

	runtime.SetArgv(ev.Global, []string{})
	runREPL(ev)
}

func runScript(ev *lang.Evaluator, script string) int {
	var (
		val *lang.Value
		err error
	)
	if script == "-" {
		val, err = runtime.EvaluateReader(ev, os.Stdin)
	} else {
		val, err = runtime.EvaluateFile(ev, script)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "lispy: %v\n", err)
		return 1
	}
	defer val.Del()
	if lang.IsError(val) {
		fmt.Fprintf(os.Stderr, "lispy: %s\n", val.Err())
		return 1
	}
	return 0
}

func runREPL(ev *lang.Evaluator) {
	if !isInteractive() {
		runBufferedREPL(ev, bufio.NewReader(os.Stdin), os.Stdout)
		return
	}
	runInteractiveREPL(ev)
}

func isIncomplete(err error) bool {
	return errors.Is(err, reader.ErrUnterminated)
}

// evalInput evaluates one complete REPL input and prints the result.
func evalInput(ev *lang.Evaluator, src string, out io.Writer) error {
	val, err := runtime.EvaluateLine(ev, src)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, val.String())
	val.Del()
	return nil
}

func runBufferedREPL(ev *lang.Evaluator, in *bufio.Reader, out io.Writer) {
	var buffer strings.Builder

	for {
		line, err := in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if buffer.Len() == 0 && line == "" {
					return
				}
			} else {
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(line)
		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			if errors.Is(err, io.EOF) {
				return
			}
			continue
		}
		if parseErr := evalInput(ev, src, out); parseErr != nil {
			if isIncomplete(parseErr) && !errors.Is(err, io.EOF) {
				continue
			}
			fmt.Fprintf(os.Stderr, "parse error: %v\n", parseErr)
		}
		buffer.Reset()
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func runInteractiveREPL(ev *lang.Evaluator) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := "lispy> "
		if buffer.Len() > 0 {
			prompt = ".... "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		if strings.TrimSpace(src) == "" {
			buffer.Reset()
			continue
		}
		if parseErr := evalInput(ev, src, os.Stdout); parseErr != nil {
			if isIncomplete(parseErr) {
				continue
			}
			fmt.Fprintf(os.Stderr, "parse error: %v\n", parseErr)
		}
		buffer.Reset()
		state.AppendHistory(strings.TrimSpace(src))
	}
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".lispy_history")
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
