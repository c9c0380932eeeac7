package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/fadilhim/dartJSEngine/builtins"
	"github.com/fadilhim/dartJSEngine/interpreter"
	"github.com/fadilhim/dartJSEngine/runtime"
	"github.com/fadilhim/dartJSEngine/testrunner"
)

const historyFile = ".jsengine_history"

func main() {
	evalSrc := flag.String("e", "", "evaluate inline source and exit")
	suite := flag.String("suite", "", "run a YAML script-suite manifest")
	verbose := flag.Bool("v", false, "verbose suite output")
	flag.Parse()

	switch {
	case *suite != "":
		os.Exit(runSuite(*suite, *verbose))
	case *evalSrc != "":
		os.Exit(runSource("<eval>", *evalSrc))
	case flag.NArg() > 0:
		os.Exit(runFile(flag.Arg(0)))
	default:
		os.Exit(repl())
	}
}

func runFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return runSource(path, string(data))
}

func runSource(name, source string) int {
	i := interpreter.New(builtins.Register)
	if _, err := i.Eval(name, source); err != nil {
		printError(err)
		return 1
	}
	return 0
}

func runSuite(path string, verbose bool) int {
	results, summary, err := testrunner.Run(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Print(testrunner.Report(results, summary, verbose))
	if summary.Failed > 0 || summary.Errors > 0 {
		return 1
	}
	return 0
}

func repl() int {
	fmt.Println("jsengine (type :quit to exit)")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	i := interpreter.New(builtins.Register)
	for {
		line, err := ln.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			fmt.Println()
			return 0
		}
		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if code == ":quit" {
			return 0
		}

		value, evalErr := i.Eval("<repl>", code)
		if evalErr != nil {
			printError(evalErr)
			continue
		}
		fmt.Println(value.ToString())
		ln.AppendHistory(line)
	}
}

func printError(err error) {
	var rerr *runtime.Error
	if errors.As(err, &rerr) {
		fmt.Fprintln(os.Stderr, rerr.FormatTrace())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
