// Package testrunner runs YAML-manifest script suites: each entry names
// a script (inline or on disk) and the expected result or error kind.
package testrunner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fadilhim/dartJSEngine/builtins"
	"github.com/fadilhim/dartJSEngine/interpreter"
	"github.com/fadilhim/dartJSEngine/runtime"
)

type Result int

const (
	Pass Result = iota
	Fail
	Skip
	Error
)

func (r Result) String() string {
	switch r {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case Skip:
		return "SKIP"
	case Error:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Manifest is a YAML suite file.
type Manifest struct {
	Suite string  `yaml:"suite"`
	Tests []Entry `yaml:"tests"`
}

// Entry is one scripted test. Either Source (inline) or File (relative
// to the manifest) supplies the script. Expect is the display string of
// the program result; Errors names an expected error kind instead.
type Entry struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	File   string `yaml:"file"`
	Expect string `yaml:"expect"`
	Errors string `yaml:"error"`
	Skip   bool   `yaml:"skip"`
}

type TestResult struct {
	Name    string
	Result  Result
	Message string
	Elapsed time.Duration
}

type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Errors  int
	Elapsed time.Duration
}

// Load parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Run executes every entry of the manifest at path, building a fresh
// interpreter per test.
func Run(path string) ([]TestResult, Summary, error) {
	m, err := Load(path)
	if err != nil {
		return nil, Summary{}, err
	}
	baseDir := filepath.Dir(path)

	start := time.Now()
	var results []TestResult
	var summary Summary
	for _, entry := range m.Tests {
		r := runEntry(baseDir, entry)
		results = append(results, r)
		summary.Total++
		switch r.Result {
		case Pass:
			summary.Passed++
		case Fail:
			summary.Failed++
		case Skip:
			summary.Skipped++
		case Error:
			summary.Errors++
		}
	}
	summary.Elapsed = time.Since(start)
	return results, summary, nil
}

func runEntry(baseDir string, entry Entry) TestResult {
	start := time.Now()
	result := TestResult{Name: entry.Name}

	if entry.Skip {
		result.Result = Skip
		return result
	}

	source := entry.Source
	if source == "" && entry.File != "" {
		data, err := os.ReadFile(filepath.Join(baseDir, entry.File))
		if err != nil {
			result.Result = Error
			result.Message = err.Error()
			return result
		}
		source = string(data)
	}

	i := interpreter.New(builtins.Register)
	value, err := i.Eval(entry.Name, source)
	result.Elapsed = time.Since(start)

	if entry.Errors != "" {
		if err == nil {
			result.Result = Fail
			result.Message = fmt.Sprintf("expected %s, got no error", entry.Errors)
			return result
		}
		rerr, ok := err.(*runtime.Error)
		if !ok {
			result.Result = Error
			result.Message = err.Error()
			return result
		}
		if rerr.Kind.String() != entry.Errors {
			result.Result = Fail
			result.Message = fmt.Sprintf("expected %s, got %s", entry.Errors, rerr.Kind)
			return result
		}
		result.Result = Pass
		return result
	}

	if err != nil {
		result.Result = Error
		result.Message = err.Error()
		return result
	}
	got := value.ToString()
	if got != entry.Expect {
		result.Result = Fail
		result.Message = fmt.Sprintf("expected %q, got %q", entry.Expect, got)
		return result
	}
	result.Result = Pass
	return result
}

// Report renders per-test lines plus an aggregate summary line.
func Report(results []TestResult, summary Summary, verbose bool) string {
	var b strings.Builder
	for _, r := range results {
		if !verbose && r.Result == Pass {
			continue
		}
		fmt.Fprintf(&b, "%-5s %s", r.Result, r.Name)
		if r.Message != "" {
			fmt.Fprintf(&b, ": %s", r.Message)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d tests: %d passed, %d failed, %d skipped, %d errors (%s)\n",
		summary.Total, summary.Passed, summary.Failed, summary.Skipped, summary.Errors,
		summary.Elapsed.Round(time.Millisecond))
	return b.String()
}
