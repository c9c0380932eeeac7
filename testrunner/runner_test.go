package testrunner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunSuite(t *testing.T) {
	results, summary, err := Run(filepath.Join("testdata", "suite.yaml"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total == 0 {
		t.Fatal("no tests discovered")
	}
	for _, r := range results {
		if r.Result != Pass {
			t.Errorf("%s: %s %s", r.Name, r.Result, r.Message)
		}
	}
	if summary.Passed != summary.Total {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestLoadManifest(t *testing.T) {
	m, err := Load(filepath.Join("testdata", "suite.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Suite == "" || len(m.Tests) == 0 {
		t.Fatalf("manifest = %+v", m)
	}
	for _, entry := range m.Tests {
		if entry.Name == "" {
			t.Error("entry without a name")
		}
		if entry.Source == "" && entry.File == "" {
			t.Errorf("%s: no source", entry.Name)
		}
	}
}

func TestFailedExpectation(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "suite.yaml")
	content := `suite: failures
tests:
  - name: wrong-value
    source: "1 + 1;"
    expect: "3"
  - name: wrong-error
    source: "missing;"
    error: TypeError
  - name: skipped
    source: "1;"
    expect: "1"
    skip: true
`
	if err := os.WriteFile(manifest, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	results, summary, err := Run(manifest)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Failed != 2 || summary.Skipped != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if !strings.Contains(results[0].Message, "expected") {
		t.Fatalf("message = %q", results[0].Message)
	}
}

func TestReport(t *testing.T) {
	results := []TestResult{
		{Name: "ok", Result: Pass},
		{Name: "bad", Result: Fail, Message: "expected \"1\", got \"2\""},
	}
	summary := Summary{Total: 2, Passed: 1, Failed: 1}

	out := Report(results, summary, false)
	if strings.Contains(out, "ok") {
		t.Fatalf("non-verbose report should omit passes: %q", out)
	}
	if !strings.Contains(out, "FAIL  bad") && !strings.Contains(out, "FAIL") {
		t.Fatalf("report = %q", out)
	}

	verbose := Report(results, summary, true)
	if !strings.Contains(verbose, "PASS") {
		t.Fatalf("verbose report = %q", verbose)
	}
}
