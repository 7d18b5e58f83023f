package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
)

// execute runs the CLI with args and returns what it printed to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	runErr := cmd.ExecuteContext(context.Background())

	w.Close()
	out := <-done
	r.Close()
	return out, runErr
}

func TestCatalogCommand(t *testing.T) {
	out, err := execute(t, "catalog")
	if err != nil {
		t.Fatalf("catalog failed: %v", err)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "NaCl") {
		t.Errorf("catalog output missing roster:\n%s", out)
	}

	if _, err := execute(t, "catalog", "--unit", "F"); err == nil {
		t.Error("expected unknown unit to fail")
	}
}

func TestDissociateCommand(t *testing.T) {
	out, err := execute(t, "dissociate", "NaCl")
	if err != nil {
		t.Fatalf("dissociate failed: %v", err)
	}
	if !strings.HasPrefix(out, "NaCl -> ") {
		t.Errorf("unexpected output: %q", out)
	}

	if _, err := execute(t, "dissociate", "Unobtainium"); err == nil {
		t.Error("expected unknown material to fail")
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--data", dir, "run", "--no-save")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{"steps: 500", "final amounts:", "mass_balance"} {
		if !strings.Contains(out, want) {
			t.Errorf("run output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "run id:") {
		t.Error("--no-save should not persist the run")
	}

	out, err = execute(t, "--data", dir, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "no runs found") {
		t.Errorf("expected no stored runs, got:\n%s", out)
	}

	if _, err := execute(t, "--data", dir, "run", "--time", "0.5"); err != nil {
		t.Fatalf("saving run failed: %v", err)
	}
	out, err = execute(t, "--data", dir, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "reaction_1_") {
		t.Errorf("expected the saved run to be listed, got:\n%s", out)
	}
}

func TestRunCommandRejectsBadConfig(t *testing.T) {
	if _, err := execute(t, "--data", t.TempDir(), "run", "--no-save", "--policy", "ignore"); err == nil {
		t.Error("expected invalid policy to fail")
	}
	if _, err := execute(t, "--log-level", "loud", "catalog"); err == nil {
		t.Error("expected invalid log level to fail")
	}
}
