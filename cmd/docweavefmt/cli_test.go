package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRejectsInvalidFlagCombos(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(""), &out, &errb, []string{"--stdin", "--write"})
	if code != exitInternal {
		t.Fatalf("exit code = %d, want %d", code, exitInternal)
	}
	if !strings.Contains(errb.String(), "--write and --stdin") {
		t.Fatalf("stderr missing conflict message: %q", errb.String())
	}
}

func TestRunRendersFileToStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "x.sexpr")
	src := `(group (append (text "a") (append (line) (text "b"))))`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(""), &out, &errb, []string{path})
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d; stderr=%q", code, exitOK, errb.String())
	}
	if out.String() != "a b" {
		t.Fatalf("stdout = %q, want %q", out.String(), "a b")
	}
}

func TestRunRendersStdinAtNarrowWidth(t *testing.T) {
	t.Parallel()

	src := `(group (append (text "aaaa") (append (line) (text "bbbb"))))`
	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(src), &out, &errb, []string{"--stdin", "--line-width", "4"})
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d; stderr=%q", code, exitOK, errb.String())
	}
	if out.String() != "aaaa\nbbbb" {
		t.Fatalf("stdout = %q, want %q", out.String(), "aaaa\nbbbb")
	}
}

func TestRunReturnsFailExitCodeForFailDoc(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(`(fail)`), &out, &errb, []string{"--stdin"})
	if code != exitFail {
		t.Fatalf("exit code = %d, want %d", code, exitFail)
	}
	if !strings.Contains(errb.String(), "failed to render") {
		t.Fatalf("stderr missing failure message: %q", errb.String())
	}
}

func TestRunReturnsInternalExitCodeForParseError(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(`(bogus)`), &out, &errb, []string{"--stdin"})
	if code != exitInternal {
		t.Fatalf("exit code = %d, want %d", code, exitInternal)
	}
	if !strings.Contains(errb.String(), "parse failed") {
		t.Fatalf("stderr missing parse-failure message: %q", errb.String())
	}
}

func TestRunWriteProducesSiblingTxtFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "x.sexpr")
	if err := os.WriteFile(path, []byte(`(text "hi")`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(""), &out, &errb, []string{"--write", path})
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d; stderr=%q", code, exitOK, errb.String())
	}
	got, err := os.ReadFile(path + ".txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hi" {
		t.Fatalf("written content = %q, want %q", got, "hi")
	}
}
