package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunRejectsUnsupportedFormat(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(`(text "a")`), &out, &errb, []string{"--stdin", "--format", "xml"})
	if code != exitInternal {
		t.Fatalf("exit code = %d, want %d", code, exitInternal)
	}
	if !strings.Contains(errb.String(), "--format") {
		t.Fatalf("stderr missing format complaint: %q", errb.String())
	}
}

func TestRunReturnsOKForCleanDoc(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(`(group (append (text "a") (line)))`), &out, &errb, []string{"--stdin"})
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d; stderr=%q", code, exitOK, errb.String())
	}
}

func TestRunReturnsInternalExitCodeOnParseFailure(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(`(bogus)`), &out, &errb, []string{"--stdin"})
	if code != exitInternal {
		t.Fatalf("exit code = %d, want %d", code, exitInternal)
	}
}

func TestRunJSONFormatIsSilentWhenClean(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(`(text "clean")`), &out, &errb, []string{"--stdin", "--format", "json"})
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d; stderr=%q", code, exitOK, errb.String())
	}
	if out.Len() != 0 {
		t.Fatalf("expected no JSON output when there are no findings, got %q", out.String())
	}
}

func TestRunTextFormatIsSilentWhenClean(t *testing.T) {
	t.Parallel()

	var out, errb bytes.Buffer
	code := run(context.Background(), strings.NewReader(`(text "a")`), &out, &errb, []string{"--stdin"})
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	if out.Len() != 0 || errb.Len() != 0 {
		t.Fatalf("expected silent success, got stdout=%q stderr=%q", out.String(), errb.String())
	}
}
