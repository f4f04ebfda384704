package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kpumuk/docweave/internal/docsexpr"
	"github.com/kpumuk/docweave/internal/docvet"
)

const (
	exitOK       = 0
	exitIssues   = 1
	exitInternal = 2

	outputFormatText = "text"
	outputFormatJSON = "json"
)

type cliOptions struct {
	stdin          bool
	assumeFilename string
	format         string
	path           string
}

type findingJSON struct {
	RuleID  string `json:"ruleId"`
	Message string `json:"message"`
}

func run(_ context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	opts, usage, err := parseArgs(args)
	if err != nil {
		writef(stderr, "docweavelint: %v\n\n%s", err, usage)
		return exitInternal
	}

	src, name, err := readInput(stdin, opts)
	if err != nil {
		writef(stderr, "docweavelint: %v\n", err)
		return exitInternal
	}

	doc, err := docsexpr.Parse(string(src))
	if err != nil {
		writef(stderr, "docweavelint: %s: parse failed: %v\n", name, err)
		return exitInternal
	}

	findings := docvet.NewDefaultRunner[string]().Run(doc)
	if len(findings) == 0 {
		return exitOK
	}

	if err := writeFindings(opts.format, stdout, stderr, name, findings); err != nil {
		writef(stderr, "docweavelint: %v\n", err)
		return exitInternal
	}
	return exitIssues
}

func parseArgs(args []string) (cliOptions, string, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("docweavelint", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&opts.stdin, "stdin", false, "read the s-expression literal from stdin")
	fs.StringVar(&opts.assumeFilename, "assume-filename", "", "name used in diagnostics when reading from stdin")
	fs.StringVar(&opts.format, "format", outputFormatText, "diagnostic output format: text|json")

	usage := cliUsage(fs)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, usage, err
	}

	if !isSupportedOutputFormat(opts.format) {
		return cliOptions{}, usage, errors.New("--format must be one of: text, json")
	}

	rest := fs.Args()
	switch {
	case opts.stdin && len(rest) > 0:
		return cliOptions{}, usage, errors.New("positional file path is not allowed with --stdin")
	case !opts.stdin && len(rest) == 0:
		return cliOptions{}, usage, errors.New("exactly one input file path is required (or use --stdin)")
	case !opts.stdin && len(rest) != 1:
		return cliOptions{}, usage, errors.New("linting multiple files in one invocation is not supported")
	}
	if !opts.stdin {
		opts.path = rest[0]
	}
	return opts, usage, nil
}

func cliUsage(fs *flag.FlagSet) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  docweavelint [flags] path/to/doc.sexpr\n")
	b.WriteString("  docweavelint --stdin [--assume-filename name] [flags]\n\n")
	b.WriteString("Flags:\n")
	fs.VisitAll(func(f *flag.Flag) {
		writef(&b, "  --%s\t%s\n", f.Name, f.Usage)
	})
	return b.String()
}

func readInput(stdin io.Reader, opts cliOptions) ([]byte, string, error) {
	if opts.stdin {
		src, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		name := opts.assumeFilename
		if name == "" {
			name = "stdin.sexpr"
		}
		return src, name, nil
	}
	//nolint:gosec // CLI intentionally reads user-provided file paths.
	src, err := os.ReadFile(opts.path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", opts.path, err)
	}
	return src, opts.path, nil
}

func isSupportedOutputFormat(v string) bool {
	switch v {
	case outputFormatText, outputFormatJSON:
		return true
	default:
		return false
	}
}

func writeFindings(format string, stdout, stderr io.Writer, name string, findings []docvet.Finding) error {
	switch format {
	case outputFormatText:
		for _, f := range findings {
			writef(stderr, "%s: %s: %s\n", name, f.RuleID, f.Message)
		}
		return nil
	case outputFormatJSON:
		out := make([]findingJSON, len(findings))
		for i, f := range findings {
			out[i] = findingJSON{RuleID: f.RuleID, Message: f.Message}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		return fmt.Errorf("unsupported --format %q", format)
	}
}

func writef(w io.Writer, format string, args ...any) {
	//nolint:gosec // Internal format strings are callsite constants, not user input.
	_, _ = io.WriteString(w, fmt.Sprintf(format, args...))
}
