package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kpumuk/docweave"
	"github.com/kpumuk/docweave/internal/docsexpr"
)

const (
	exitOK       = 0
	exitFail     = 1
	exitInternal = 2
)

type cliOptions struct {
	write          bool
	stdin          bool
	assumeFilename string
	lineWidth      int
	path           string
}

const defaultLineWidth = 80

func run(_ context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	opts, usage, err := parseArgs(args)
	if err != nil {
		writef(stderr, "docweavefmt: %v\n\n%s", err, usage)
		return exitInternal
	}

	src, name, err := readInput(stdin, opts)
	if err != nil {
		writef(stderr, "docweavefmt: %v\n", err)
		return exitInternal
	}

	doc, err := docsexpr.Parse(string(src))
	if err != nil {
		writef(stderr, "docweavefmt: %s: parse failed: %v\n", name, err)
		return exitInternal
	}

	rendered, err := docweave.Pretty(doc, opts.lineWidth)
	if err != nil {
		if errors.Is(err, docweave.ErrFailDoc) {
			writef(stderr, "docweavefmt: %s: document failed to render at width %d\n", name, opts.lineWidth)
			return exitFail
		}
		writef(stderr, "docweavefmt: %s: %v\n", name, err)
		return exitInternal
	}

	if opts.write {
		outPath := opts.path + ".txt"
		if err := os.WriteFile(outPath, []byte(rendered), 0o600); err != nil {
			writef(stderr, "docweavefmt: write %s: %v\n", outPath, err)
			return exitInternal
		}
		return exitOK
	}

	_, _ = io.WriteString(stdout, rendered)
	return exitOK
}

func parseArgs(args []string) (cliOptions, string, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("docweavefmt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&opts.write, "write", false, "write rendered output to <path>.txt instead of stdout")
	fs.BoolVar(&opts.write, "w", false, "write rendered output to <path>.txt instead of stdout")
	fs.BoolVar(&opts.stdin, "stdin", false, "read the s-expression literal from stdin")
	fs.StringVar(&opts.assumeFilename, "assume-filename", "", "name used in diagnostics when reading from stdin")
	fs.IntVar(&opts.lineWidth, "line-width", defaultLineWidth, "maximum line width")

	usage := cliUsage(fs)
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, usage, err
	}

	if opts.stdin && opts.write {
		return cliOptions{}, usage, errors.New("--write and --stdin may not be used together")
	}
	if opts.lineWidth <= 0 {
		return cliOptions{}, usage, errors.New("--line-width must be positive")
	}

	rest := fs.Args()
	switch {
	case opts.stdin && len(rest) > 0:
		return cliOptions{}, usage, errors.New("positional file path is not allowed with --stdin")
	case !opts.stdin && len(rest) == 0:
		return cliOptions{}, usage, errors.New("exactly one input file path is required (or use --stdin)")
	case !opts.stdin && len(rest) != 1:
		return cliOptions{}, usage, errors.New("formatting multiple files in one invocation is not supported")
	}
	if !opts.stdin {
		opts.path = rest[0]
	}
	return opts, usage, nil
}

func cliUsage(fs *flag.FlagSet) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  docweavefmt [flags] path/to/doc.sexpr\n")
	b.WriteString("  docweavefmt --stdin [--assume-filename name] [flags]\n\n")
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

func writef(w io.Writer, format string, args ...any) {
	//nolint:gosec // Internal format strings are callsite constants, not user input.
	_, _ = io.WriteString(w, fmt.Sprintf(format, args...))
}
