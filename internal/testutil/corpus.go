// Package testutil provides shared helpers for repository tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/txtar"
)

// RenderCase is a single render-engine fixture loaded from a txtar archive:
// a doc description (interpreted by the caller's builder of choice), the
// width to render at, and the expected output.
type RenderCase struct {
	Name     string
	Path     string
	Width    int
	DocDesc  string
	Expected string
}

// RenderCorpus returns the sorted *.txtar fixtures under
// testdata/render/<setName>. Each archive must contain a "width" file
// holding a decimal line width, a "doc" file describing the document (read
// by the test's own builder), and an "expected" file holding the exact
// rendered output. txtar ends every file's data with a newline, so one
// trailing newline is dropped from "expected".
func RenderCorpus(setName string) ([]RenderCase, error) {
	root, err := RepoRoot()
	if err != nil {
		return nil, err
	}
	setDir := filepath.Join(root, "testdata", "render", setName)
	entries, err := os.ReadDir(setDir)
	if err != nil {
		return nil, fmt.Errorf("read render set %q: %w", setName, err)
	}

	var cases []RenderCase
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".txtar" {
			continue
		}
		path := filepath.Join(setDir, e.Name())
		arc, err := txtar.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		var widthRaw, docDesc, expected string
		var haveWidth, haveDoc, haveExpected bool
		for _, f := range arc.Files {
			switch f.Name {
			case "width":
				widthRaw = string(f.Data)
				haveWidth = true
			case "doc":
				docDesc = string(f.Data)
				haveDoc = true
			case "expected":
				expected = string(f.Data)
				haveExpected = true
			}
		}
		if !haveWidth || !haveDoc || !haveExpected {
			return nil, fmt.Errorf("%s: archive must contain width, doc, and expected files", path)
		}
		width, err := strconv.Atoi(strings.TrimSpace(widthRaw))
		if err != nil {
			return nil, fmt.Errorf("%s: invalid width %q: %w", path, widthRaw, err)
		}

		cases = append(cases, RenderCase{
			Name:     strings.TrimSuffix(e.Name(), ".txtar"),
			Path:     path,
			Width:    width,
			DocDesc:  docDesc,
			Expected: strings.TrimSuffix(expected, "\n"),
		})
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases, nil
}
