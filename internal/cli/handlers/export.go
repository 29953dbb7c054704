package handlers

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/xolan/jot/internal/cli"
	"github.com/xolan/jot/internal/filter"
)

// ExportEntries writes the entries of a journal as a standalone HTML
// document to outPath, or to deps.Stdout when outPath is empty
func ExportEntries(deps *cli.Deps, typeName, rangeExpr, outPath string) {
	journal := deps.Services.Journal

	r, err := journal.ParseRange(rangeExpr)
	if err != nil {
		cli.Fail(deps, fmt.Sprintf("Invalid range '%s'", rangeExpr), err, "")
		return
	}
	entries, err := journal.Entries(typeName, filter.NewFilter("", r))
	if err != nil {
		cli.Fail(deps, "Failed to read entries", err, cli.HintFor(err))
		return
	}

	et, _ := journal.ResolveType(typeName)
	title := "jot: " + et.Name
	if r != nil {
		title += " (" + r.Label + ")"
	}

	var w io.Writer = deps.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			cli.Fail(deps, "Failed to create export file", err, "Check that the directory exists and is writable: "+outPath)
			return
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := deps.Renderer().Document(w, title, entries, time.Now()); err != nil {
		cli.Fail(deps, "Failed to export entries", err, "")
		return
	}

	if outPath != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Exported %d %s to %s\n", len(entries), cli.Pluralize("entry", len(entries)), outPath)
	}
}
