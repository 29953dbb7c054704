package handlers

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xolan/jot/internal/cli"
	"github.com/xolan/jot/internal/filter"
	"github.com/xolan/jot/internal/timeutil"
)

// ReadContent returns the entry text from args, or from deps.Stdin when no
// args are given.
func ReadContent(deps *cli.Deps, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// AddEntry composes an entry synchronously and reports where it was written
func AddEntry(ctx context.Context, deps *cli.Deps, typeName, content string) {
	journal := deps.Services.Journal

	sub, err := journal.NewSubmission(typeName, content)
	if err != nil {
		cli.Fail(deps, "Failed to create entry", err, cli.HintFor(err))
		return
	}

	res, err := journal.Compose(ctx, sub)
	if err != nil {
		cli.Fail(deps, "Failed to save entry", err, "Check that the storage directory exists and is writable")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatComposeResult(res))
	switch {
	case res.SyncErr != nil:
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: git sync failed: %v\n", res.SyncErr)
	case res.Synced:
		_, _ = fmt.Fprintln(deps.Stdout, "Synced to git")
	}
}

// ListEntries lists the entries of a journal, optionally limited to a date
// range expression and a keyword
func ListEntries(deps *cli.Deps, typeName, rangeExpr, keyword string) {
	journal := deps.Services.Journal

	r, err := journal.ParseRange(rangeExpr)
	if err != nil {
		cli.Fail(deps, fmt.Sprintf("Invalid range '%s'", rangeExpr), err,
			"Use one of "+strings.Join(timeutil.RangeNames, ", ")+", a date (YYYY-MM-DD) or FROM..TO")
		return
	}

	f := filter.NewFilter(keyword, r)
	entries, err := journal.Entries(typeName, f)
	if err != nil {
		cli.Fail(deps, "Failed to read entries", err, cli.HintFor(err))
		return
	}

	et, _ := journal.ResolveType(typeName)
	period := describePeriod(et.Name, r, f.Keyword)

	if len(entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found in %s\n", period)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries in %s:\n", period)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))

	width := len(strconv.Itoa(len(entries)))
	for i, e := range entries {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEntryLine(i+1, width, e, journal.Syntax()))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %d %s\n", len(entries), cli.Pluralize("entry", len(entries)))
}

func describePeriod(typeName string, r *timeutil.Range, keyword string) string {
	period := typeName
	if r != nil {
		period += " for " + r.Label
	}
	if keyword != "" {
		period += fmt.Sprintf(" matching %q", keyword)
	}
	return period
}

// ShowEntry renders entry n of a journal (1 is the most recent) as a plain
// text outline or as HTML
func ShowEntry(deps *cli.Deps, typeName, indexArg string, html bool) {
	n, err := strconv.Atoi(indexArg)
	if err != nil {
		cli.Fail(deps, fmt.Sprintf("Invalid index '%s'. Index must be a number", indexArg), nil,
			"List entries with 'jot list' to see available indices")
		return
	}

	journal := deps.Services.Journal
	e, err := journal.Entry(typeName, n)
	if err != nil {
		cli.Fail(deps, "Failed to show entry", err, cli.HintFor(err))
		return
	}

	if html {
		body, err := deps.Renderer().Entry(e)
		if err != nil {
			cli.Fail(deps, "Failed to render entry", err, "")
			return
		}
		_, _ = fmt.Fprint(deps.Stdout, body)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, e.Date)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", len([]rune(e.Date))))
	if out := cli.FormatOutline(e.Content, journal.Syntax()); out != "" {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprint(deps.Stdout, out)
	}
	if e.RawInput != "" {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Raw input:")
		for _, line := range strings.Split(e.RawInput, "\n") {
			_, _ = fmt.Fprintln(deps.Stdout, "  "+strings.TrimSpace(line))
		}
	}
}

// ListTypes lists the configured entry types with their journal files and
// analysed fields
func ListTypes(deps *cli.Deps) {
	types := deps.Services.Journal.Types()
	if len(types) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entry types configured")
		return
	}

	s := deps.Services.Journal.Syntax()
	_, _ = fmt.Fprintln(deps.Stdout, "Entry types:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, et := range types {
		_, _ = fmt.Fprintf(deps.Stdout, "%-10s %s\n", et.Name, s.FileName(et.TargetFile))
		if len(et.Fields) > 0 {
			_, _ = fmt.Fprintf(deps.Stdout, "           fields: %s\n", strings.Join(et.Fields, ", "))
		}
	}
}
