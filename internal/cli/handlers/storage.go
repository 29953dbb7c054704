package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xolan/jot/internal/cli"
)

// ValidateJournals reports the health of every journal file
func ValidateJournals(deps *cli.Deps) {
	reports, err := deps.Services.Journal.Validate()
	if err != nil {
		cli.Fail(deps, "Failed to validate journals", err, "")
		return
	}

	unhealthy := 0
	for i, h := range reports {
		if i > 0 {
			_, _ = fmt.Fprintln(deps.Stdout)
		}
		_, _ = fmt.Fprint(deps.Stdout, cli.FormatHealth(h))
		if !h.Healthy() {
			unhealthy++
		}
	}

	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	if unhealthy == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Journal files are healthy")
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Status: ⚠ %d journal %s with lines outside any dated entry\n",
		unhealthy, cli.Pluralize("file", unhealthy))
}

// RestoreJournal lists the backups of a journal and restores backup n
// (the most recent when no argument is given)
func RestoreJournal(deps *cli.Deps, typeName string, args []string) {
	journal := deps.Services.Journal

	backups, err := journal.Backups(typeName)
	if err != nil {
		cli.Fail(deps, "Failed to list backups", err, cli.HintFor(err))
		return
	}
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, b := range backups {
		if b.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", b.Number, b.Path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", b.Number, b.Path)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	n := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			cli.Fail(deps, fmt.Sprintf("Invalid backup number '%s'", args[0]), nil, "")
			return
		}
		n = num
	}

	found := false
	for _, b := range backups {
		if b.Number == n {
			found = true
			break
		}
	}
	if !found {
		cli.Fail(deps, fmt.Sprintf("Backup %d does not exist", n), nil,
			fmt.Sprintf("Choose one of the %d available %s listed above", len(backups), cli.Pluralize("backup", len(backups))))
		return
	}

	if err := journal.Restore(typeName, n); err != nil {
		cli.Fail(deps, "Failed to restore backup", err, "")
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", n)
}
