package handlers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateJournals(t *testing.T) {
	env := setupTestDeps(t, "* 2024-03-01 Fri\n** Raw Input\nhello\n")

	ValidateJournals(env.deps)
	env.expectSuccess(t)

	out := env.stdout.String()
	for _, want := range []string{"journal.org", "Entries:          1", "work.org", "missing", "Journal files are healthy"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestValidateJournals_Orphans(t *testing.T) {
	env := setupTestDeps(t, testJournal)

	ValidateJournals(env.deps)
	env.expectSuccess(t)

	if !strings.Contains(env.stderr.String(), "1 journal file with lines outside any dated entry") {
		t.Errorf("unexpected stderr: %s", env.stderr.String())
	}
}

func TestRestoreJournal_NoBackups(t *testing.T) {
	env := setupTestDeps(t, testJournal)

	RestoreJournal(env.deps, "", nil)

	if *env.exitCode != 1 || !strings.Contains(env.stdout.String(), "No backups available") {
		t.Errorf("exit = %d, stdout = %s", *env.exitCode, env.stdout.String())
	}
}

func TestRestoreJournal(t *testing.T) {
	env := setupTestDeps(t, testJournal)
	AddEntry(t.Context(), env.deps, "", "a new day")
	env.expectSuccess(t)
	env.stdout.Reset()

	RestoreJournal(env.deps, "", nil)
	env.expectSuccess(t)

	if !strings.Contains(env.stdout.String(), "1: ") || !strings.Contains(env.stdout.String(), "Successfully restored from backup 1") {
		t.Errorf("unexpected output: %s", env.stdout.String())
	}
	data, err := os.ReadFile(filepath.Join(env.dir, "journal.org"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != testJournal {
		t.Errorf("journal not restored:\n%s", data)
	}
}

func TestRestoreJournal_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"not a number", []string{"x"}, "Invalid backup number 'x'"},
		{"missing backup", []string{"3"}, "Backup 3 does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestDeps(t, testJournal)
			AddEntry(t.Context(), env.deps, "", "a new day")
			env.expectSuccess(t)

			RestoreJournal(env.deps, "", tt.args)
			env.expectFailure(t, tt.contains)
		})
	}
}
