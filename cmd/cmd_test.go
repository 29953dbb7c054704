package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zaptest"

	"github.com/xolan/jot/internal/analyze"
	"github.com/xolan/jot/internal/cli"
	"github.com/xolan/jot/internal/config"
	"github.com/xolan/jot/internal/gitsync"
	"github.com/xolan/jot/internal/osutil"
	"github.com/xolan/jot/internal/service"
	"github.com/xolan/jot/internal/storage"
)

const testJournal = "* 2024-03-01 Fri\n" +
	"** Things that made me happy\n- tea\n" +
	"** Raw Input\nhad tea\n\n" +
	"* 2024-03-02 Sat\n" +
	"** Raw Input\nrainy day\n"

type testEnv struct {
	deps     *cli.Deps
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode *int
	dir      string
}

// testDeps installs deps over a temporary journal directory holding journal
// as journal.org.
func testDeps(t *testing.T, journal string, cfg config.Config) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg.StorageDir = dir
	if journal != "" {
		if err := os.WriteFile(filepath.Join(dir, "journal.org"), []byte(journal), 0644); err != nil {
			t.Fatal(err)
		}
	}

	log := zaptest.NewLogger(t)
	store := storage.NewStore(dir, cfg.Syntax())
	services := service.NewServicesWith(cfg, filepath.Join(dir, "config.toml"), store, analyze.Passthrough{}, nil, log)

	env := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}, exitCode: new(int), dir: dir}
	env.deps = &cli.Deps{
		Stdout:   env.stdout,
		Stderr:   env.stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { *env.exitCode = code },
		Services: services,
		Config:   cfg,
		Log:      log,
	}
	SetDeps(env.deps)
	t.Cleanup(ResetDeps)
	return env
}

// execute runs the root command with args and resets every flag afterwards
// so tests do not leak flag values into each other.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() { resetFlags(rootCmd) })
	rootCmd.SetArgs(args)
	return Execute(t.Context())
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestRoot_NoArgsListsEntries(t *testing.T) {
	env := testDeps(t, testJournal, config.DefaultConfig())

	if err := execute(t); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "[1] 2024-03-02 Sat  rainy day") || !strings.Contains(out, "[2] 2024-03-01 Fri  Things that made me happy") {
		t.Errorf("unexpected listing:\n%s", out)
	}
}

func TestRoot_ArgsWriteEntry(t *testing.T) {
	env := testDeps(t, "", config.DefaultConfig())

	if err := execute(t, "long", "walk", "in", "the", "park"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(env.dir, "journal.org"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "long walk in the park") {
		t.Errorf("entry not written:\n%s", data)
	}
}

func TestAddCmd(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		file  string
		want  string
	}{
		{"args with type", []string{"add", "-t", "work", "shipped", "the", "exporter"}, "", "work.org", "shipped the exporter"},
		{"stdin", []string{"add"}, "line one\nline two\n", "journal.org", "line one\nline two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testDeps(t, "", config.DefaultConfig())
			env.deps.Stdin = strings.NewReader(tt.stdin)

			if err := execute(t, tt.args...); err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if *env.exitCode != 0 {
				t.Fatalf("exit code %d: %s", *env.exitCode, env.stderr.String())
			}
			data, err := os.ReadFile(filepath.Join(env.dir, tt.file))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("%s does not contain %q:\n%s", tt.file, tt.want, data)
			}
		})
	}
}

func TestAddCmd_CommitsToGit(t *testing.T) {
	env := testDeps(t, "", config.DefaultConfig())
	repo := gitsync.New(gitsync.Options{
		Dir:         env.dir,
		Username:    "tester",
		AuthorEmail: "tester@example.com",
	}, env.deps.Log)
	cfg := env.deps.Config
	store := storage.NewStore(env.dir, cfg.Syntax())
	env.deps.Services = service.NewServicesWith(cfg, filepath.Join(env.dir, "config.toml"), store, analyze.Passthrough{}, repo, env.deps.Log)

	if err := execute(t, "add", "hello", "git"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if *env.exitCode != 0 || env.stderr.Len() != 0 {
		t.Fatalf("exit = %d, stderr = %s", *env.exitCode, env.stderr.String())
	}
	if !strings.Contains(env.stdout.String(), "Synced to git") {
		t.Errorf("expected sync confirmation, got:\n%s", env.stdout.String())
	}

	r, err := git.PlainOpen(env.dir)
	if err != nil {
		t.Fatalf("journal directory is not a repository: %v", err)
	}
	head, err := r.Head()
	if err != nil {
		t.Fatalf("Head() error: %v", err)
	}
	commit, err := r.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("CommitObject() error: %v", err)
	}
	if !strings.HasPrefix(commit.Message, "Journal entry ") {
		t.Errorf("commit message = %q", commit.Message)
	}
	f, err := commit.File("journal.org")
	if err != nil {
		t.Fatalf("journal.org not committed: %v", err)
	}
	body, err := f.Contents()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(body, "hello git") {
		t.Errorf("committed journal.org = %q", body)
	}
}

func TestAddCmd_UnknownType(t *testing.T) {
	env := testDeps(t, "", config.DefaultConfig())

	if err := execute(t, "add", "--type", "dream", "flying"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if *env.exitCode != 1 || !strings.Contains(env.stderr.String(), "jot types") {
		t.Errorf("exit = %d, stderr = %s", *env.exitCode, env.stderr.String())
	}
}

func TestListCmd(t *testing.T) {
	env := testDeps(t, testJournal, config.DefaultConfig())

	if err := execute(t, "list", "-s", "tea", "2024-03-01..2024-03-31"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	out := env.stdout.String()
	if !strings.Contains(out, `journal for 2024-03-01 to 2024-03-31 matching "tea"`) || !strings.Contains(out, "Total: 1 entry") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestListCmd_TooManyArgs(t *testing.T) {
	testDeps(t, testJournal, config.DefaultConfig())

	if err := execute(t, "list", "w", "lw"); err == nil {
		t.Error("expected an error for two ranges")
	}
}

func TestShowCmd(t *testing.T) {
	env := testDeps(t, testJournal, config.DefaultConfig())

	if err := execute(t, "show", "--html", "2"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "<h4>Things that made me happy</h4>") {
		t.Errorf("unexpected output:\n%s", env.stdout.String())
	}
}

func TestTypesCmd(t *testing.T) {
	env := testDeps(t, "", config.DefaultConfig())

	if err := execute(t, "types"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "work.org") {
		t.Errorf("unexpected output:\n%s", env.stdout.String())
	}
}

func TestExportCmd(t *testing.T) {
	env := testDeps(t, testJournal, config.DefaultConfig())
	out := filepath.Join(env.dir, "export.html")

	if err := execute(t, "export", "-o", out); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "rainy day") {
		t.Errorf("export missing entry:\n%s", data)
	}
}

func TestValidateCmd(t *testing.T) {
	env := testDeps(t, testJournal, config.DefaultConfig())

	if err := execute(t, "validate"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Entries:          2") {
		t.Errorf("unexpected output:\n%s", env.stdout.String())
	}
}

func TestRestoreCmd(t *testing.T) {
	env := testDeps(t, testJournal, config.DefaultConfig())

	if err := execute(t, "add", "one", "more", "day"); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "restore", "1"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if *env.exitCode != 0 {
		t.Fatalf("exit code %d: %s", *env.exitCode, env.stderr.String())
	}
	data, err := os.ReadFile(filepath.Join(env.dir, "journal.org"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != testJournal {
		t.Errorf("journal not restored:\n%s", data)
	}
}

func TestConfigCmd(t *testing.T) {
	env := testDeps(t, "", config.DefaultConfig())

	if err := execute(t, "config"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "Configuration for jot") {
		t.Errorf("unexpected output:\n%s", env.stdout.String())
	}

	env.stdout.Reset()
	if err := execute(t, "config", "init"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "config.toml")); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestCompletionCmd(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			env := testDeps(t, "", config.DefaultConfig())

			if err := execute(t, "completion", shell); err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if env.stdout.Len() == 0 {
				t.Error("expected completion script output")
			}
			if env.stderr.Len() != 0 {
				t.Errorf("unexpected stderr: %s", env.stderr.String())
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	env := testDeps(t, "", config.DefaultConfig())

	generateCompletion("tcsh")

	if *env.exitCode != 1 || !strings.Contains(env.stderr.String(), "Unsupported shell 'tcsh'") {
		t.Errorf("exit = %d, stderr = %s", *env.exitCode, env.stderr.String())
	}
}

type mockPathProvider struct {
	dir    string
	err    error
	getenv map[string]string
}

func (m mockPathProvider) UserConfigDir() (string, error) { return m.dir, m.err }

func (m mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (m mockPathProvider) Getenv(key string) string { return m.getenv[key] }

func TestSetup_ConfigDirError(t *testing.T) {
	ResetDeps()
	osutil.SetProvider(mockPathProvider{err: errors.New("permission denied")})
	t.Cleanup(osutil.ResetProvider)

	stderr := &bytes.Buffer{}
	rootCmd.SetErr(stderr)
	t.Cleanup(func() { rootCmd.SetErr(nil) })

	err := execute(t, "types")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, errReported) {
		t.Errorf("error was not reported by setup: %v", err)
	}
	if !strings.Contains(stderr.String(), "Error: Failed to load configuration") ||
		!strings.Contains(stderr.String(), "permission denied") {
		t.Errorf("unexpected stderr: %s", stderr.String())
	}
	if deps != nil {
		t.Error("deps should stay unset after a failed setup")
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	dir := t.TempDir()
	osutil.SetProvider(mockPathProvider{dir: dir, getenv: map[string]string{
		config.EnvPassword:    "hunter2",
		config.EnvGitUsername: "ada",
	}})
	t.Cleanup(osutil.ResetProvider)

	cfg, path, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if path != filepath.Join(dir, "jot", config.ConfigFile) {
		t.Errorf("path = %q", path)
	}
	if cfg.Password != "hunter2" || cfg.Git.Username != "ada" {
		t.Errorf("environment not applied: password=%q username=%q", cfg.Password, cfg.Git.Username)
	}
}

func TestNewDeps_BuildsServices(t *testing.T) {
	dir := t.TempDir()
	osutil.SetProvider(mockPathProvider{dir: dir, getenv: map[string]string{}})
	t.Cleanup(osutil.ResetProvider)

	d, err := newDeps(context.Background(), setupOptions{})
	if err != nil {
		t.Fatalf("newDeps() error: %v", err)
	}
	if d.Services == nil || d.Services.Journal == nil || d.Services.Git != nil {
		t.Errorf("unexpected services: %+v", d.Services)
	}
	if got := d.Services.Config.GetPath(); got != filepath.Join(dir, "jot", config.ConfigFile) {
		t.Errorf("config path = %q", got)
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-03-01")
	t.Cleanup(func() { rootCmd.Version = "" })

	if rootCmd.Version != "1.2.3" {
		t.Errorf("Version = %q", rootCmd.Version)
	}
}
