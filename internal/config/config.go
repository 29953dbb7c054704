package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xolan/jot/internal/app"
	"github.com/xolan/jot/internal/journal"
	"github.com/xolan/jot/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// DefaultEntryType is used when a submission names no type
	DefaultEntryType = "journal"
)

// Environment variables holding secrets and git overrides. Secrets never live
// in the config file.
const (
	EnvPassword    = "JOURNAL_PASSWORD"
	EnvGeminiToken = "GEMINI_API_TOKEN"
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvGitUsername = "GIT_USERNAME"
	EnvGitRepo     = "GIT_REPO_NAME"
)

// EntryType describes a kind of journal entry and the file it is written to
type EntryType struct {
	Name       string   `toml:"name" json:"name"`
	TargetFile string   `toml:"target_file" json:"target_file"`
	Fields     []string `toml:"fields" json:"fields"`
}

// GitConfig configures syncing the journal directory to a git remote
type GitConfig struct {
	Username    string `toml:"username"`
	Repo        string `toml:"repo"`
	RemoteURL   string `toml:"remote_url"`
	Branch      string `toml:"branch"`
	AuthorEmail string `toml:"author_email"`
}

// AIConfig configures entry analysis
type AIConfig struct {
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
}

// Config represents the application configuration
type Config struct {
	// Format is the journal file dialect: org or markdown
	Format string `toml:"format"`
	// StorageDir holds the journal files. Empty means <UserConfigDir>/jot/journal
	StorageDir string `toml:"storage_dir"`
	ListenAddr string `toml:"listen_addr"`
	StaticDir  string `toml:"static_dir"`
	// WeekStartDay defines which day starts the week (monday or sunday)
	WeekStartDay string `toml:"week_start_day"`
	// Timezone is an IANA name or "Local"
	Timezone   string `toml:"timezone"`
	SessionTTL string `toml:"session_ttl"`
	QueueSize  int    `toml:"queue_size"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
	Theme      string `toml:"theme"`

	Git        GitConfig         `toml:"git"`
	AI         AIConfig          `toml:"ai"`
	EntryTypes []EntryType       `toml:"entry_types"`
	Headers    map[string]string `toml:"headers"`

	// Secrets, populated from the environment by ApplyEnv
	Password    string `toml:"-"`
	GeminiToken string `toml:"-"`
	GitHubToken string `toml:"-"`
}

// DefaultEntryTypes returns the built-in entry types.
func DefaultEntryTypes() []EntryType {
	return []EntryType{
		{
			Name:       "journal",
			TargetFile: "journal",
			Fields:     []string{"emotional_checkin", "happy_things", "stressful_things", "focus_items"},
		},
		{
			Name:       "work",
			TargetFile: "work",
			Fields:     []string{"accomplishments", "blockers", "next_steps"},
		},
	}
}

// DefaultHeaders maps analysis fields to section titles.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"emotional_checkin": "General Emotional Checkin",
		"happy_things":      "Things that made me happy",
		"stressful_things":  "Things that were stressful",
		"focus_items":       "Things I want to focus on doing for next time",
		"accomplishments":   "Accomplishments",
		"blockers":          "Blockers",
		"next_steps":        "Next steps",
	}
}

// DefaultConfig returns a Config that works without a config file.
func DefaultConfig() Config {
	return Config{
		Format:       string(journal.FormatOrg),
		ListenAddr:   ":8080",
		StaticDir:    "./frontend/build",
		WeekStartDay: "monday",
		Timezone:     "Local",
		SessionTTL:   "24h",
		QueueSize:    32,
		LogLevel:     "info",
		LogFormat:    "json",
		Git: GitConfig{
			Branch: "main",
		},
		AI: AIConfig{
			Model:   "gemini-2.5-flash",
			Timeout: "60s",
		},
		EntryTypes: DefaultEntryTypes(),
		Headers:    DefaultHeaders(),
	}
}

// GetConfigPath returns the path to the config file, creating its directory.
func GetConfigPath() (string, error) {
	appDir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, ConfigFile), nil
}

// AppDir returns <UserConfigDir>/jot, creating it if needed.
func AppDir() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, app.Name)
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return appDir, nil
}

// Load reads the config file at path and merges it over the defaults.
// Returns an error if the file is missing, is not valid TOML, or holds
// invalid values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	// entry types and headers from the file extend rather than replace
	cfg.EntryTypes = nil
	cfg.Headers = nil
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.EntryTypes = mergeEntryTypes(DefaultEntryTypes(), cfg.EntryTypes)
	cfg.Headers = mergeHeaders(DefaultHeaders(), cfg.Headers)

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file, or returns DefaultConfig if it does
// not exist. Any other error is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

func mergeEntryTypes(base, overrides []EntryType) []EntryType {
	out := append([]EntryType(nil), base...)
	for _, o := range overrides {
		replaced := false
		for i := range out {
			if strings.EqualFold(out[i].Name, o.Name) {
				out[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}

func mergeHeaders(base, overrides map[string]string) map[string]string {
	for k, v := range overrides {
		base[k] = v
	}
	return base
}

// Normalize lowercases and trims enum-like fields and fills entry type
// defaults. Call before Validate.
func (c *Config) Normalize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.WeekStartDay = strings.ToLower(strings.TrimSpace(c.WeekStartDay))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	for i := range c.EntryTypes {
		c.EntryTypes[i].Name = strings.ToLower(strings.TrimSpace(c.EntryTypes[i].Name))
		if c.EntryTypes[i].TargetFile == "" {
			c.EntryTypes[i].TargetFile = c.EntryTypes[i].Name
		}
	}
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if _, err := journal.SyntaxFor(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	if c.WeekStartDay != "monday" && c.WeekStartDay != "sunday" {
		return fmt.Errorf("invalid week_start_day %q: must be monday or sunday", c.WeekStartDay)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil || c.Timezone == "" {
		return fmt.Errorf("invalid timezone %q: must be an IANA timezone name or Local", c.Timezone)
	}
	if d, err := time.ParseDuration(c.SessionTTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid session_ttl %q: must be a positive duration such as 24h", c.SessionTTL)
	}
	if c.AI.Timeout != "" {
		if d, err := time.ParseDuration(c.AI.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("invalid ai.timeout %q: must be a positive duration", c.AI.Timeout)
		}
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("invalid queue_size %d: must be at least 1", c.QueueSize)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid log_format %q: must be json or console", c.LogFormat)
	}

	seen := map[string]bool{}
	for _, et := range c.EntryTypes {
		if et.Name == "" {
			return errors.New("invalid entry_types: name cannot be empty")
		}
		if seen[et.Name] {
			return fmt.Errorf("invalid entry_types: duplicate name %q", et.Name)
		}
		if strings.ContainsAny(et.TargetFile, `/\`) {
			return fmt.Errorf("invalid entry_types: target_file %q must be a plain file name", et.TargetFile)
		}
		seen[et.Name] = true
	}
	if !seen[DefaultEntryType] {
		return fmt.Errorf("invalid entry_types: the %q type is required", DefaultEntryType)
	}
	return nil
}

// ApplyEnv fills secrets and git overrides from getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.Password = getenv(EnvPassword)
	c.GeminiToken = getenv(EnvGeminiToken)
	c.GitHubToken = getenv(EnvGitHubToken)
	if v := getenv(EnvGitUsername); v != "" {
		c.Git.Username = v
	}
	if v := getenv(EnvGitRepo); v != "" {
		c.Git.Repo = v
	}
}

// Syntax returns the journal syntax for the configured format.
// The config must have been validated.
func (c Config) Syntax() journal.Syntax {
	s, err := journal.SyntaxFor(c.Format)
	if err != nil {
		return journal.Org
	}
	return s
}

// Location returns the configured timezone, falling back to time.Local.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SessionDuration returns SessionTTL as a duration, defaulting to 24h.
func (c Config) SessionDuration() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// AITimeout returns the analysis timeout, defaulting to 60s.
func (c Config) AITimeout() time.Duration {
	d, err := time.ParseDuration(c.AI.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// EntryType returns the named entry type, or the default type when name is
// empty or unknown. The boolean reports whether name matched.
func (c Config) EntryType(name string) (EntryType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	var fallback EntryType
	for _, et := range c.EntryTypes {
		if et.Name == name {
			return et, true
		}
		if et.Name == DefaultEntryType {
			fallback = et
		}
	}
	return fallback, false
}

// Header returns the section title for field, or field itself.
func (c Config) Header(field string) string {
	if h, ok := c.Headers[field]; ok && h != "" {
		return h
	}
	return field
}

// GitEnabled reports whether git sync has everything it needs.
func (c Config) GitEnabled() bool {
	return c.Git.Username != "" && c.Git.Repo != "" && c.GitHubToken != ""
}

// GitRemoteURL returns the configured remote, or the GitHub HTTPS URL for
// username/repo.
func (c Config) GitRemoteURL() string {
	if c.Git.RemoteURL != "" {
		return c.Git.RemoteURL
	}
	return fmt.Sprintf("https://github.com/%s/%s.git", c.Git.Username, c.Git.Repo)
}

// GitAuthorEmail returns the commit author email.
func (c Config) GitAuthorEmail() string {
	if c.Git.AuthorEmail != "" {
		return c.Git.AuthorEmail
	}
	return c.Git.Username + "@users.noreply.github.com"
}

// TypeNames returns the sorted entry type names.
func (c Config) TypeNames() []string {
	names := make([]string, 0, len(c.EntryTypes))
	for _, et := range c.EntryTypes {
		names = append(names, et.Name)
	}
	sort.Strings(names)
	return names
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# jot configuration file
# All settings are optional; the values shown are the defaults.

# Journal file format: "org" or "markdown"
# format = "org"

# Directory holding the journal files (default: <config dir>/jot/journal)
# storage_dir = ""

# HTTP server settings
# listen_addr = ":8080"
# static_dir = "./frontend/build"
# session_ttl = "24h"
# queue_size = 32

# Week start day: "monday" or "sunday"
# week_start_day = "monday"

# Timezone: IANA timezone name or "Local"
# Examples: "America/New_York", "Europe/London", "Asia/Tokyo"
# timezone = "Local"

# Logging: level is debug, info, warn or error; format is json or console
# log_level = "info"
# log_format = "json"

# Terminal UI theme (bubbletint id)
# theme = "dracula"

# Git sync. Needs GITHUB_TOKEN in the environment.
# [git]
# username = ""
# repo = ""
# branch = "main"

# Entry analysis. Needs GEMINI_API_TOKEN in the environment.
# [ai]
# model = "gemini-2.5-flash"
# timeout = "60s"

# Additional entry types
# [[entry_types]]
# name = "dream"
# target_file = "dreams"
# fields = ["summary", "feelings"]

# [headers]
# summary = "Summary"
# feelings = "How it felt"
`
}
