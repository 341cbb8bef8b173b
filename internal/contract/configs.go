package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/fcuny/git-stats/schema"
)

// Default values for configuration.
const (
	DefaultRecencyMonths = 3
	DefaultTopN          = 3
	DefaultPrecision     = 2
	MaxResultLimit       = 10000
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DateOnlyFormat is the short form accepted for --since/--until.
const DateOnlyFormat = "2006-01-02"

// languageExtensions maps a language filter name to the file extensions it
// covers. Unknown names are rejected during validation.
var languageExtensions = map[string][]string{
	"python":     {".py", ".pyi", ".pyx"},
	"go":         {".go", ".mod"},
	"c":          {".c", ".cpp", ".h", ".hpp"},
	"javascript": {".js", ".jsx", ".ts", ".tsx"},
	"java":       {".java", ".kt", ".scala"},
	"ruby":       {".rb", ".rake"},
	"rust":       {".rs"},
	"shell":      {".sh", ".bash", ".zsh", ".fish"},
	"text":       {".md", ".rst", ".txt"},
	"config":     {".json", ".yaml", ".yml", ".toml", ".ini", ".cfg"},
	"web":        {".html", ".htm", ".css", ".scss", ".sass"},
	"sql":        {".sql"},
	"xml":        {".xml"},
}

// KnownLanguages returns the sorted list of language filter names, for error
// messages and help text.
func KnownLanguages() []string {
	names := make([]string, 0, len(languageExtensions))
	for name := range languageExtensions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Config holds the runtime configuration for one invocation.
// This struct is the final, validated form; it is treated as immutable once
// ProcessAndValidate returns.
type Config struct {
	RepoPath string
	Branch   string // checked-out branch, empty when detection fails

	// Now is the reference instant for the recency window, fixed at
	// validation time and passed explicitly through the pipeline.
	Now           time.Time
	RecencyMonths int

	Output     schema.OutputMode
	OutputFile string
	Workers    int
	Precision  int
	Detail     bool
	UseColors  bool
	Width      int // terminal width override (0 = auto-detect)

	// Stats scope.
	ResultLimit int // 0 = unbounded
	PathFilter  string
	Language    string
	Extensions  map[string]struct{} // derived from Language; empty = all
	Since       time.Time
	Until       time.Time

	// DRIs scope.
	Files []string
	TopN  int

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // please use env var as this is plaintext

	// Weights is the fixed scoring formula, constructed once here and passed
	// explicitly into the scoring engine.
	Weights schema.Weights
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Extensions != nil {
		clone.Extensions = make(map[string]struct{}, len(c.Extensions))
		for ext := range c.Extensions {
			clone.Extensions[ext] = struct{}{}
		}
	}
	if c.Files != nil {
		clone.Files = make([]string, len(c.Files))
		copy(clone.Files, c.Files)
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	RecencyPeriod    int    `mapstructure:"recency-period"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Detail           bool   `mapstructure:"detail"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from statsCmd.Flags() ---
	Limit    int    `mapstructure:"limit"`
	Path     string `mapstructure:"path"`
	Language string `mapstructure:"language"`
	Since    string `mapstructure:"since"`
	Until    string `mapstructure:"until"`

	// --- Fields from drisCmd.Flags() ---
	Files string `mapstructure:"files"`
	Top   int    `mapstructure:"top"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs and
// populates the final Config. Scope errors fail here, before any git history
// is consumed.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processStatsScope(cfg, input); err != nil {
		return err
	}
	if err := processDRIsScope(cfg, input); err != nil {
		return err
	}
	if err := resolveRepoPath(ctx, cfg, client, input); err != nil {
		return err
	}
	if err := normalizeScopeFiles(cfg); err != nil {
		return err
	}
	cfg.Now = time.Now()
	cfg.Weights = schema.DefaultWeights()
	return nil
}

// validateSimpleInputs processes and validates all non-scope fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	if input.RecencyPeriod < 1 {
		return fmt.Errorf("recency-period must be a positive number of months (received %d)", input.RecencyPeriod)
	}
	cfg.RecencyMonths = input.RecencyPeriod

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, parquet", input.Output)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	return nil
}

// processStatsScope validates the stats filters: path substring, language
// extension set, and the commit-level date range.
func processStatsScope(cfg *Config, input *ConfigRawInput) error {
	cfg.PathFilter = strings.TrimSpace(input.Path)

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	cfg.Language = strings.ToLower(strings.TrimSpace(input.Language))
	if cfg.Language != "" {
		exts, ok := languageExtensions[cfg.Language]
		if !ok {
			return fmt.Errorf("unknown language filter '%s'. known languages: %s",
				input.Language, strings.Join(KnownLanguages(), ", "))
		}
		cfg.Extensions = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			cfg.Extensions[ext] = struct{}{}
		}
	}

	var err error
	if cfg.Since, err = parseDateInput(input.Since); err != nil {
		return fmt.Errorf("invalid since date '%s': expected %s or ISO8601", input.Since, DateOnlyFormat)
	}
	if cfg.Until, err = parseDateInput(input.Until); err != nil {
		return fmt.Errorf("invalid until date '%s': expected %s or ISO8601", input.Until, DateOnlyFormat)
	}
	if !cfg.Since.IsZero() && !cfg.Until.IsZero() && cfg.Until.Before(cfg.Since) {
		return fmt.Errorf("until date (%s) cannot precede since date (%s)",
			cfg.Until.Format(DateOnlyFormat), cfg.Since.Format(DateOnlyFormat))
	}

	return nil
}

// processDRIsScope validates the explicit file list and top-N.
func processDRIsScope(cfg *Config, input *ConfigRawInput) error {
	if input.Top < 1 {
		return fmt.Errorf("top must be at least 1 (received %d)", input.Top)
	}
	cfg.TopN = input.Top

	if input.Files != "" {
		for p := range strings.SplitSeq(input.Files, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cfg.Files = append(cfg.Files, trimmed)
			}
		}
	}
	return nil
}

// RevalidateStatsScope reapplies stats scope parsing on a cloned Config for
// overrides arriving through MCP tool calls.
func RevalidateStatsScope(cfg *Config, path, language, since, until string, limit int) error {
	cfg.Extensions = nil
	input := &ConfigRawInput{Path: path, Language: language, Since: since, Until: until, Limit: limit}
	return processStatsScope(cfg, input)
}

// RevalidateFiles reapplies the expert file-list parsing on a cloned Config
// for overrides arriving through MCP tool calls.
func RevalidateFiles(cfg *Config, files string, top int) error {
	cfg.Files = nil
	input := &ConfigRawInput{Files: files, Top: top}
	if err := processDRIsScope(cfg, input); err != nil {
		return err
	}
	return normalizeScopeFiles(cfg)
}

// resolveRepoPath resolves the positional repository argument to the git root.
func resolveRepoPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, statErr := os.Stat(absSearchPath)
	gitContextPath := absSearchPath
	if statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot

	// Branch is display metadata only; a lookup failure (detached HEAD,
	// freshly initialized repo) leaves it empty rather than failing
	// validation.
	if branch, err := client.GetCurrentBranch(ctx, gitRoot); err == nil {
		cfg.Branch = strings.TrimSpace(branch)
	}
	return nil
}

// normalizeScopeFiles rewrites the dris file list the way git prints paths:
// relative to the repository root, forward slashes, no leading "./". Expert
// scoping matches paths exactly, so both sides must agree on the form.
func normalizeScopeFiles(cfg *Config) error {
	for i, p := range cfg.Files {
		norm, err := NormalizeRepoFilePath(cfg.RepoPath, p)
		if err != nil {
			return err
		}
		cfg.Files[i] = norm
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for the MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use postgres:// URL form")
		}
	}
	return nil
}

// parseDateInput accepts an empty string (zero time), a YYYY-MM-DD date, or a
// full ISO8601 timestamp.
func parseDateInput(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateOnlyFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(DateTimeFormat, s)
}
