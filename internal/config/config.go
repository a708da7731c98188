package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/nao1215/phishscore/internal/database"
	"github.com/nao1215/phishscore/internal/log"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "phishscore"

	// DefaultBatchSize of 10 concurrent scans. Scoring is CPU-bound and
	// fast, so this mostly bounds SQLite write contention.
	DefaultBatchSize = 10

	// DefaultAddr is the HTTP listen address, the port the API has always
	// used.
	DefaultAddr = ":5000"

	// DefaultModelDir is where classifier artifacts are looked up: the
	// working directory, next to where they are usually exported.
	DefaultModelDir = "."

	// DefaultLogFormat is the server log format.
	DefaultLogFormat = log.FormatText
)

// Environment variables read by ApplyEnv.
const (
	// EnvDB names the SQLite database file.
	EnvDB = "PS_DB"

	// EnvModelDir names the classifier artifact directory.
	EnvModelDir = "PS_MODEL_DIR"
)

// Config holds all configuration options for phishscore.
// This struct is designed to be populated from defaults, the config file,
// the environment and CLI flags, and then passed through the application
// via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable.
type Config struct {
	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// BatchSize is the number of concurrent scans when processing many URLs.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .phishscore in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Targets is the list of URLs to scan.
	Targets []string

	// DBDir is the directory holding the SQLite database.
	// Defaults to the XDG data directory (~/.local/share/phishscore on Linux).
	DBDir string

	// DBFile, when set, is the full database path and takes precedence
	// over DBDir. Populated from PS_DB.
	DBFile string

	// SaveToDB indicates whether scan results are appended to the database.
	SaveToDB bool

	// ModelDir is the directory containing model.json and vectorizer.json.
	ModelDir string

	// Addr is the HTTP listen address for serve.
	Addr string

	// AllowedOrigins are the CORS origins accepted by the HTTP API.
	AllowedOrigins []string

	// LogFormat is the server log format: text, json or pretty.
	LogFormat string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		DBDir:          XDGDataDir(),
		SaveToDB:       true,
		ModelDir:       DefaultModelDir,
		Addr:           DefaultAddr,
		AllowedOrigins: []string{"*"},
		LogFormat:      DefaultLogFormat,
	}
}

// XDGDataDir returns the XDG data directory for phishscore.
// On Linux: ~/.local/share/phishscore
// On macOS: ~/Library/Application Support/phishscore
// On Windows: %LOCALAPPDATA%\phishscore
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for phishscore.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DBPath returns the database file to open.
func (c *Config) DBPath() string {
	if c.DBFile != "" {
		return c.DBFile
	}
	return filepath.Join(c.DBDir, database.DefaultDBFile)
}

// Validate checks the settings shared by every command.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	switch strings.ToLower(c.LogFormat) {
	case "", log.FormatText, log.FormatJSON, log.FormatPretty:
	default:
		return ErrInvalidLogFormat
	}

	return nil
}

// ValidateScan checks the configuration of the scan command.
func (c *Config) ValidateScan() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	return c.Validate()
}

// ValidateServe checks the configuration of the serve command.
func (c *Config) ValidateServe() error {
	if strings.TrimSpace(c.Addr) == "" {
		return ErrEmptyAddr
	}
	return c.Validate()
}
