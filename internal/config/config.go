// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/adaudit/internal/task"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the operator defaults file.
type Config struct {
	Version string `toml:"version" yaml:"version"`

	Connection ConnectionConfig `toml:"connection" yaml:"connection"`
	Report     ReportConfig     `toml:"report" yaml:"report"`
	Scanner    ScannerConfig    `toml:"scanner" yaml:"scanner"`
	Mail       MailConfig       `toml:"mail" yaml:"mail"`
	Engine     EngineConfig     `toml:"engine" yaml:"engine"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	License    LicenseConfig    `toml:"license" yaml:"license"`
}

// ConnectionConfig holds directory connection defaults.
type ConnectionConfig struct {
	// Server is used when neither --server nor the menu provides one.
	Server   string `toml:"server" yaml:"server"`
	Port     int    `toml:"port" yaml:"port"`
	Protocol string `toml:"protocol" yaml:"protocol"`
}

// ReportConfig holds report generation defaults.
type ReportConfig struct {
	Level    string `toml:"level" yaml:"level"`
	MaxNodes int    `toml:"max_nodes" yaml:"max_nodes"`
	MaxDepth int    `toml:"max_depth" yaml:"max_depth"`
	Encrypt  bool   `toml:"encrypt" yaml:"encrypt"`
}

// ScannerConfig holds scanner defaults.
type ScannerConfig struct {
	NullSessionLimit int `toml:"nslimit" yaml:"nslimit"`
}

// MailConfig holds mail delivery defaults. Passwords are never read from
// the file; use --smtppass.
type MailConfig struct {
	NotifyMail string `toml:"notify_mail" yaml:"notify_mail"`
	SMTPLogin  string `toml:"smtp_login" yaml:"smtp_login"`
	SMTPTLS    bool   `toml:"smtp_tls" yaml:"smtp_tls"`
}

// EngineConfig selects the task execution engine.
type EngineConfig struct {
	// Command is the external executable run once per task. Empty selects
	// the preview engine.
	Command string `toml:"command" yaml:"command"`
	WorkDir string `toml:"work_dir" yaml:"work_dir"`
}

// LoggingConfig controls the run trace.
type LoggingConfig struct {
	TraceFile string `toml:"trace_file" yaml:"trace_file"`
}

// LicenseConfig carries the license terms checked before resolution.
type LicenseConfig struct {
	Serial           string `toml:"serial" yaml:"serial"`
	EndOfSupport     string `toml:"end_of_support" yaml:"end_of_support"` // YYYY-MM-DD, empty = unlimited
	DomainLimitation string `toml:"domain_limitation" yaml:"domain_limitation"`
	CustomerNotice   string `toml:"customer_notice" yaml:"customer_notice"`
}

// EndTime returns the end of support, or the zero time when unlimited.
func (l LicenseConfig) EndTime() (time.Time, error) {
	if l.EndOfSupport == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", l.EndOfSupport)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid end_of_support %q: %w", l.EndOfSupport, err)
	}
	return t, nil
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a new Config with default values.
func Default() *Config {
	return &Config{
		Version: "1",
		Connection: ConnectionConfig{
			Protocol: task.ProtocolADWSThenLDAP.String(),
		},
		Report: ReportConfig{
			Level:    task.ExportLevelNormal.String(),
			MaxNodes: task.DefaultMaxNodes,
			MaxDepth: task.DefaultMaxDepth,
		},
		Scanner: ScannerConfig{
			NullSessionLimit: task.DefaultNullSessionLimit,
		},
		Logging: LoggingConfig{
			TraceFile: "trace.log",
		},
	}
}

// SetDefaults fills in unset values after a partial file was decoded.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Connection.Protocol == "" {
		c.Connection.Protocol = defaults.Connection.Protocol
	}
	if c.Report.Level == "" {
		c.Report.Level = defaults.Report.Level
	}
	if c.Report.MaxNodes == 0 {
		c.Report.MaxNodes = defaults.Report.MaxNodes
	}
	if c.Report.MaxDepth == 0 {
		c.Report.MaxDepth = defaults.Report.MaxDepth
	}
	if c.Scanner.NullSessionLimit == 0 {
		c.Scanner.NullSessionLimit = defaults.Scanner.NullSessionLimit
	}
	if c.Logging.TraceFile == "" {
		c.Logging.TraceFile = defaults.Logging.TraceFile
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the adaudit configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".adaudit"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: the file may carry a license serial and SMTP login.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if mode&0077 != 0 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then YAML, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathYAML} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		return LoadFromPath(path)
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format follows the file extension; TOML is the default.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := LoadYAML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load YAML config from %s: %w", path, err)
		}
	default:
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadYAML decodes a YAML file into cfg.
func LoadYAML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if _, err := task.ParseProtocol(c.Connection.Protocol); err != nil {
		errs = append(errs, ValidationError{Field: "connection.protocol", Message: err.Error()})
	}
	if c.Connection.Port < 0 || c.Connection.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "connection.port",
			Message: fmt.Sprintf("port %d out of range 0-65535", c.Connection.Port),
		})
	}
	if _, err := task.ParseExportLevel(c.Report.Level); err != nil {
		errs = append(errs, ValidationError{Field: "report.level", Message: err.Error()})
	}
	if c.Report.MaxNodes < 0 {
		errs = append(errs, ValidationError{Field: "report.max_nodes", Message: "must not be negative"})
	}
	if c.Report.MaxDepth < 0 {
		errs = append(errs, ValidationError{Field: "report.max_depth", Message: "must not be negative"})
	}
	if c.Scanner.NullSessionLimit < 0 {
		errs = append(errs, ValidationError{Field: "scanner.nslimit", Message: "must not be negative"})
	}
	if _, err := c.License.EndTime(); err != nil {
		errs = append(errs, ValidationError{Field: "license.end_of_support", Message: "expected YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - ADAUDIT_SERVER: overrides connection.server
//   - ADAUDIT_PORT: overrides connection.port (ignored when not a number)
//   - ADAUDIT_PROTOCOL: overrides connection.protocol
//   - ADAUDIT_LEVEL: overrides report.level
//   - ADAUDIT_ENGINE: overrides engine.command
//   - ADAUDIT_TRACE_FILE: overrides logging.trace_file
func (c *Config) ApplyEnvOverrides() {
	if server := os.Getenv("ADAUDIT_SERVER"); server != "" {
		c.Connection.Server = server
	}
	if port := os.Getenv("ADAUDIT_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			c.Connection.Port = n
		}
	}
	if protocol := os.Getenv("ADAUDIT_PROTOCOL"); protocol != "" {
		c.Connection.Protocol = protocol
	}
	if level := os.Getenv("ADAUDIT_LEVEL"); level != "" {
		c.Report.Level = level
	}
	if engine := os.Getenv("ADAUDIT_ENGINE"); engine != "" {
		c.Engine.Command = engine
	}
	if traceFile := os.Getenv("ADAUDIT_TRACE_FILE"); traceFile != "" {
		c.Logging.TraceFile = traceFile
	}
}

// =============================================================================
// TASK SEEDING
// =============================================================================

// Apply seeds a fresh task configuration and the collaborator settings with
// the file defaults. Command-line options and menu choices applied later
// take precedence. c must have passed Validate.
func (c *Config) Apply(cfg *task.Config, shared *task.Shared) error {
	protocol, err := task.ParseProtocol(c.Connection.Protocol)
	if err != nil {
		return err
	}
	level, err := task.ParseExportLevel(c.Report.Level)
	if err != nil {
		return err
	}

	cfg.Server = c.Connection.Server
	cfg.Port = c.Connection.Port
	cfg.ExportLevel = level
	cfg.EncryptReport = c.Report.Encrypt
	cfg.Mail.NotifyMail = c.Mail.NotifyMail
	cfg.Mail.SMTPLogin = c.Mail.SMTPLogin
	cfg.Mail.SMTPTLS = c.Mail.SMTPTLS
	cfg.LicenseSerial = c.License.Serial

	shared.Protocol = protocol
	shared.MaxNodes = c.Report.MaxNodes
	shared.MaxDepth = c.Report.MaxDepth
	shared.NullSessionLimit = c.Scanner.NullSessionLimit
	return nil
}
