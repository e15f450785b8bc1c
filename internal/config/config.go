package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/toaster/internal/errors"
)

const (
	// DefaultLimit is the default number of toasts kept in state.
	DefaultLimit = 1

	// DefaultRemoveDelay is the default delay between dismissal and removal.
	DefaultRemoveDelay = "5s"

	// DefaultIDs is the default ID generator.
	DefaultIDs = "counter"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "toaster"
)

// FileNames lists the config file names Load looks for, in order.
var FileNames = []string{"toaster.json", "toaster.toml", "toaster.yaml"}

// Config represents the complete toaster configuration.
type Config struct {
	// Limit is the maximum number of toasts kept in state.
	Limit int `json:"limit" toml:"limit" yaml:"limit"`

	// RemoveDelay is how long a dismissed toast stays in state before it
	// is removed, in time.ParseDuration syntax.
	RemoveDelay string `json:"removeDelay" toml:"removeDelay" yaml:"removeDelay"`

	// Duration is the default auto-dismiss delay. Empty or "0s" disables
	// auto-dismiss.
	Duration string `json:"duration,omitempty" toml:"duration,omitempty" yaml:"duration,omitempty"`

	// IDs selects the ID generator: "counter" or "uuid".
	IDs string `json:"ids" toml:"ids" yaml:"ids"`

	// Log contains logging configuration.
	Log LogConfig `json:"log" toml:"log" yaml:"log"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics" toml:"metrics" yaml:"metrics"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing" toml:"tracing" yaml:"tracing"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" toml:"level" yaml:"level"`

	// Format is text or json.
	Format string `json:"format" toml:"format" yaml:"format"`
}

// MetricsConfig contains Prometheus configuration.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace,omitempty" toml:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry configuration.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
	TracerName string `json:"tracerName,omitempty" toml:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Limit:       DefaultLimit,
		RemoveDelay: DefaultRemoveDelay,
		IDs:         DefaultIDs,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: "toaster",
		},
	}
}

// Find returns the path of the first config file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Exists checks if any config file exists in the given directory.
func Exists(dir string) bool {
	_, ok := Find(dir)
	return ok
}

// Load reads configuration from the specified directory.
// It looks for toaster.json, toaster.toml and toaster.yaml, in that order.
func Load(dir string) (*Config, error) {
	path, ok := Find(dir)
	if !ok {
		return nil, errors.New("E100").
			WithDetail("No toaster.json, toaster.toml or toaster.yaml found in " + dir).
			WithSuggestion("Run 'toaster config init' to create one")
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path. The codec is
// chosen by the file extension.
func LoadFile(path string) (*Config, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No config file at " + path).
				WithSuggestion("Run 'toaster config init' to create one")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := decode(format, data, cfg); err != nil {
		return nil, syntaxError(path, format, data, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Create writes a default config to path. It refuses to overwrite an
// existing file.
func Create(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, errors.New("E109").
			WithDetail(path + " already exists").
			WithSuggestion("Edit the existing file or remove it first")
	}
	cfg := New()
	if err := cfg.SaveTo(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, encoded by its
// extension.
func (c *Config) SaveTo(path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}

	data, err := c.Encode(format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E108").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Encode renders the configuration as json, toml or yaml.
func (c *Config) Encode(format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(c, "", "  ")
		if err == nil {
			// Add newline at end of file
			data = append(data, '\n')
		}
	case "toml":
		data, err = toml.Marshal(c)
	case "yaml":
		data, err = yaml.Marshal(c)
	default:
		return nil, errors.New("E107").WithDetail("Unknown format " + format)
	}
	if err != nil {
		return nil, errors.New("E108").Wrap(err)
	}
	return data, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Format returns the encoding of the loaded config file, or "" when the
// config was not loaded from disk.
func (c *Config) Format() string {
	if c.configPath == "" {
		return ""
	}
	format, _ := formatOf(c.configPath)
	return format
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.RemoveDelay == "" {
		c.RemoveDelay = DefaultRemoveDelay
	}
	if c.IDs == "" {
		c.IDs = DefaultIDs
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "toaster"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Limit < 1 {
		return errors.New("E102").
			WithDetail("limit is " + itoa(c.Limit) + "; it must be at least 1")
	}
	if _, err := parseDuration("removeDelay", c.RemoveDelay); err != nil {
		return err
	}
	if _, err := parseDuration("duration", c.Duration); err != nil {
		return err
	}
	switch c.IDs {
	case "counter", "uuid":
	default:
		return errors.New("E104").
			WithDetail("ids is " + quote(c.IDs)).
			WithSuggestion(`Use "counter" or "uuid"`)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("E105").WithDetail("log.level is " + quote(c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.New("E106").WithDetail("log.format is " + quote(c.Log.Format))
	}
	return nil
}

// RemoveDelayDuration returns the parsed remove delay.
// Invalid values yield the default.
func (c *Config) RemoveDelayDuration() time.Duration {
	d, err := parseDuration("removeDelay", c.RemoveDelay)
	if err != nil || c.RemoveDelay == "" {
		d, _ = time.ParseDuration(DefaultRemoveDelay)
	}
	return d
}

// DurationValue returns the parsed auto-dismiss duration, or 0 when unset
// or invalid.
func (c *Config) DurationValue() time.Duration {
	d, err := parseDuration("duration", c.Duration)
	if err != nil {
		return 0
	}
	return d
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.New("E103").
			WithDetail(field + " is " + quote(s)).
			Wrap(err)
	}
	if d < 0 {
		return 0, errors.New("E103").
			WithDetail(field + " must not be negative, got " + quote(s))
	}
	return d, nil
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}
	return "", errors.New("E107").
		WithDetail("Cannot tell the format of " + filepath.Base(path)).
		WithSuggestion("Name the file toaster.json, toaster.toml or toaster.yaml")
}

func decode(format string, data []byte, cfg *Config) error {
	switch format {
	case "json":
		return json.Unmarshal(data, cfg)
	case "toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// syntaxError converts a decoder error into E101, pointing at the offending
// line when the decoder reports one.
func syntaxError(path, format string, data []byte, err error) error {
	te := errors.New("E101").
		WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
		WithSuggestion("Check that " + filepath.Base(path) + " is valid " + strings.ToUpper(format)).
		Wrap(err)

	var (
		jsonSyntax *json.SyntaxError
		jsonType   *json.UnmarshalTypeError
		tomlDecode *toml.DecodeError
	)
	switch {
	case stderrors.As(err, &jsonSyntax):
		line, col := lineCol(data, jsonSyntax.Offset)
		te.WithLocation(path, line, col)
	case stderrors.As(err, &jsonType):
		line, col := lineCol(data, jsonType.Offset)
		te.WithLocation(path, line, col)
	case stderrors.As(err, &tomlDecode):
		line, col := tomlDecode.Position()
		te.WithLocation(path, line, col)
	}
	return te
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte{'\n'}) + 1
	col := int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}

func quote(s string) string {
	return `"` + s + `"`
}

// itoa converts int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	// Reverse
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
