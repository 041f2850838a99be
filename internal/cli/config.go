package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"

	semver "github.com/Masterminds/semver/v3"
	"github.com/naoina/toml"
)

// ConfigFileName is the project configuration file looked up by the driver.
const ConfigFileName = "murust.toml"

// Colour modes accepted by Config.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the driver configuration read from murust.toml.
type Config struct {
	// Requires is a semver constraint the compiler version must satisfy.
	Requires  string `toml:",omitempty"`
	Color     string
	MaxErrors int
	Verbose   bool

	// IgnoreCodes silences diagnostics with these codes, e.g. "W0001".
	IgnoreCodes      []string `toml:",omitempty"`
	WarningsAsErrors bool
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

var diagnosticCode = regexp.MustCompile(`^[EW][0-9]{4}$`)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Color:     ColorAuto,
		MaxErrors: 50,
	}
}

// LoadConfig loads configuration from file on top of the defaults. A
// missing file is not an error.
func LoadConfig(file string) (Config, error) {
	cfg := DefaultConfig()
	if file == "" {
		return cfg, nil
	}

	f, err := os.Open(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	if err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate checks field values that the decoder cannot.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid Color %q, want %s, %s or %s", c.Color, ColorAuto, ColorAlways, ColorNever)
	}
	if c.MaxErrors < 0 {
		return fmt.Errorf("invalid MaxErrors %d", c.MaxErrors)
	}
	for _, code := range c.IgnoreCodes {
		if !diagnosticCode.MatchString(code) {
			return fmt.Errorf("invalid IgnoreCodes entry %q", code)
		}
	}
	if c.Requires != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			return fmt.Errorf("invalid Requires %q: %w", c.Requires, err)
		}
	}
	return nil
}

// CheckVersion reports an error when version does not satisfy Requires.
func (c Config) CheckVersion(version string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("invalid Requires %q: %w", c.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid compiler version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("murustc %s does not satisfy required version %s", version, c.Requires)
	}
	return nil
}
