// Package parser decodes scenario documents from YAML, JSON, or TOML and
// supports ${VAR} / $VAR substitution before decoding.
package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jihwankim/chaos-harness/pkg/scenario"
)

// Format is the document encoding a scenario file is written in.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// tomlDocument matches the original source's top-level [scenario] wrapper.
type tomlDocument struct {
	Scenario scenario.Scenario `toml:"scenario"`
}

// Parser parses scenario documents with variable substitution.
type Parser struct {
	Variables map[string]string
}

func New(variables map[string]string) *Parser {
	if variables == nil {
		variables = make(map[string]string)
	}
	return &Parser{Variables: variables}
}

// ParseFile parses a scenario from disk, inferring its format from the
// file extension (.yaml/.yml, .json, .toml).
func (p *Parser) ParseFile(path string) (*scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return p.Parse(data, formatFromExt(path))
}

func formatFromExt(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Parse decodes a scenario document in the given format after applying
// variable substitution.
func (p *Parser) Parse(data []byte, format Format) (*scenario.Scenario, error) {
	substituted := p.substituteVariables(string(data))

	var s scenario.Scenario
	switch format {
	case FormatJSON:
		if err := json.Unmarshal([]byte(substituted), &s); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatTOML:
		var doc tomlDocument
		if _, err := toml.Decode(substituted, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		s = doc.Scenario
	default:
		if err := yaml.Unmarshal([]byte(substituted), &s); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteVariables replaces ${VAR} and $VAR, preferring parser-local
// variables over the process environment, leaving unknown names untouched.
func (p *Parser) substituteVariables(content string) string {
	return varPattern.ReplaceAllStringFunc(content, func(match string) string {
		var name string
		if strings.HasPrefix(match, "${") {
			name = match[2 : len(match)-1]
		} else {
			name = match[1:]
		}
		if val, ok := p.Variables[name]; ok {
			return val
		}
		if val := os.Getenv(name); val != "" {
			return val
		}
		return match
	})
}

func (p *Parser) SetVariable(key, value string) { p.Variables[key] = value }

func (p *Parser) SetVariables(vars map[string]string) {
	for k, v := range vars {
		p.Variables[k] = v
	}
}

// ParseOverrides parses override strings of the form key=value.
func ParseOverrides(overrides []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid override format: %s (expected key=value)", override)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			return nil, fmt.Errorf("empty key in override: %s", override)
		}
		result[key] = value
	}
	return result, nil
}

// ApplyOverrides applies CLI overrides to a parsed scenario.
func ApplyOverrides(s *scenario.Scenario, overrides map[string]string) error {
	for key, value := range overrides {
		switch key {
		case "duration":
			d, err := parseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration override: %w", err)
			}
			s.Duration = d
		case "ramp_up":
			d, err := parseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid ramp_up override: %w", err)
			}
			s.RampUp = d
		default:
			return fmt.Errorf("unsupported override key: %s", key)
		}
	}
	return nil
}

func parseDuration(s string) (scenario.Duration, error) {
	var d scenario.Duration
	if err := d.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 5m, 1h, 30s)", s)
	}
	return d, nil
}
