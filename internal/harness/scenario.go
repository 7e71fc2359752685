package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named list of parser conformance cases.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Cases run in order against a fresh catalog.
	Cases []Case `yaml:"cases"`
}

// Case applies one parser rule to one input.
type Case struct {
	// Rule is one of type_def, ident, field or field_list.
	Rule string `yaml:"rule"`

	// Input is the exact text handed to the rule. May be empty.
	Input string `yaml:"input"`

	Expect Expect `yaml:"expect"`
}

// Expect is the outcome a case must produce.
//
// Which keys apply depends on the rule:
//   - ident: name
//   - field: name and type (an absent type means the field must be untyped)
//   - field_list: fields
//   - type_def: name and fields
//
// Remaining is checked for every rule when present.
type Expect struct {
	// Fail requires the rule to report no match.
	Fail bool `yaml:"fail,omitempty"`

	Name   string          `yaml:"name,omitempty"`
	Type   *string         `yaml:"type,omitempty"`
	Fields []ExpectedField `yaml:"fields,omitempty"`

	// Remaining is the unconsumed input. Nil skips the check.
	Remaining *string `yaml:"remaining,omitempty"`
}

// ExpectedField is one entry of Expect.Fields.
type ExpectedField struct {
	Name string  `yaml:"name"`
	Type *string `yaml:"type,omitempty"`
}

// Rule names accepted in Case.Rule.
const (
	RuleTypeDef   = "type_def"
	RuleIdent     = "ident"
	RuleField     = "field"
	RuleFieldList = "field_list"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario from YAML bytes.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		switch c.Rule {
		case RuleTypeDef, RuleIdent, RuleField:
		case RuleFieldList:
			if c.Expect.Fail {
				return fmt.Errorf("cases[%d]: field_list never fails", i)
			}
		case "":
			return fmt.Errorf("cases[%d]: rule is required", i)
		default:
			return fmt.Errorf("cases[%d]: unknown rule %q", i, c.Rule)
		}
		for j, f := range c.Expect.Fields {
			if f.Name == "" {
				return fmt.Errorf("cases[%d].expect.fields[%d]: name is required", i, j)
			}
		}
	}

	return nil
}
