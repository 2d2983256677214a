package quiz

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultQuiz []byte

const definitionSchemaURL = "schema://quiz-definition.json"

// definitionSchema describes a valid quiz file. Every question needs at
// least two distinct, non-empty options.
var definitionSchema = map[string]any{
	"type":     "object",
	"required": []any{"sections"},
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"sections": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"title", "questions"},
				"properties": map[string]any{
					"title": map[string]any{"type": "string", "minLength": 1},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"text", "options"},
							"properties": map[string]any{
								"text": map[string]any{"type": "string", "minLength": 1},
								"options": map[string]any{
									"type":        "array",
									"minItems":    2,
									"uniqueItems": true,
									"items":       map[string]any{"type": "string", "minLength": 1},
								},
							},
							"additionalProperties": false,
						},
					},
				},
				"additionalProperties": false,
			},
		},
	},
	"additionalProperties": false,
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(definitionSchemaURL, definitionSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(definitionSchemaURL)
	})
	return compiled, compileErr
}

// Default returns the built-in career quiz.
func Default() (*Definition, error) {
	return Parse(defaultQuiz)
}

// LoadFile reads a quiz definition from a YAML file.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML quiz definition.
func Parse(data []byte) (*Definition, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode quiz yaml: %w", err)
	}

	// The validator wants JSON-model values, so round-trip through JSON.
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert quiz to json: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonBytes))
	if err != nil {
		return nil, fmt.Errorf("parse quiz json: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile quiz schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid quiz definition: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode quiz definition: %w", err)
	}
	return &def, nil
}

// MustDefault is like Default but panics if the embedded quiz is invalid.
func MustDefault() *Definition {
	def, err := Default()
	if err != nil {
		panic(err)
	}
	return def
}
