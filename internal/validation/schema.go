// Package validation checks leaderboard snapshot files against the embedded
// JSON Schema.
package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/brain-score/scoreboard/schemas"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// snapshotSchema is the compiled JSON Schema for snapshot files.
var snapshotSchema *jsonschema.Schema

func init() {
	snapshotSchema = mustCompileSchema(schemas.SnapshotSchemaJSON, "snapshot.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateSnapshotFile validates the snapshot at path. JSON files are
// accepted as YAML.
func ValidateSnapshotFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	return ValidateSnapshotBytes(data), nil
}

// ValidateSnapshotBytes validates raw YAML or JSON bytes against the snapshot
// schema.
func ValidateSnapshotBytes(data []byte) []string {
	doc, err := ParseDocument(data)
	if err != nil {
		return []string{err.Error()}
	}
	return ValidateSnapshotDocument(doc)
}

// ValidateSnapshotDocument validates an already-decoded document.
func ValidateSnapshotDocument(doc any) []string {
	return validateAgainstSchema(snapshotSchema, doc)
}

// ParseDocument decodes YAML (or JSON) into generic JSON-compatible values.
func ParseDocument(data []byte) (any, error) {
	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return nil, fmt.Errorf("YAML parse error: %v", err)
	}
	return convertToJSONCompatible(yamlDoc), nil
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible normalizes YAML-decoded values. yaml.v3 yields
// map[string]any for string-keyed mappings but map[any]any can appear for
// other key types.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case map[any]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[fmt.Sprint(k)] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	default:
		return val
	}
}
