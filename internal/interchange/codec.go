package interchange

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/joeatwork/coach/internal/entry"
)

// Format selects the document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml", or "yml".
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected json|yaml)", value)
	}
}

const schemaURL = "https://github.com/joeatwork/coach/entry.schema.json"

//go:embed schema.json
var schemaSource []byte

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("load entry schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Encode renders e in the requested format.
func Encode(e *entry.Entry, format Format) ([]byte, error) {
	doc := FromEntry(e)
	switch format {
	case JSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case YAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Decode validates data against the entry schema and converts it to an entry.
func Decode(data []byte, format Format) (*entry.Entry, error) {
	var raw any
	switch format {
	case JSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	// Normalize through JSON so YAML scalars look like JSON values to the
	// validator and the document decoder.
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var instance any
	if err := json.Unmarshal(normalized, &instance); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	schema, err := compiled()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(instance); err != nil {
		return nil, schemaError(err)
	}

	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc.Entry()
}

func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	if len(errs) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, ve.Message)
	}
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, invalid(pointerPath(ve.InstanceLocation), ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// pointerPath turns "/tasks/0/state" into "tasks[0].state".
func pointerPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "document"
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		if part != "" && strings.Trim(part, "0123456789") == "" {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
