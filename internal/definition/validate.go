package definition

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// Schema returns the embedded JSON Schema document.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

// Validate checks a decoded definition against the schema. Every failing
// field is reported.
func Validate(def *Definition) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	// The validator works on generic JSON values.
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal definition: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
		}
		var causes []error
		collectSchemaErrors(ve, &causes)
		return fmt.Errorf("%w:\n%w", ErrInvalidDefinition, errors.Join(causes...))
	}
	return nil
}

// collectSchemaErrors walks the cause tree and keeps the leaves.
func collectSchemaErrors(ve *jsonschema.ValidationError, out *[]error) {
	if len(ve.Causes) == 0 {
		*out = append(*out, fmt.Errorf("%s: %s", pointerToPath(ve.InstanceLocation), ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, out)
	}
}

// pointerToPath turns "/groups/0/tasks/2/start" into "groups[0].tasks[2].start".
func pointerToPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return "(root)"
	}
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		part = strings.NewReplacer("~1", "/", "~0", "~").Replace(part)
		if isIndex(part) {
			fmt.Fprintf(&b, "[%s]", part)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
