package cmddef

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/definition.schema.json
var schemaJSON []byte

const schemaURL = "definition.schema.json"

var (
	schemaOnce = sync.OnceValues(compileSchema)
	printer    = message.NewPrinter(language.English)
)

// Issue is one schema violation in a definition file.
type Issue struct {
	Path    string // JSON pointer into the document, e.g. /commands/a/steps/0/when
	Keyword string
	Message string
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("decoding definition schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("registering definition schema: %w", err)
	}
	return c.Compile(schemaURL)
}

// Validate checks raw YAML against the definition schema and returns the
// violations found; an empty result means the document is valid. The error
// is reserved for malformed YAML.
func Validate(data []byte) ([]Issue, error) {
	schema, err := schemaOnce()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	// The validator wants JSON-typed values (json.Number, map[string]any).
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	err = schema.Validate(inst)
	var ve *jsonschema.ValidationError
	switch {
	case err == nil:
		return nil, nil
	case !errors.As(err, &ve):
		return nil, err
	}

	issues := leaves(ve, nil)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}, nil
	}
	slices.SortStableFunc(issues, func(a, b Issue) int { return strings.Compare(a.Path, b.Path) })
	return slices.Compact(issues), nil
}

// ValidateFile validates the definition file at path on fsys.
func ValidateFile(fsys afero.Fs, path string) ([]Issue, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// leaves flattens the error tree into its innermost causes. Wrapper keywords
// only repeat what their causes say and are dropped.
func leaves(ve *jsonschema.ValidationError, acc []Issue) []Issue {
	for _, cause := range ve.Causes {
		acc = leaves(cause, acc)
	}
	if len(ve.Causes) > 0 || ve.ErrorKind == nil {
		return acc
	}

	kw := ve.ErrorKind.KeywordPath()
	if len(kw) == 0 || kw[len(kw)-1] == "$ref" || kw[len(kw)-1] == "allOf" {
		return acc
	}

	var path string
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	return append(acc, Issue{
		Path:    path,
		Keyword: kw[len(kw)-1],
		Message: ve.ErrorKind.LocalizedString(printer),
	})
}
