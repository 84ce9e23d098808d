package cmddef

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// InvalidError reports a definition file that does not satisfy the schema.
type InvalidError struct {
	Path   string
	Issues []Issue
}

func (e *InvalidError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return fmt.Sprintf("invalid definition file %s: %s", e.Path, strings.Join(parts, "; "))
}

// Parse validates data against the definition schema and decodes it.
// path is used for error messages and recorded on the returned File.
func Parse(data []byte, path string) (*File, error) {
	issues, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if len(issues) > 0 {
		return nil, &InvalidError{Path: path, Issues: issues}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing definition file %s: %w", path, err)
	}
	if f.Requires != "" {
		if _, err := parseConstraint(f.Requires); err != nil {
			return nil, fmt.Errorf("definition file %s: %w", path, err)
		}
	}
	f.Path = path
	return &f, nil
}

// ParseFile reads and parses the definition file at path on fsys.
func ParseFile(fsys afero.Fs, path string) (*File, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// readFile reads the contents of a file at the given path.
func readFile(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
