package cmddef

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DevVersion is the version reported by builds without ldflags; it satisfies
// every constraint.
const DevVersion = "dev"

// CheckRequires reports an error when version does not satisfy the
// definition file's requires constraint.
func (f *File) CheckRequires(version string) error {
	if f.Requires == "" {
		return nil
	}
	return CheckVersion(f.Requires, version)
}

// CheckVersion reports whether version satisfies constraint. A leading "v"
// on version is tolerated.
func CheckVersion(constraint, version string) error {
	c, err := parseConstraint(constraint)
	if err != nil {
		return err
	}
	if version == "" || version == DevVersion {
		return nil
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", version, err)
	}
	if ok, errs := c.Validate(v); !ok {
		if len(errs) > 0 {
			return fmt.Errorf("version %s does not satisfy %q: %w", v, constraint, errs[0])
		}
		return fmt.Errorf("version %s does not satisfy %q", v, constraint)
	}
	return nil
}

func parseConstraint(constraint string) (*semver.Constraints, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, fmt.Errorf("invalid requires constraint %q: %w", constraint, err)
	}
	return c, nil
}
