// Package query composes WITH ... SELECT statements from ordered named
// subqueries. Fragments are opaque SQL; only aliases are validated here,
// everything else surfaces as a warehouse error on execution.
package query

import (
	"fmt"
	"strings"

	"snowreport/pkg/errors"
)

// Fragment is a named subquery usable by later fragments in the same plan.
type Fragment struct {
	Alias string `yaml:"alias"`
	Body  string `yaml:"body"`
}

// BuildFragment renders a single fragment as "ALIAS AS (body)".
func BuildFragment(f Fragment) (string, error) {
	if strings.TrimSpace(f.Alias) == "" {
		return "", errors.InvalidArgument("Fragment alias must not be empty")
	}
	if strings.TrimSpace(f.Body) == "" {
		return "", errors.InvalidArgument("Fragment body must not be empty").
			WithContext("alias", f.Alias)
	}
	return fmt.Sprintf("%s AS (%s)", f.Alias, f.Body), nil
}

// BuildSequence joins fragments with commas. Aliases must be unique within
// the sequence; duplicates are rejected here rather than left for the
// warehouse to report as a compilation error.
func BuildSequence(frags []Fragment) (string, error) {
	if len(frags) == 0 {
		return "", errors.InvalidArgument("Fragment list must not be empty")
	}

	seen := make(map[string]struct{}, len(frags))
	parts := make([]string, 0, len(frags))

	for i, f := range frags {
		part, err := BuildFragment(f)
		if err != nil {
			if appErr, ok := err.(*errors.AppError); ok {
				return "", appErr.WithContext("fragment_index", i)
			}
			return "", err
		}

		key := strings.ToUpper(strings.TrimSpace(f.Alias))
		if _, dup := seen[key]; dup {
			return "", errors.InvalidArgument(fmt.Sprintf("Duplicate fragment alias %q", f.Alias)).
				WithContext("fragment_index", i)
		}
		seen[key] = struct{}{}

		parts = append(parts, part)
	}

	return strings.Join(parts, ","), nil
}

// BuildCTE stitches fragments and the terminal query into one statement:
// "WITH <sequence> <final>;".
func BuildCTE(frags []Fragment, final string) (string, error) {
	if strings.TrimSpace(final) == "" {
		return "", errors.InvalidArgument("Final query must not be empty")
	}

	seq, err := BuildSequence(frags)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("WITH %s %s;", seq, final), nil
}
