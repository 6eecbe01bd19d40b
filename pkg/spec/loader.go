package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IOError reports that a spec file could not be read at all. The
// aggregation layer attributes these to the draft bucket, so callers
// must be able to tell them apart from parse failures.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("read spec %s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports that a spec file was readable but is not a valid
// spec document: malformed YAML, an unknown status value, or a step
// that is not a single-key mapping.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse spec %s: %v", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Load reads a YAML spec file and returns the parsed Spec with
// defaults applied. Read failures come back as *IOError and malformed
// content as *ParseError; it has no side effects beyond reading path.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, &IOError{Path: path, Err: err}
	}

	s, err := Parse(data)
	if err != nil {
		return Spec{}, &ParseError{Path: path, Err: err}
	}
	return s, nil
}

// Parse decodes YAML data into a Spec. A missing status defaults to
// draft; an unknown status is rejected by Status.UnmarshalYAML.
func Parse(data []byte) (Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Spec{}, err
	}

	if s.Status == "" {
		s.Status = StatusDraft
	}
	return s, nil
}
