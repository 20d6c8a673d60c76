package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Path joins static path fragments with percent-encoded identifiers. Only
// identifier segments are encoded. The first error encountered is kept and
// returned by Build.
type Path struct {
	segments []string
	err      error
}

// NewPath starts a path from literal fragments.
func NewPath(static ...string) *Path {
	p := &Path{segments: make([]string, 0, 4)}

	return p.Static(static...)
}

// ProjectPath starts a path nested under a project: projects/{id}.
func ProjectPath(projectID any) *Path {
	return NewPath("projects").ID("project_id", projectID)
}

// Static appends literal fragments as-is.
func (p *Path) Static(static ...string) *Path {
	for _, s := range static {
		s = strings.Trim(s, "/")
		if s != "" {
			p.segments = append(p.segments, s)
		}
	}

	return p
}

// ID appends an encoded identifier. name is used in the error message when the
// identifier is missing or of an unsupported type.
func (p *Path) ID(name string, id any) *Path {
	if p.err != nil {
		return p
	}

	segment, err := EscapeID(id)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)

		return p
	}

	p.segments = append(p.segments, segment)

	return p
}

// Build returns the joined path.
func (p *Path) Build() (string, error) {
	if p.err != nil {
		return "", p.err
	}

	return strings.Join(p.segments, "/"), nil
}

// EscapeID renders an identifier as a single path segment. String
// identifiers such as "group/project" are percent-encoded so that "/" does not
// split the segment. The dot segments "." and ".." are rejected since path
// normalization would resolve them against the surrounding path.
func EscapeID(id any) (string, error) {
	v, err := FormatID(id)
	if err != nil {
		return "", err
	}

	if v == "." || v == ".." {
		return "", fmt.Errorf("%w: identifier %q is a dot segment", ErrInvalidArgument, v)
	}

	return url.PathEscape(v), nil
}

// FormatID renders an identifier in its unescaped parameter form. Numeric IDs
// must be positive and strings non-empty.
func FormatID(id any) (string, error) {
	switch v := id.(type) {
	case nil:
		return "", fmt.Errorf("%w: identifier is required", ErrInvalidArgument)
	case string:
		if v == "" {
			return "", fmt.Errorf("%w: identifier is required", ErrInvalidArgument)
		}

		return v, nil
	case int:
		return positiveID(int64(v))
	case int32:
		return positiveID(int64(v))
	case int64:
		return positiveID(v)
	case uint:
		return positiveUintID(uint64(v))
	case uint32:
		return positiveUintID(uint64(v))
	case uint64:
		return positiveUintID(v)
	case fmt.Stringer:
		return FormatID(v.String())
	default:
		return "", fmt.Errorf("%w: unsupported identifier type %T", ErrInvalidArgument, id)
	}
}

func positiveID(v int64) (string, error) {
	if v <= 0 {
		return "", fmt.Errorf("%w: identifier must be positive, got %d", ErrInvalidArgument, v)
	}

	return strconv.FormatInt(v, 10), nil
}

func positiveUintID(v uint64) (string, error) {
	if v == 0 {
		return "", fmt.Errorf("%w: identifier must be positive, got 0", ErrInvalidArgument)
	}

	return strconv.FormatUint(v, 10), nil
}
