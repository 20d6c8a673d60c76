// Package request turns logical GitLab API operations into HTTP request
// descriptors. It performs no I/O.
package request

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// ErrInvalidArgument is returned when a required identifier or positional
// argument is missing. No request is built in that case.
var ErrInvalidArgument = errors.New("invalid argument")

// Request is a fully specified HTTP request descriptor ready to hand to a
// transport.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   url.Values
	// Files maps multipart field names to local file paths.
	Files map[string]string
}

// New creates a request descriptor. Params become the query string for GET
// and DELETE and the body for every other method.
func New(method, path string, params url.Values) *Request {
	if params == nil {
		params = url.Values{}
	}

	r := &Request{
		Method: method,
		Path:   path,
	}

	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		r.Query = params
	default:
		r.Body = params
	}

	return r
}

// Params returns the parameter set carried by the request, whichever side of
// the wire it travels on.
func (r *Request) Params() url.Values {
	if r.Body != nil {
		return r.Body
	}

	return r.Query
}

// String renders the descriptor deterministically. Two descriptors built from
// the same arguments render identically.
func (r *Request) String() string {
	var sb strings.Builder

	sb.WriteString(r.Method)
	sb.WriteString(" ")
	sb.WriteString(r.Path)

	if len(r.Query) > 0 {
		sb.WriteString("?")
		sb.WriteString(r.Query.Encode())
	}

	if len(r.Body) > 0 {
		sb.WriteString(" body=")
		sb.WriteString(r.Body.Encode())
	}

	if len(r.Files) > 0 {
		fields := make([]string, 0, len(r.Files))
		for field := range r.Files {
			fields = append(fields, field)
		}

		sort.Strings(fields)

		for _, field := range fields {
			sb.WriteString(fmt.Sprintf(" file[%s]=%s", field, r.Files[field]))
		}
	}

	return sb.String()
}

// Required returns ErrInvalidArgument when value is empty.
func Required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
	}

	return nil
}
