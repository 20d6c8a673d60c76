package gitlab

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
)

// Response is the decoded GitLab reply, passed through to the caller.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
	RequestID  string
	Pagination Pagination
}

// Pagination mirrors the X-* pagination headers GitLab sets on list
// endpoints. Zero means the header was absent.
type Pagination struct {
	Page       int
	PerPage    int
	NextPage   int
	PrevPage   int
	Total      int
	TotalPages int
}

// Decode unmarshals the body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}

	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func newResponse(status int, header http.Header, body []byte, requestID string) *Response {
	return &Response{
		StatusCode: status,
		Header:     header,
		Body:       json.RawMessage(body),
		RequestID:  requestID,
		Pagination: Pagination{
			Page:       headerInt(header, "X-Page"),
			PerPage:    headerInt(header, "X-Per-Page"),
			NextPage:   headerInt(header, "X-Next-Page"),
			PrevPage:   headerInt(header, "X-Prev-Page"),
			Total:      headerInt(header, "X-Total"),
			TotalPages: headerInt(header, "X-Total-Pages"),
		},
	}
}

func headerInt(header http.Header, key string) int {
	v, err := strconv.Atoi(header.Get(key))
	if err != nil {
		return 0
	}

	return v
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
