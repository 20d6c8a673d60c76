package request

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/google/go-querystring/query"
)

// List defaults applied when the caller leaves a field unset.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	DefaultOrderBy = "created_at"
	DefaultSort    = "asc"
)

// ListOptions selects a page of a list endpoint.
type ListOptions struct {
	Page    *int `url:"page,omitempty"`
	PerPage *int `url:"per_page,omitempty"`
}

// WithDefaults fills every unset field independently.
func (o ListOptions) WithDefaults() ListOptions {
	if o.Page == nil {
		o.Page = Ptr(DefaultPage)
	}

	if o.PerPage == nil {
		o.PerPage = Ptr(DefaultPerPage)
	}

	return o
}

// SortOptions orders a list endpoint. Values are passed through unchecked;
// the server rejects unknown fields.
type SortOptions struct {
	OrderBy *string `url:"order_by,omitempty"`
	Sort    *string `url:"sort,omitempty"`
}

// WithDefaults fills every unset field independently.
func (o SortOptions) WithDefaults() SortOptions {
	if o.OrderBy == nil {
		o.OrderBy = Ptr(DefaultOrderBy)
	}

	if o.Sort == nil {
		o.Sort = Ptr(DefaultSort)
	}

	return o
}

// Ptr returns a pointer to v. Option structs use pointers so that an unset
// field can be told apart from a zero value.
func Ptr[T any](v T) *T {
	return &v
}

// Encode builds a parameter set. The free-form extra bag is applied first and
// the typed opts struct second, so typed fields win on key collisions. Unset
// fields and nil bag values are dropped.
func Encode(opts any, extra map[string]any) (url.Values, error) {
	values := url.Values{}

	Merge(values, extra)

	if opts == nil {
		return values, nil
	}

	typed, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("encoding parameters: %w", err)
	}

	for key := range typed {
		deleteBase(values, key)
	}

	for key, vals := range typed {
		values[key] = vals
	}

	return values, nil
}

// Merge adds the bag entries to dst without overriding names dst already
// holds, in any of their key, key[] or key[sub] forms. Unknown keys pass
// through.
func Merge(dst url.Values, extra map[string]any) {
	taken := make(map[string]struct{}, len(dst))
	for key := range dst {
		taken[baseName(key)] = struct{}{}
	}

	for key, value := range extra {
		if key == "" {
			continue
		}

		if _, ok := taken[baseName(key)]; ok {
			continue
		}

		addValue(dst, key, value)
	}
}

// Set sets key to value, first dropping every entry sharing its base name so
// that a bag entry such as key[] cannot travel next to it.
func Set(dst url.Values, key, value string) {
	deleteBase(dst, key)
	dst.Set(key, value)
}

// baseName strips any bracket suffix: "state[]" and "state[x]" are "state".
func baseName(key string) string {
	if i := strings.IndexByte(key, '['); i > 0 {
		return key[:i]
	}

	return key
}

func deleteBase(dst url.Values, key string) {
	base := baseName(key)

	for k := range dst {
		if baseName(k) == base {
			delete(dst, k)
		}
	}
}

// addValue flattens scalars, slices (key[]) and maps (key[sub]) into dst.
func addValue(dst url.Values, key string, value any) {
	if value == nil {
		return
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return
		}

		addValue(dst, key, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return
		}

		arrayKey := key
		if !strings.HasSuffix(arrayKey, "[]") {
			arrayKey += "[]"
		}

		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			for elem.Kind() == reflect.Pointer || elem.Kind() == reflect.Interface {
				if elem.IsNil() {
					break
				}

				elem = elem.Elem()
			}

			if (elem.Kind() == reflect.Pointer || elem.Kind() == reflect.Interface) && elem.IsNil() {
				continue
			}

			dst.Add(arrayKey, fmt.Sprint(elem.Interface()))
		}
	case reflect.Map:
		if rv.IsNil() {
			return
		}

		iter := rv.MapRange()
		for iter.Next() {
			addValue(dst, fmt.Sprintf("%s[%v]", key, iter.Key().Interface()), iter.Value().Interface())
		}
	default:
		dst.Set(key, fmt.Sprint(value))
	}
}
