package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseID keeps numeric identifiers numeric so they are validated as IDs;
// anything else is a namespace path.
func parseID(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}

	return s
}

// parseParams turns repeated key=value flags into a parameter bag. A key given
// more than once becomes an array.
func parseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	params := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}

		switch prev := params[key].(type) {
		case nil:
			params[key] = value
		case string:
			params[key] = []string{prev, value}
		case []string:
			params[key] = append(prev, value)
		}
	}

	return params, nil
}
