// Package service wraps individual Casdoor actions in typed methods on top
// of the generic calls in the casdoor package.
package service

import (
	"errors"
	"fmt"

	"github.com/google/go-querystring/query"
)

// ErrNotFound is returned when Casdoor answers "ok" with no object.
var ErrNotFound = errors.New("casdoor object not found")

// params encodes a struct tagged with `url:"..."` into the flat parameter
// map the casdoor calls take. Only the first value of each key is kept.
func params(v interface{}) (map[string]string, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("could not encode query parameters: %w", err)
	}

	out := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out, nil
}
