package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// maxPages caps continuation-link following so a misbehaving registry cannot
// keep the gateway walking forever.
const maxPages = 50

// listEnvelope is the registry's paginated collection shape.
type listEnvelope struct {
	Count    int             `json:"count"`
	Next     string          `json:"next"`
	Previous string          `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

// collect fetches a collection endpoint and returns the complete result set,
// following continuation links when the registry paginates. Both the bare
// array and the enveloped shape decode transparently.
func collect[T any](ctx context.Context, c *Client, path string, query map[string]string) ([]T, error) {
	items := []T{}
	url, q := path, query

	for page := 0; ; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("collect %s: more than %d pages", path, maxPages)
		}

		body, err := c.get(ctx, url, q)
		if err != nil {
			return nil, err
		}

		batch, next, err := decodePage[T](body)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", path, err)
		}
		items = append(items, batch...)

		if next == "" {
			return items, nil
		}
		// Continuation links are absolute; resty passes them through untouched.
		url, q = next, nil
	}
}

// decodePage decodes one response body into items plus the continuation link,
// normalising the two collection shapes the registry emits.
func decodePage[T any](body []byte) ([]T, string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, "", err
		}
		return out, "", nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, "", err
	}
	if env.Results == nil {
		return []T{}, "", nil
	}
	var out []T
	if err := json.Unmarshal(env.Results, &out); err != nil {
		return nil, "", err
	}
	return out, env.Next, nil
}

func decodeOne[T any](body []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
