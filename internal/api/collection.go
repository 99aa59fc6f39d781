package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CollectionKind records where the entries of a list response were found.
type CollectionKind int

const (
	CollectionEmpty CollectionKind = iota
	CollectionBare
	CollectionNamed
)

func (k CollectionKind) String() string {
	switch k {
	case CollectionBare:
		return "bare"
	case CollectionNamed:
		return "named"
	default:
		return "empty"
	}
}

// Collection is a list response resolved to its entries. Key is set only for
// CollectionNamed.
type Collection struct {
	Kind    CollectionKind
	Key     string
	Entries []any
}

var (
	pipelineKeys       = []string{"pipelines", "items", "data", "results"}
	filterKeys         = []string{"filters", "items", "data", "results"}
	transformationKeys = []string{"transformations", "items", "data"}
)

// parseCollection accepts either a top-level array or an object holding the
// array under the first present key in keys.
func parseCollection(payload json.RawMessage, keys []string) (Collection, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return Collection{Kind: CollectionEmpty}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return Collection{}, fmt.Errorf("decode collection: %w", err)
	}

	switch v := decoded.(type) {
	case []any:
		return Collection{Kind: CollectionBare, Entries: v}, nil
	case map[string]any:
		for _, key := range keys {
			candidate, ok := v[key]
			if !ok || candidate == nil {
				continue
			}
			if entries, ok := candidate.([]any); ok {
				return Collection{Kind: CollectionNamed, Key: key, Entries: entries}, nil
			}
			// the first present key wins even when it is not an array
			return Collection{Kind: CollectionEmpty}, nil
		}
	}
	return Collection{Kind: CollectionEmpty}, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := asString(m[key]); ok {
			return s
		}
	}
	return ""
}

func asStringArray(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

func firstBool(m map[string]any, keys ...string) *bool {
	for _, key := range keys {
		if b, ok := m[key].(bool); ok {
			return &b
		}
	}
	return nil
}

func entryObject(kind string, index int, entry any) (map[string]any, string, error) {
	obj, ok := entry.(map[string]any)
	if !ok {
		return nil, "", fmt.Errorf("%s payload at index %d is not an object", kind, index)
	}
	name := firstString(obj, "name", "id")
	if name == "" {
		return nil, "", fmt.Errorf("%s payload at index %d missing name", kind, index)
	}
	return obj, name, nil
}
