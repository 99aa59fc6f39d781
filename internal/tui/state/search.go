package state

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Matches returns the ascending indices of items whose serialized document
// contains query, case-insensitively. An empty query matches nothing.
func Matches(items []Item, query string) []int {
	if query == "" {
		return nil
	}
	needle := strings.ToLower(query)
	var matches []int
	for i, item := range items {
		if item == nil {
			continue
		}
		if strings.Contains(Serialize(item.Document()), needle) {
			matches = append(matches, i)
		}
	}
	return matches
}

// Serialize flattens v into the lower-cased text searched by Matches:
// scalars as-is, arrays space-joined, objects as "key:value" pairs ordered by
// lowercased key.
func Serialize(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ToLower(v)
	case json.Number:
		return strings.ToLower(v.String())
	case bool, int, int64, int32, uint, uint64, uint32, float64, float32:
		return strings.ToLower(fmt.Sprint(v))
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = Serialize(e)
		}
		return strings.Join(parts, " ")
	case []string:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = strings.ToLower(e)
		}
		return strings.Join(parts, " ")
	case map[string]any:
		type pair struct{ key, value string }
		pairs := make([]pair, 0, len(v))
		for k, e := range v {
			pairs = append(pairs, pair{strings.ToLower(k), Serialize(e)})
		}
		slices.SortFunc(pairs, func(a, b pair) int {
			if c := strings.Compare(a.key, b.key); c != 0 {
				return c
			}
			return strings.Compare(a.value, b.value)
		})
		parts := make([]string, len(pairs))
		for i, p := range pairs {
			parts[i] = p.key + ":" + p.value
		}
		return strings.Join(parts, " ")
	default:
		// structs and typed maps go through their JSON form
		data, err := json.Marshal(v)
		if err != nil {
			return strings.ToLower(fmt.Sprint(v))
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return ""
		}
		return Serialize(generic)
	}
}
