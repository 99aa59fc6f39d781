// Package jsonview formats API payloads for people: indentation, JMESPath
// filtering, terminal syntax highlighting and line capping. It backs both
// the CLI output and the dashboard's JSON panes.
package jsonview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/jmespath/go-jmespath"
)

const indent = "  "

// Pretty renders v as indented JSON.
func Pretty(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return "", fmt.Errorf("failed to format JSON: %w", err)
	}
	return string(data), nil
}

// PrettyRaw re-indents an encoded payload. An empty payload renders as null.
func PrettyRaw(raw json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "null", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", indent); err != nil {
		return "", fmt.Errorf("failed to format JSON: %w", err)
	}
	return buf.String(), nil
}

// Query applies a JMESPath expression to raw and returns the encoded result.
func Query(raw json.RawMessage, expression string) (json.RawMessage, error) {
	compiled, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expression, err)
	}

	var data any
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("response is not valid JSON: %w", err)
		}
	}

	result, err := compiled.Search(data)
	if err != nil {
		return nil, fmt.Errorf("query %q failed: %w", expression, err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query result: %w", err)
	}
	return out, nil
}

// StyleFor picks the chroma style matching a dashboard theme.
func StyleFor(theme string) string {
	switch theme {
	case "light":
		return "github"
	case "mono":
		return "bw"
	default:
		return "monokai"
	}
}

// Highlight colors JSON source for a 256-color terminal. On failure the
// source is returned unchanged.
func Highlight(src, style string) string {
	var buf strings.Builder
	if err := quick.Highlight(&buf, src, "json", "terminal256", style); err != nil {
		return src
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Truncate keeps the first maxLines lines of text and notes how many were
// dropped.
func Truncate(text string, maxLines int) string {
	if maxLines <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	kept := strings.Join(lines[:maxLines], "\n")
	return fmt.Sprintf("%s\n… (%d more lines)", kept, len(lines)-maxLines)
}
