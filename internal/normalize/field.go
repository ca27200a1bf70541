// Package normalize converts loosely-shaped résumé fields into ordered lists of display strings.
package normalize

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// FieldKind selects the split rules for a field.
type FieldKind string

const (
	Skills     FieldKind = "skills"
	Experience FieldKind = "experience"
	Education  FieldKind = "education"
)

var (
	skillsDelimiter = regexp.MustCompile(`[,;\n]+`)
	lineDelimiter   = regexp.MustCompile(`\n+`)
)

// Normalize returns value as an ordered list of trimmed, non-empty display strings.
//
// Strings are split (skills on commas, semicolons and newlines; everything else on
// newlines only). Lists keep their order: string items are trimmed, structured
// records are flattened with FlattenRecord. Anything unrecognised yields an empty
// list. The result never aliases value and Normalize is idempotent on its own output.
func Normalize(value any, kind FieldKind) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case string:
		return Split(v, kind)
	case []string:
		return keepNonEmpty(v)
	case []any:
		return fromList(v)
	case []map[string]any:
		out := make([]string, 0, len(v))
		for _, rec := range v {
			out = appendNonEmpty(out, FlattenRecord(rec))
		}
		return out
	case map[string]any:
		return appendNonEmpty([]string{}, FlattenRecord(v))
	case json.RawMessage:
		return fromJSON(v, kind)
	case []byte:
		return fromJSON(v, kind)
	default:
		return []string{}
	}
}

// Split breaks free-form text into items using the delimiter set for kind.
func Split(text string, kind FieldKind) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	delim := lineDelimiter
	if kind == Skills {
		delim = skillsDelimiter
	}
	return keepNonEmpty(delim.Split(text, -1))
}

// JoinForText renders items back into the editing-surface text form.
func JoinForText(items []string, kind FieldKind) string {
	if kind == Skills {
		return strings.Join(items, ", ")
	}
	return strings.Join(items, "\n")
}

func fromJSON(data []byte, kind FieldKind) []string {
	if len(data) == 0 {
		return []string{}
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return []string{}
	}
	// Scalars other than strings carry nothing displayable at field level.
	switch decoded.(type) {
	case string, []any, map[string]any:
		return Normalize(decoded, kind)
	}
	return []string{}
}

func fromList(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case nil:
			continue
		case string:
			out = appendNonEmpty(out, v)
		case map[string]any:
			out = appendNonEmpty(out, FlattenRecord(v))
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case json.Number:
			out = append(out, v.String())
		case bool:
			out = append(out, strconv.FormatBool(v))
		default:
			out = appendNonEmpty(out, compactJSON(v))
		}
	}
	return out
}

func keepNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = appendNonEmpty(out, item)
	}
	return out
}

func appendNonEmpty(out []string, item string) []string {
	if item = strings.TrimSpace(item); item != "" {
		out = append(out, item)
	}
	return out
}
