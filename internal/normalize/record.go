package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlattenRecord turns one structured entry into a single display line.
//
// Work records (title or company present) become
// "{title} at {company} ({startDate} - {endDate}): {description}" and education
// records (degree or institution present) become
// "{degree} from {institution} ({startDate} - {endDate}) (GPA: {gpa})". Empty
// parts are left out together with their punctuation. Other records fall back to
// compact JSON; an empty record yields "".
func FlattenRecord(rec map[string]any) string {
	if len(rec) == 0 {
		return ""
	}

	title, company := field(rec, "title"), field(rec, "company")
	if title != "" || company != "" {
		line := joinNonEmpty(" at ", title, company)
		line = appendPart(line, dateRange(rec))
		if desc := field(rec, "description"); desc != "" {
			line += ": " + desc
		}
		return line
	}

	degree, institution := field(rec, "degree"), field(rec, "institution")
	if degree != "" || institution != "" {
		line := joinNonEmpty(" from ", degree, institution)
		line = appendPart(line, dateRange(rec))
		if gpa := field(rec, "gpa"); gpa != "" {
			line = appendPart(line, "(GPA: "+gpa+")")
		}
		return line
	}

	return compactJSON(rec)
}

func dateRange(rec map[string]any) string {
	start, end := field(rec, "startDate"), field(rec, "endDate")
	span := joinNonEmpty(" - ", start, end)
	if span == "" {
		return ""
	}
	return "(" + span + ")"
}

// field reads a scalar record value as trimmed text. Non-scalars read as "".
func field(rec map[string]any, key string) string {
	switch v := rec[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func appendPart(line, part string) string {
	if part == "" {
		return line
	}
	return line + " " + part
}

// compactJSON marshals v with sorted map keys and no insignificant whitespace.
func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
