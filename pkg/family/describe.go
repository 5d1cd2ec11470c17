package family

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// UnknownValue is the placeholder shown for a dynamic column missing from
// a node's attribute map (不明, "unknown").
const UnknownValue = "不明"

// Field is one (label, value) pair of a node description.
type Field struct {
	Label string
	Value string
}

// Describe returns the ordered fields a renderer should display for a
// node. Root nodes show only the Relation attribute (defaulting to ROOT);
// other nodes show every dynamic column in order, substituting
// [UnknownValue] for columns absent from the node's map.
//
// Describe is pure presentation logic and carries no markup; composing an
// HTML table or tooltip text from the fields is the renderer's job.
func Describe(details map[string]string, isRoot bool, cols []string) []Field {
	if isRoot {
		v, ok := details[RelationKey]
		if !ok || v == "" {
			v = RelationRoot
		}
		return []Field{{Label: RelationKey, Value: v}}
	}

	fields := make([]Field, 0, len(cols))
	for _, col := range cols {
		v, ok := details[col]
		if !ok {
			v = UnknownValue
		}
		fields = append(fields, Field{Label: col, Value: v})
	}
	return fields
}

// DisplayID returns the width-normalized (NFKC) form of an identifier for
// label display. The canonical trimmed identifier remains the key for all
// graph identity and matching; normalizing earlier could silently merge
// two distinct identifiers.
func DisplayID(id string) string {
	return norm.NFKC.String(id)
}

// Bold maps ASCII letters and digits to their Unicode mathematical
// sans-serif bold counterparts, used for tooltip headings where markup is
// unavailable. Other runes pass through unchanged.
func Bold(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) * 4)
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			sb.WriteRune('\U0001D5D4' + (r - 'A'))
		case r >= 'a' && r <= 'z':
			sb.WriteRune('\U0001D5EE' + (r - 'a'))
		case r >= '0' && r <= '9':
			sb.WriteRune('\U0001D7EC' + (r - '0'))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
