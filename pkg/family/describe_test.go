package family

import (
	"reflect"
	"testing"
)

func TestDescribeRoot(t *testing.T) {
	tests := []struct {
		name    string
		details map[string]string
		want    []Field
	}{
		{
			"synthetic root marker",
			map[string]string{RelationKey: RelationRoot},
			[]Field{{Label: RelationKey, Value: RelationRoot}},
		},
		{
			"missing relation falls back to ROOT",
			map[string]string{},
			[]Field{{Label: RelationKey, Value: RelationRoot}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.details, true, []string{"Creator", "Date"})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Describe() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDescribeNonRoot(t *testing.T) {
	details := map[string]string{"Creator": "田中", "Relation": RelationReuse}
	cols := []string{"Creator", "Date", "Relation"}

	want := []Field{
		{Label: "Creator", Value: "田中"},
		{Label: "Date", Value: UnknownValue},
		{Label: "Relation", Value: RelationReuse},
	}
	if got := Describe(details, false, cols); !reflect.DeepEqual(got, want) {
		t.Errorf("Describe() = %v, want %v", got, want)
	}
}

func TestDescribeKeepsEmptyValues(t *testing.T) {
	// An empty string is a present value, not a missing one; the unknown
	// placeholder applies only to absent columns.
	details := map[string]string{"Creator": ""}
	got := Describe(details, false, []string{"Creator"})
	want := []Field{{Label: "Creator", Value: ""}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Describe() = %v, want %v", got, want)
	}
}

func TestDisplayID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii unchanged", "DE5313-008-02B", "DE5313-008-02B"},
		{"full-width narrowed", "ＤＥ５３１３", "DE5313"},
		{"half-width katakana widened", "ｶﾀｶﾅ", "カタカナ"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayID(tt.in); got != tt.want {
				t.Errorf("DisplayID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"upper", "AZ", "𝗔𝗭"},
		{"lower", "az", "𝗮𝘇"},
		{"digits", "09", "𝟬𝟵"},
		{"mixed", "Hello123", "𝗛𝗲𝗹𝗹𝗼𝟭𝟮𝟯"},
		{"non-ascii passes through", "図番-01", "図番-𝟬𝟭"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bold(tt.in); got != tt.want {
				t.Errorf("Bold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
