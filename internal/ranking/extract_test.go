package ranking

import (
	"reflect"
	"testing"
)

func TestExtractRanking(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "designated section",
			text: "The announcement is strong.\n\nFINAL RANKING:\nDraft-B\nDraft-A\nDraft-C\n\nOverall a good batch.",
			want: []string{"Draft-B", "Draft-A", "Draft-C"},
		},
		{
			name: "section with numbering",
			text: "FINAL RANKING:\n1. Draft-C\n2. Draft-A\n3. Draft-B\n",
			want: []string{"Draft-C", "Draft-A", "Draft-B"},
		},
		{
			name: "fullwidth colon",
			text: "FINAL RANKING：\nDraft-A\nDraft-B",
			want: []string{"Draft-A", "Draft-B"},
		},
		{
			name: "case-insensitive header",
			text: "final ranking:\nDraft-B\nDraft-A",
			want: []string{"Draft-B", "Draft-A"},
		},
		{
			name: "no section falls back to whole text",
			text: "I prefer Draft-C over Draft-A, with Draft-B last.",
			want: []string{"Draft-C", "Draft-A", "Draft-B"},
		},
		{
			name: "duplicates keep first occurrence",
			text: "FINAL RANKING:\nDraft-A, Draft-B, Draft-A, Draft-B",
			want: []string{"Draft-A", "Draft-B"},
		},
		{
			name: "section stops at blank line",
			text: "FINAL RANKING:\nDraft-B\nDraft-A\n\nBy the way, Draft-C was also fine.",
			want: []string{"Draft-B", "Draft-A"},
		},
		{
			name: "no labels anywhere",
			text: "This verdict mentions no drafts at all.",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "multi-letter labels",
			text: "FINAL RANKING:\nDraft-AB, Draft-C, Draft-AA",
			want: []string{"Draft-AB", "Draft-C", "Draft-AA"},
		},
		{
			name: "label requires word boundary",
			text: "FINAL RANKING:\nDraft-Cs is not a label, but Draft-C is.",
			want: []string{"Draft-C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRanking(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractRanking() = %v, want %v", got, tt.want)
			}
		})
	}
}
