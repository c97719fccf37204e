package llm

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain object unchanged",
			input: `{"classifications":[]}`,
			want:  `{"classifications":[]}`,
		},
		{
			name:  "plain array unchanged",
			input: `[{"article_id":1}]`,
			want:  `[{"article_id":1}]`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"classifications\":[]}\n```",
			want:  `{"classifications":[]}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n[{\"article_id\":1}]\n```",
			want:  `[{"article_id":1}]`,
		},
		{
			name:  "extracts array from surrounding prose",
			input: "Here are the results: [{\"article_id\":1}] Hope that helps!",
			want:  `[{"article_id":1}]`,
		},
		{
			name:  "extracts object from surrounding prose",
			input: "Sure! {\"classifications\":[]} Done.",
			want:  `{"classifications":[]}`,
		},
		{
			name:  "array containing objects keeps array bounds",
			input: " [{\"a\":1},{\"b\":2}] ",
			want:  `[{"a":1},{"b":2}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
