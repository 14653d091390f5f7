package articulation

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no marker passes through",
			input: "Your sick leave has been applied.",
			want:  "Your sick leave has been applied.",
		},
		{
			name:  "marker and payload removed",
			input: "I've noted that down. EXTRACTED_INFO: {\"employee_id\": \"EMP001\"} What dates do you need?",
			want:  "I've noted that down.\n\nWhat dates do you need?",
		},
		{
			name:  "payload at end",
			input: `Got it, John. EXTRACTED_INFO: {"name": "John"}`,
			want:  "Got it, John.",
		},
		{
			name:  "payload at start",
			input: `EXTRACTED_INFO: {"name": "John"} Hello John, how can I help?`,
			want:  "Hello John, how can I help?",
		},
		{
			name:  "entire reply is payload",
			input: `EXTRACTED_INFO: {"name": "John"}`,
			want:  "",
		},
		{
			name:  "multiple markers all removed",
			input: `A EXTRACTED_INFO: {"a": 1} B EXTRACTED_INFO: {"b": 2} C`,
			want:  "A\n\nB\n\nC",
		},
		{
			name:  "unbalanced payload left untouched",
			input: `Reply text EXTRACTED_INFO: {"name": "John"`,
			want:  `Reply text EXTRACTED_INFO: {"name": "John"`,
		},
		{
			name:  "brace inside string does not cut early",
			input: `Done. EXTRACTED_INFO: {"reason": "review {draft}"} Anything else?`,
			want:  "Done.\n\nAnything else?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize() = %q, want %q", got, tt.want)
			}

			// Sanitizing is idempotent.
			if again := Sanitize(got); again != got {
				t.Errorf("Sanitize() not idempotent: %q -> %q", got, again)
			}
		})
	}
}
