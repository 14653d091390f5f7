package articulation

import "testing"

func TestExtractInfo(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   map[string]interface{}
		wantOK bool
	}{
		{
			name:   "simple extraction",
			input:  `Sure, noted. EXTRACTED_INFO: {"employee_id": "EMP001", "name": "John"}`,
			want:   map[string]interface{}{"employee_id": "EMP001", "name": "John"},
			wantOK: true,
		},
		{
			name:   "no marker",
			input:  "Your leave has been applied.",
			wantOK: false,
		},
		{
			name:   "marker without payload",
			input:  "EXTRACTED_INFO: and nothing else",
			wantOK: false,
		},
		{
			name:   "unbalanced payload",
			input:  `EXTRACTED_INFO: {"employee_id": "EMP001"`,
			wantOK: false,
		},
		{
			name:   "braces inside string values",
			input:  `EXTRACTED_INFO: {"reason": "meeting {notes} review"}`,
			want:   map[string]interface{}{"reason": "meeting {notes} review"},
			wantOK: true,
		},
		{
			name:   "escaped quote inside value",
			input:  `EXTRACTED_INFO: {"reason": "said \"urgent\" twice"}`,
			want:   map[string]interface{}{"reason": `said "urgent" twice`},
			wantOK: true,
		},
		{
			name:   "nested object payload",
			input:  `EXTRACTED_INFO: {"name": "John", "extra": {"nested": true}} trailing prose`,
			want:   map[string]interface{}{"name": "John", "extra": map[string]interface{}{"nested": true}},
			wantOK: true,
		},
		{
			name:   "payload spanning lines",
			input:  "EXTRACTED_INFO: {\n  \"leave_type\": \"sick_leave\",\n  \"start_date\": \"2025-07-01\"\n}",
			want:   map[string]interface{}{"leave_type": "sick_leave", "start_date": "2025-07-01"},
			wantOK: true,
		},
		{
			name:   "invalid json inside balanced braces",
			input:  `EXTRACTED_INFO: {employee_id: EMP001}`,
			wantOK: false,
		},
		{
			name:   "prose between marker and brace",
			input:  `EXTRACTED_INFO: here it is {"name": "Maria"}`,
			want:   map[string]interface{}{"name": "Maria"},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractInfo(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ExtractInfo() ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractInfo() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if nested, isMap := v.(map[string]interface{}); isMap {
					gotNested, gok := got[k].(map[string]interface{})
					if !gok || len(gotNested) != len(nested) {
						t.Errorf("field %q = %v, want %v", k, got[k], v)
					}
					continue
				}
				if got[k] != v {
					t.Errorf("field %q = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestScanBalancedObject(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		start   int
		wantEnd int
		wantOK  bool
	}{
		{name: "flat object", input: `{"a": 1}`, start: 0, wantEnd: 8, wantOK: true},
		{name: "nested object", input: `{"a": {"b": 2}}`, start: 0, wantEnd: 15, wantOK: true},
		{name: "brace in string", input: `{"a": "}"}`, start: 0, wantEnd: 10, wantOK: true},
		{name: "never closes", input: `{"a": 1`, start: 0, wantOK: false},
		{name: "start not a brace", input: `x{"a": 1}`, start: 0, wantOK: false},
		{name: "start past end", input: `{}`, start: 5, wantOK: false},
		{name: "escaped quote", input: `{"a": "\""}`, start: 0, wantEnd: 11, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, ok := scanBalancedObject(tt.input, tt.start)
			if ok != tt.wantOK {
				t.Fatalf("scanBalancedObject() ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK && end != tt.wantEnd {
				t.Errorf("scanBalancedObject() end = %d, want %d", end, tt.wantEnd)
			}
		})
	}
}
