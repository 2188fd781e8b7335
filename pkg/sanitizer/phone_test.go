package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+972541234567",
			want:  "+972541234567",
		},
		{
			name:  "with spaces",
			input: "+972 54 123 4567",
			want:  "+972541234567",
		},
		{
			name:  "with dashes",
			input: "+972-54-123-4567",
			want:  "+972541234567",
		},
		{
			name:  "with parentheses",
			input: "+1 (212) 555-1234",
			want:  "+12125551234",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +972541234567  ",
			want:  "+972541234567",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "argentina mobile",
			input: "+54 9 11 4321-1234",
			want:  "+5491143211234",
		},
		{
			name:  "local buenos aires number",
			input: "011 4321-1234",
			want:  "+541143211234",
		},
		{
			name:  "local israeli number",
			input: "054-123-4567",
			want:  "+972541234567",
		},
		{
			name:  "mixed special chars",
			input: " +972-54.123 4567 ",
			want:  "+972541234567",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePlayersMap(t *testing.T) {
	got := NormalizePlayersMap(map[string]string{
		"  Dana  Cohen ": "+972 54 123 4567",
		"   ":            "+972541234567",
		"Alex":           "not a phone",
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 players, got %d: %v", len(got), got)
	}
	if got["Dana Cohen"] != "+972541234567" {
		t.Errorf("Dana Cohen phone = %q", got["Dana Cohen"])
	}
	if phone, ok := got["Alex"]; !ok || phone != "" {
		t.Errorf("Alex entry = %q, %v; want empty phone kept", phone, ok)
	}
}
