package finalizer

import (
	"testing"
)

func TestNormalizeEOF(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		trim        bool
		lineEnding  string
		expected    string
		wantChanged bool
	}{
		{"adds missing newline", "[]", false, "\n", "[]\n", true},
		{"collapses trailing newlines", "{}\n\n\n", false, "\n", "{}\n", true},
		{"already normalized", "{\n  \"a\": 1\n}\n", false, "\n", "{\n  \"a\": 1\n}\n", false},
		{"strips BOM", "\xEF\xBB\xBF[]\n", false, "\n", "[]\n", true},
		{"trims trailing spaces", "a  \nb\t\n", true, "\n", "a\nb\n", true},
		{"keeps CRLF when detected", "a\r\nb\r\n\r\n", false, "", "a\r\nb\r\n", true},
		{"trims spaces before CR", "a \r\nb\r\n", true, "", "a\r\nb\r\n", true},
		{"empty input", "", false, "\n", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed, err := NormalizeEOF([]byte(tt.input), tt.trim, tt.lineEnding)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if string(out) != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, string(out))
			}
			if changed != tt.wantChanged {
				t.Errorf("Expected changed=%v, got %v", tt.wantChanged, changed)
			}
		})
	}
}

func TestNormalizeEOFSkipsBinary(t *testing.T) {
	input := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}
	out, changed, err := NormalizeEOF(input, true, "\n")
	if err != nil || changed || string(out) != string(input) {
		t.Errorf("Binary input should pass through untouched, got %q changed=%v err=%v", out, changed, err)
	}
}

func TestIsText(t *testing.T) {
	if !IsText([]byte("héllo")) {
		t.Error("UTF-8 text should be text")
	}
	if IsText([]byte{0xff, 0xfe, 0x00}) {
		t.Error("NUL bytes should not be text")
	}
}
