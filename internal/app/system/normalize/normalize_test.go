package normalize

import "testing"

func TestPhone(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		countryCode string
		want        string
	}{
		{"digits only", "5712345678", "", "5712345678"},
		{"strips spaces and dashes", "571-234-5678", "", "5712345678"},
		{"strips plus and parens", "+57 (1) 234 5678", "", "5712345678"},
		{"strips letters", "57abc12345678", "", "5712345678"},
		{"empty", "", "57", ""},
		{"whitespace only", "   ", "57", ""},
		{"prepends country code to national number", "3001234567", "57", "573001234567"},
		{"keeps existing country code", "573001234567", "57", "573001234567"},
		{"short number untouched", "1234567", "57", "1234567"},
		{"no country code configured", "3001234567", "", "3001234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Phone(tt.input, tt.countryCode)
			if got != tt.want {
				t.Errorf("Phone(%q, %q) = %q, want %q", tt.input, tt.countryCode, got, tt.want)
			}
		})
	}
}

func TestPhoneStripsEveryNonDigit(t *testing.T) {
	got := Phone("⁑+57☎ 300.123•45 67ext", "")
	for _, r := range got {
		if r < '0' || r > '9' {
			t.Fatalf("Phone left non-digit %q in %q", r, got)
		}
	}
	if got != "573001234567" {
		t.Errorf("Phone = %q, want %q", got, "573001234567")
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  Mixed.Case@Domain.Org  ", "mixed.case@domain.org"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	if got := Name("  Ana María  "); got != "Ana María" {
		t.Errorf("Name = %q, want %q", got, "Ana María")
	}
	if got := Name("   "); got != "" {
		t.Errorf("Name = %q, want empty", got)
	}
}
