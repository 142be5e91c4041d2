package utils

import "testing"

func TestDisplayLink(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "already https",
			raw:  "https://instagram.com/user",
			want: "https://instagram.com/user",
		},
		{
			name: "already http",
			raw:  "http://example.com",
			want: "http://example.com",
		},
		{
			name: "no scheme",
			raw:  "instagram.com/user",
			want: "https://instagram.com/user",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
		{
			name: "scheme-like in the middle",
			raw:  "redirect.me?to=https://x.com",
			want: "https://redirect.me?to=https://x.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayLink(tt.raw); got != tt.want {
				t.Errorf("DisplayLink(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		n    int
		want string
	}{
		{name: "truncated", id: "a1b2c3d4-e5f6", n: 6, want: "a1b2c3"},
		{name: "shorter than n", id: "abc", n: 6, want: "abc"},
		{name: "zero n", id: "abc", n: 0, want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortID(tt.id, tt.n); got != tt.want {
				t.Errorf("ShortID(%q, %d) = %q, want %q", tt.id, tt.n, got, tt.want)
			}
		})
	}
}
