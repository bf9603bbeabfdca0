package utils

import (
	"errors"
	"testing"
)

func TestNormalizeImageURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://image.tmdb.org/t/p/w500/a.jpg", "https://image.tmdb.org/t/p/w500/a.jpg"},
		{" HTTPS://image.tmdb.org/t/p/w500/a.jpg ", "https://image.tmdb.org/t/p/w500/a.jpg"},
		{"http://example.com/path with spaces/file name.jpg", "http://example.com/path%20with%20spaces/file%20name.jpg"},
		{"http://example.com/a.jpg?text=Kids Flix", "http://example.com/a.jpg?text=Kids%20Flix"},
	}
	for _, tt := range tests {
		got, err := NormalizeImageURL(tt.in)
		if err != nil {
			t.Fatalf("NormalizeImageURL(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeImageURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeImageURLRejects(t *testing.T) {
	for _, in := range []string{
		"file:///etc/passwd",
		"ftp://evil.com/payload",
		"data:image/png;base64,AAAA",
		"/relative/path.jpg",
		"undefined",
	} {
		if _, err := NormalizeImageURL(in); !errors.Is(err, ErrUnsupportedURL) {
			t.Errorf("NormalizeImageURL(%q) error = %v, want ErrUnsupportedURL", in, err)
		}
	}
}
