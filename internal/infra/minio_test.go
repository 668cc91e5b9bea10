package infra

import "testing"

func TestIdentifierFromURL(t *testing.T) {
	s := &MinioBlobStore{}

	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "pdf under folder",
			url:  "https://minio.local:9000/eduresources/resources/ab12cd34.pdf",
			want: "ab12cd34",
		},
		{
			name: "docx extension stripped",
			url:  "http://minio.local/eduresources/resources/deadbeef.docx",
			want: "deadbeef",
		},
		{
			name: "no extension",
			url:  "https://minio.local/eduresources/resources/bare",
			want: "bare",
		},
		{
			name: "outside folder",
			url:  "https://minio.local/eduresources/other/ab12.pdf",
			want: "",
		},
		{
			name: "nested path after folder",
			url:  "https://minio.local/eduresources/resources/a/b.pdf",
			want: "",
		},
		{
			name: "empty tail",
			url:  "https://minio.local/eduresources/resources/",
			want: "",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := s.IdentifierFromURL(c.url); got != c.want {
				t.Errorf("IdentifierFromURL(%q) = %q, want %q", c.url, got, c.want)
			}
		})
	}
}

func TestResolveContentType(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		filename    string
		want        string
	}{
		{"header wins", "application/pdf", "x.docx", "application/pdf"},
		{"parameters stripped", "application/pdf; charset=binary", "x.pdf", "application/pdf"},
		{"octet-stream falls back to extension", "application/octet-stream", "x.docx",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"empty header falls back to extension", "", "x.doc", "application/msword"},
		{"case folded", "Application/PDF", "x.pdf", "application/pdf"},
		{"unknown stays unknown", "image/png", "x.png", "image/png"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := resolveContentType(c.contentType, c.filename); got != c.want {
				t.Errorf("resolveContentType(%q, %q) = %q, want %q",
					c.contentType, c.filename, got, c.want)
			}
		})
	}
}

func TestAllowedContentTypes(t *testing.T) {
	allowed := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
	for _, ct := range allowed {
		if !allowedContentTypes[ct] {
			t.Errorf("expected %q to be allowed", ct)
		}
	}

	for _, ct := range []string{"image/png", "text/html", "application/zip", ""} {
		if allowedContentTypes[ct] {
			t.Errorf("expected %q to be rejected", ct)
		}
	}
}
