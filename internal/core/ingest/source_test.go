package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLocalFileSourceRejectsUnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "payload.exe", 10)

	_, err := (&LocalFileSource{Path: path}).Adapt(context.Background())

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Kind != ValidationUnsupportedType {
		t.Fatalf("expected %s, got %s", ValidationUnsupportedType, validationErr.Kind)
	}
}

func TestLocalFileSourceExtensionCheckedBeforeDisk(t *testing.T) {
	// The path does not exist; an unsupported extension must still win.
	_, err := (&LocalFileSource{Path: "/nonexistent/report.zip"}).Adapt(context.Background())

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLocalFileSourceSizeBoundary(t *testing.T) {
	atLimit := writeTempFile(t, "exact.txt", MaxFileSizeBytes)
	candidate, err := (&LocalFileSource{Path: atLimit}).Adapt(context.Background())
	if err != nil {
		t.Fatalf("file at the size limit should be accepted: %v", err)
	}
	if candidate.SizeBytes != MaxFileSizeBytes {
		t.Fatalf("expected size %d, got %d", MaxFileSizeBytes, candidate.SizeBytes)
	}

	overLimit := writeTempFile(t, "over.txt", MaxFileSizeBytes+1)
	_, err = (&LocalFileSource{Path: overLimit}).Adapt(context.Background())
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Kind != ValidationTooLarge {
		t.Fatalf("expected too_large validation error, got %v", err)
	}
}

func TestLocalFileSourceCaseInsensitiveExtension(t *testing.T) {
	path := writeTempFile(t, "REPORT.PDF", 10)
	candidate, err := (&LocalFileSource{Path: path}).Adapt(context.Background())
	if err != nil {
		t.Fatalf("uppercase extension should be accepted: %v", err)
	}
	if candidate.DisplayName != "REPORT.PDF" {
		t.Fatalf("display name should keep original casing, got %s", candidate.DisplayName)
	}
}

func TestURLSourceValidation(t *testing.T) {
	cases := []struct {
		url   string
		valid bool
	}{
		{"https://example.com/docs/report.pdf", true},
		{"http://example.com", true},
		{"ftp://example.com/file.txt", false},
		{"not a url", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := (&URLSource{URL: tc.url}).Adapt(context.Background())
		if tc.valid && err != nil {
			t.Errorf("url %q should be valid, got %v", tc.url, err)
		}
		if !tc.valid {
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) || validationErr.Kind != ValidationInvalidURL {
				t.Errorf("url %q should be rejected with invalid_url, got %v", tc.url, err)
			}
		}
	}
}

func TestURLSourceCarriesNoData(t *testing.T) {
	candidate, err := (&URLSource{URL: "https://example.com/a/b/paper.pdf"}).Adapt(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if candidate.Data != nil {
		t.Fatal("url candidates must not carry bytes, the backend fetches them")
	}
	if candidate.DisplayName != "paper.pdf" {
		t.Fatalf("expected display name paper.pdf, got %s", candidate.DisplayName)
	}
}

func TestTextSourceRejectsBlankText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := (&TextSource{Text: text}).Adapt(context.Background())
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) || validationErr.Kind != ValidationBlankText {
			t.Errorf("text %q should be rejected, got %v", text, err)
		}
	}
}

func TestTextSourceFilenameSynthesis(t *testing.T) {
	fixed := time.Date(2026, time.March, 7, 9, 5, 0, 0, time.UTC)
	now := func() time.Time { return fixed }

	cases := []struct {
		text string
		want string
	}{
		{"Meeting notes: Q3 planning session details", "MeetingnotesQ3pl_Mar-7-2026-9-5.txt"},
		{"!!!@@@###", "text_Mar-7-2026-9-5.txt"},
		{"short", "short_Mar-7-2026-9-5.txt"},
	}
	for _, tc := range cases {
		candidate, err := (&TextSource{Text: tc.text, Now: now}).Adapt(context.Background())
		if err != nil {
			t.Fatalf("text %q: %v", tc.text, err)
		}
		if candidate.DisplayName != tc.want {
			t.Errorf("text %q: expected %s, got %s", tc.text, tc.want, candidate.DisplayName)
		}
		if candidate.MimeType != "text/plain" {
			t.Errorf("text %q: expected text/plain, got %s", tc.text, candidate.MimeType)
		}
	}
}

func TestTextSourcePrefixTakenBeforeSanitizing(t *testing.T) {
	fixed := time.Date(2026, time.January, 15, 14, 30, 0, 0, time.UTC)
	// 20 chars of "a b c d e f g h i j " keep only the letters.
	candidate, err := (&TextSource{Text: "a b c d e f g h i j klmnop", Now: func() time.Time { return fixed }}).Adapt(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if candidate.DisplayName != "abcdefghij_Jan-15-2026-14-30.txt" {
		t.Fatalf("got %s", candidate.DisplayName)
	}
}

func TestSupportedFile(t *testing.T) {
	if !SupportedFile("/tmp/notes.md") {
		t.Fatal("markdown should be supported")
	}
	if SupportedFile("/tmp/archive.tar.gz") {
		t.Fatal("gz should not be supported")
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5242880, "5.0 MB"},
	}
	for _, tc := range cases {
		if got := FormatFileSize(tc.bytes); got != tc.want {
			t.Errorf("FormatFileSize(%d) = %s, want %s", tc.bytes, got, tc.want)
		}
	}
}
