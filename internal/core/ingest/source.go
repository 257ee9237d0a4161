package ingest

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/models"
)

// MaxFileSizeBytes caps local uploads at 10 MiB; the boundary itself is
// accepted.
const MaxFileSizeBytes = 10 << 20

var allowedExtensions = map[string]struct{}{
	".docx": {}, ".doc": {}, ".pdf": {}, ".txt": {}, ".json": {},
	".jpg": {}, ".png": {}, ".jpeg": {}, ".md": {}, ".webp": {},
}

// SupportedFile reports whether the path's extension is on the upload
// allow-list.
func SupportedFile(path string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Source converts one kind of user input into a candidate asset. A
// ValidationError from Adapt means the input never enters the pipeline and
// no network call was made.
type Source interface {
	Origin() models.Origin
	Adapt(ctx context.Context) (*models.CandidateAsset, error)
}

// LocalFileSource adapts a file on disk. Extension and size are checked
// before any bytes are read.
type LocalFileSource struct {
	Path string
}

func (s *LocalFileSource) Origin() models.Origin { return models.OriginLocalFile }

func (s *LocalFileSource) Adapt(ctx context.Context) (*models.CandidateAsset, error) {
	name := filepath.Base(s.Path)
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, &ValidationError{
			Kind:    ValidationUnsupportedType,
			Message: "File type not supported.",
		}
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if info.Size() > MaxFileSizeBytes {
		return nil, &ValidationError{
			Kind:    ValidationTooLarge,
			Message: fmt.Sprintf("File size exceeds %d MB.", MaxFileSizeBytes>>20),
		}
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}

	return &models.CandidateAsset{
		DisplayName: name,
		SizeBytes:   info.Size(),
		MimeType:    mime.TypeByExtension(ext),
		Origin:      models.OriginLocalFile,
		Data:        data,
	}, nil
}

// URLSource adapts a remote URL. Only the URL itself is validated here;
// type and size checks happen server-side because the backend performs the
// fetch (adapt and upload are fused for this origin).
type URLSource struct {
	URL string
}

func (s *URLSource) Origin() models.Origin { return models.OriginRemoteURL }

func (s *URLSource) Adapt(ctx context.Context) (*models.CandidateAsset, error) {
	u, err := url.ParseRequestURI(strings.TrimSpace(s.URL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, &ValidationError{
			Kind:    ValidationInvalidURL,
			Message: "Enter a valid http(s) source URL.",
		}
	}

	return &models.CandidateAsset{
		DisplayName: path.Base(u.Path),
		Origin:      models.OriginRemoteURL,
		URL:         u.String(),
	}, nil
}

var textNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// TextSource adapts freeform pasted text into a plain-text candidate with
// a synthesized filename.
type TextSource struct {
	Text string

	// Now overrides the clock for the synthesized timestamp in tests.
	Now func() time.Time
}

func (s *TextSource) Origin() models.Origin { return models.OriginPastedText }

func (s *TextSource) Adapt(ctx context.Context) (*models.CandidateAsset, error) {
	trimmed := strings.TrimSpace(s.Text)
	if trimmed == "" {
		return nil, &ValidationError{
			Kind:    ValidationBlankText,
			Message: "Please enter text content",
		}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	return &models.CandidateAsset{
		DisplayName: synthesizeTextFilename(trimmed, now()),
		SizeBytes:   int64(len(s.Text)),
		MimeType:    "text/plain",
		Origin:      models.OriginPastedText,
		Data:        []byte(s.Text),
	}, nil
}

// synthesizeTextFilename builds "<prefix>_<Mon-D-YYYY-H-M>.txt" from the
// first 20 characters of the trimmed text, stripped to [A-Za-z0-9_]. The
// unpadded 24-hour timestamp fields cannot be expressed as a time layout,
// so the stamp is assembled by hand.
func synthesizeTextFilename(trimmed string, now time.Time) string {
	runes := []rune(trimmed)
	if len(runes) > 20 {
		runes = runes[:20]
	}
	prefix := textNameSanitizer.ReplaceAllString(string(runes), "")
	if prefix == "" {
		prefix = "text"
	}

	stamp := fmt.Sprintf("%s-%d-%d-%d-%d",
		now.Format("Jan"), now.Day(), now.Year(), now.Hour(), now.Minute())

	return prefix + "_" + stamp + ".txt"
}

// FormatFileSize renders a byte count the way the backend does for
// size_human: B below 1 KB, then KB/MB with one decimal, 1024-based.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1048576:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/1048576)
	}
}
