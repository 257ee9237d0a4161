package services

import (
	"context"
	"strconv"
	"testing"

	"go.uber.org/zap"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/core/ingest"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/models"
)

type stubSource struct {
	candidate models.CandidateAsset
}

func (s *stubSource) Origin() models.Origin { return s.candidate.Origin }

func (s *stubSource) Adapt(ctx context.Context) (*models.CandidateAsset, error) {
	c := s.candidate
	return &c, nil
}

type stubBackend struct {
	asset  models.StoredAsset
	docIDs []string
	nextID int
}

func (b *stubBackend) UploadFile(ctx context.Context, workspace, filename, mimeType string, data []byte) (*models.StoredAsset, error) {
	a := b.asset
	if a.ServerName == "" {
		a.ServerName = filename
	}
	return &a, nil
}

func (b *stubBackend) DownloadFromURL(ctx context.Context, workspace, url string) (*models.StoredAsset, error) {
	a := b.asset
	return &a, nil
}

func (b *stubBackend) GenerateImageDescription(ctx context.Context, imagePath string) (string, error) {
	return "generated description", nil
}

func (b *stubBackend) ProcessFile(ctx context.Context, workspace, filePath string, meta *models.ImageMetadata) (*models.ProcessingResult, error) {
	return &models.ProcessingResult{DocIDs: b.docIDs}, nil
}

func (b *stubBackend) RegisterFile(ctx context.Context, workspace, fileName string) (*models.WorkspaceFileRecord, error) {
	b.nextID++
	return &models.WorkspaceFileRecord{
		FileID:        strconv.Itoa(b.nextID),
		FileName:      fileName,
		WorkspaceName: workspace,
	}, nil
}

func (b *stubBackend) LinkDocID(ctx context.Context, workspace, fileID, docID string) error {
	return nil
}

func textSource(name string) *stubSource {
	return &stubSource{candidate: models.CandidateAsset{
		DisplayName: name,
		MimeType:    "text/plain",
		Origin:      models.OriginPastedText,
		Data:        []byte("content"),
	}}
}

func newTestSession(observer func(ingest.Snapshot)) (*UploadSession, *stubBackend) {
	b := &stubBackend{docIDs: []string{"doc-1"}}
	return NewUploadSession(b, zap.NewNop(), observer), b
}

func TestIngestAppendsRegisteredFile(t *testing.T) {
	s, _ := newTestSession(nil)

	task, err := s.Ingest(context.Background(), "research", textSource("notes.txt"), nil)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if task.Stage != ingest.StageComplete {
		t.Fatalf("expected complete, got %s", task.Stage)
	}

	files := s.Files()
	if len(files) != 1 || files[0].FileName != "notes.txt" {
		t.Fatalf("registered file not recorded, got %+v", files)
	}
}

func TestIngestImageWithMetadata(t *testing.T) {
	s, b := newTestSession(nil)
	b.asset = models.StoredAsset{ServerName: "photo.png", MimeType: "image/png"}

	meta := &ImageMetadataInput{Name: "diagram", Description: "manual"}
	task, err := s.Ingest(context.Background(), "research", textSource("photo.png"), meta)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if task.Stage != ingest.StageComplete {
		t.Fatalf("expected complete, got %s", task.Stage)
	}
	if task.ImageMeta == nil || task.ImageMeta.Name != "diagram" {
		t.Fatalf("metadata not applied: %+v", task.ImageMeta)
	}
}

func TestIngestImageWithoutMetadataParks(t *testing.T) {
	s, b := newTestSession(nil)
	b.asset = models.StoredAsset{ServerName: "photo.png", MimeType: "image/png"}

	task, err := s.Ingest(context.Background(), "research", textSource("photo.png"), nil)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if task.Stage != ingest.StageNeedsImageMetadata {
		t.Fatalf("expected needs_image_metadata, got %s", task.Stage)
	}
	if len(s.Files()) != 0 {
		t.Fatal("a parked task must not be in the file list")
	}

	if err := s.ProvideImageMetadata(context.Background(), task, ImageMetadataInput{Name: "diagram", AutoGenerate: true}); err != nil {
		t.Fatalf("provide metadata: %v", err)
	}
	if task.Stage != ingest.StageComplete {
		t.Fatalf("expected complete after metadata, got %s", task.Stage)
	}
	if task.ImageMeta.Description != "generated description" {
		t.Fatalf("auto-generated description expected, got %q", task.ImageMeta.Description)
	}
	if len(s.Files()) != 1 {
		t.Fatal("resumed task must appear in the file list")
	}
}

func TestSubmitRunsInBackground(t *testing.T) {
	s, _ := newTestSession(nil)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := s.Submit(context.Background(), "research", textSource(name)); err != nil {
			t.Fatalf("submit %s: %v", name, err)
		}
	}
	if err := s.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if len(s.Files()) != 3 {
		t.Fatalf("expected 3 registered files, got %d", len(s.Files()))
	}
}

func TestClosedSessionRejectsSubmissions(t *testing.T) {
	s, _ := newTestSession(nil)
	s.Close()

	if _, err := s.Ingest(context.Background(), "research", textSource("late.txt"), nil); err != ErrSessionClosed {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestCloseDropsLateResults(t *testing.T) {
	var observed []ingest.Stage
	s, _ := newTestSession(func(snap ingest.Snapshot) {
		observed = append(observed, snap.Stage)
	})
	s.Close()

	// Transitions arriving after Close must neither reach the observer nor
	// touch the file list.
	s.onTransition(ingest.Snapshot{TaskID: "late", Stage: ingest.StageRegistered})

	if len(observed) != 0 {
		t.Fatalf("observer must not fire after close, got %v", observed)
	}
	if len(s.Files()) != 0 {
		t.Fatal("file list must not grow after close")
	}
}

func TestFilesReturnsCopy(t *testing.T) {
	s, _ := newTestSession(nil)
	if _, err := s.Ingest(context.Background(), "research", textSource("notes.txt"), nil); err != nil {
		t.Fatal(err)
	}

	files := s.Files()
	files[0].FileName = "mutated"

	if s.Files()[0].FileName != "notes.txt" {
		t.Fatal("Files must return a copy")
	}
}
