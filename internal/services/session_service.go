package services

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/core"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/core/ingest"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/models"
)

// ErrSessionClosed is returned when a source is submitted to a closed
// session.
var ErrSessionClosed = errors.New("upload session is closed")

// ImageMetadataInput is the caller-supplied answer to the image metadata
// step. AutoGenerate asks the backend to write the description.
type ImageMetadataInput struct {
	Name         string
	Description  string
	AutoGenerate bool
}

// UploadSession owns every ingestion task opened under one upload dialog.
// Tasks are independent and may run concurrently; within a task the stages
// stay strictly sequential. The session also maintains the shared
// workspace file list: a record is appended the moment its task registers,
// even if linkage later fails, and results arriving after Close are
// dropped.
type UploadSession struct {
	orch   *ingest.Orchestrator
	logger *zap.Logger

	observer func(ingest.Snapshot)

	mu     sync.Mutex
	closed bool
	tasks  map[string]*ingest.Task
	files  []models.WorkspaceFileRecord

	group errgroup.Group
}

// NewUploadSession builds a session over the backend. observer, when
// non-nil, receives every task snapshot (for progress rendering) and may
// be called from multiple goroutines.
func NewUploadSession(b core.Backend, logger *zap.Logger, observer func(ingest.Snapshot)) *UploadSession {
	s := &UploadSession{
		logger:   logger,
		observer: observer,
		tasks:    make(map[string]*ingest.Task),
	}
	s.orch = ingest.NewOrchestrator(b, logger, ingest.WithObserver(s.onTransition))
	return s
}

// Ingest drives one source synchronously. When the stored asset is an
// image and meta is nil, the returned task is parked in
// NeedsImageMetadata and the caller must follow up with
// ProvideImageMetadata.
func (s *UploadSession) Ingest(ctx context.Context, workspace string, src ingest.Source, meta *ImageMetadataInput) (*ingest.Task, error) {
	t, err := s.open(ctx, workspace, src)
	if err != nil {
		return nil, err
	}

	if err := s.orch.Run(ctx, t); err != nil {
		return t, err
	}

	if t.Stage == ingest.StageNeedsImageMetadata && meta != nil {
		if err := s.orch.ProvideImageMetadata(ctx, t, meta.Name, meta.Description, meta.AutoGenerate); err != nil {
			return t, err
		}
	}
	return t, nil
}

// Submit starts a source in the background and returns its task
// immediately. Wait collects the first failure once the caller is done
// submitting.
func (s *UploadSession) Submit(ctx context.Context, workspace string, src ingest.Source) (*ingest.Task, error) {
	t, err := s.open(ctx, workspace, src)
	if err != nil {
		return nil, err
	}

	s.group.Go(func() error {
		return s.orch.Run(ctx, t)
	})
	return t, nil
}

// ProvideImageMetadata resumes a task parked in NeedsImageMetadata.
func (s *UploadSession) ProvideImageMetadata(ctx context.Context, t *ingest.Task, meta ImageMetadataInput) error {
	return s.orch.ProvideImageMetadata(ctx, t, meta.Name, meta.Description, meta.AutoGenerate)
}

// Wait blocks until all background tasks finished and returns the first
// stage error, if any. Tasks do not cancel each other.
func (s *UploadSession) Wait() error {
	return s.group.Wait()
}

// Files returns the records registered so far, in registration order.
func (s *UploadSession) Files() []models.WorkspaceFileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WorkspaceFileRecord, len(s.files))
	copy(out, s.files)
	return out
}

// Close abandons the session. In-flight remote calls are not cancelled;
// their results are simply ignored when they arrive.
func (s *UploadSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *UploadSession) open(ctx context.Context, workspace string, src ingest.Source) (*ingest.Task, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	s.mu.Unlock()

	t, err := s.orch.NewTask(ctx, workspace, src)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tasks[t.ID] = t
	s.mu.Unlock()
	return t, nil
}

func (s *UploadSession) onTransition(snap ingest.Snapshot) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if snap.Stage == ingest.StageRegistered {
		if t, ok := s.tasks[snap.TaskID]; ok && t.Record != nil {
			s.files = append(s.files, *t.Record)
		}
	}
	observer := s.observer
	s.mu.Unlock()

	if observer != nil {
		observer(snap)
	}
}
