package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/core"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/models"
)

// Orchestrator drives one candidate asset at a time through
// upload -> [image metadata] -> processing -> registration -> linkage.
// Stages are strictly sequential per task: a remote call is issued only
// after the previous stage's response was observed, and a failure halts
// forward progress without rolling anything back.
type Orchestrator struct {
	backend      core.Backend
	logger       *zap.Logger
	onTransition func(Snapshot)
}

// Option tweaks orchestrator construction.
type Option func(*Orchestrator)

// WithObserver registers a callback fired after every stage transition
// with a snapshot of the task. Observers render progress; they must not
// drive the pipeline.
func WithObserver(fn func(Snapshot)) Option {
	return func(o *Orchestrator) { o.onTransition = fn }
}

// NewOrchestrator constructs an orchestrator over the given backend.
func NewOrchestrator(backend core.Backend, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{backend: backend, logger: logger}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewTask adapts the source into a candidate and opens a task for it.
// A ValidationError here means nothing entered the pipeline and no network
// call was made.
func (o *Orchestrator) NewTask(ctx context.Context, workspace string, src Source) (*Task, error) {
	candidate, err := src.Adapt(ctx)
	if err != nil {
		return nil, err
	}

	t := newTask(workspace, *candidate)
	o.notify(t)
	o.transition(t, StageValidated)
	return t, nil
}

// Run advances a validated task until it is terminal or needs image
// metadata. For image assets the caller must follow up with
// ProvideImageMetadata; everything else runs to Complete, AlreadyExists,
// or Failed.
func (o *Orchestrator) Run(ctx context.Context, t *Task) error {
	if t.Stage != StageValidated {
		return fmt.Errorf("task %s is not runnable from stage %s", t.ID, t.Stage)
	}

	o.transition(t, StageUploading)
	stored, err := o.uploadCandidate(ctx, t)
	if err != nil {
		return o.fail(t, err)
	}
	t.Stored = stored

	if stored.AlreadyExists {
		// Terminal but not an error; the UI renders this distinctly.
		o.transition(t, StageAlreadyExists)
		return nil
	}
	o.transition(t, StageUploaded)

	if stored.IsImage() {
		o.transition(t, StageNeedsImageMetadata)
		return nil
	}

	return o.finishPipeline(ctx, t)
}

// ProvideImageMetadata supplies the name/description step for an image
// task and resumes the pipeline. An empty name or a failed auto-generation
// leaves the task in NeedsImageMetadata so the user can correct and retry.
func (o *Orchestrator) ProvideImageMetadata(ctx context.Context, t *Task, name, description string, autoGenerate bool) error {
	if t.Stage != StageNeedsImageMetadata {
		return fmt.Errorf("task %s does not expect image metadata in stage %s", t.ID, t.Stage)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{
			Kind:    ValidationMissingName,
			Message: "Image name is required",
		}
	}

	if autoGenerate {
		imagePath := t.Workspace + "/" + t.Stored.ServerName
		generated, err := o.backend.GenerateImageDescription(ctx, imagePath)
		if err != nil {
			o.logger.Warn("image description generation failed",
				zap.String("task", t.ID),
				zap.String("image_path", imagePath),
				zap.Error(err))
			return &GenerationError{Cause: err}
		}
		description = generated
	}

	t.ImageMeta = &models.ImageMetadata{Name: name, Description: description}
	o.transition(t, StageMetadataProvided)

	return o.finishPipeline(ctx, t)
}

// finishPipeline runs processing, registration, and linkage in order.
// Registration is deliberately invoked only after processing succeeds so a
// file is never listed in a workspace without processed content behind it.
func (o *Orchestrator) finishPipeline(ctx context.Context, t *Task) error {
	o.transition(t, StageProcessing)
	result, err := o.backend.ProcessFile(ctx, t.Workspace, t.Stored.ServerName, t.ImageMeta)
	if err != nil {
		return o.fail(t, err)
	}
	t.Processing = result
	o.transition(t, StageProcessed)

	o.transition(t, StageRegistering)
	record, err := o.backend.RegisterFile(ctx, t.Workspace, t.Stored.ServerName)
	if err != nil {
		// Processed content now exists without workspace linkage; there is
		// no compensation, the user's recovery path is resubmission.
		o.logger.Error("registration failed after successful processing",
			zap.String("task", t.ID),
			zap.Strings("orphaned_doc_ids", result.DocIDs),
			zap.Error(err))
		return o.fail(t, err)
	}
	t.Record = record
	o.transition(t, StageRegistered)

	o.transition(t, StageLinking)
	for i, docID := range result.DocIDs {
		if err := o.backend.LinkDocID(ctx, t.Workspace, record.FileID, docID); err != nil {
			stageErr := o.stageError(StageLinking, err)
			stageErr.Linked = result.DocIDs[:i]
			stageErr.Pending = result.DocIDs[i:]
			o.logger.Error("doc id linkage failed",
				zap.String("task", t.ID),
				zap.String("file_id", record.FileID),
				zap.Strings("linked", stageErr.Linked),
				zap.Strings("pending", stageErr.Pending),
				zap.Error(err))
			return o.failWith(t, stageErr)
		}
	}

	o.transition(t, StageComplete)
	return nil
}

func (o *Orchestrator) uploadCandidate(ctx context.Context, t *Task) (*models.StoredAsset, error) {
	c := t.Candidate
	if c.Origin == models.OriginRemoteURL {
		return o.backend.DownloadFromURL(ctx, t.Workspace, c.URL)
	}
	return o.backend.UploadFile(ctx, t.Workspace, c.DisplayName, c.MimeType, c.Data)
}

func (o *Orchestrator) transition(t *Task, next Stage) {
	t.Stage = next
	o.logger.Debug("stage transition",
		zap.String("task", t.ID),
		zap.String("workspace", t.Workspace),
		zap.Stringer("stage", next))
	o.notify(t)
}

func (o *Orchestrator) fail(t *Task, err error) error {
	return o.failWith(t, o.stageError(t.Stage, err))
}

func (o *Orchestrator) failWith(t *Task, stageErr *StageError) error {
	t.Err = stageErr
	t.Stage = StageFailed
	o.logger.Error("ingestion stage failed",
		zap.String("task", t.ID),
		zap.Stringer("failed_stage", stageErr.Stage),
		zap.String("error_type", stageErr.Type),
		zap.String("message", stageErr.Message))
	o.notify(t)
	return stageErr
}

// stageError maps a transport failure to the user-facing record: the
// backend's error_type verbatim when supplied, else a generic fallback for
// that stage.
func (o *Orchestrator) stageError(stage Stage, err error) *StageError {
	stageErr := &StageError{Stage: stage, Message: fallbackMessage(stage)}
	var remote RemoteError
	if errors.As(err, &remote) {
		if remote.ErrorType() != "" {
			stageErr.Type = remote.ErrorType()
		} else if remote.Error() != "" {
			stageErr.Message = remote.Error()
		}
	}
	return stageErr
}

func fallbackMessage(stage Stage) string {
	switch stage {
	case StageUploading:
		return "Something went wrong, please try again later."
	case StageProcessing:
		return "Unexpected error while processing file"
	case StageRegistering, StageLinking:
		return "Error processing file"
	default:
		return "Unexpected error"
	}
}

func (o *Orchestrator) notify(t *Task) {
	if o.onTransition != nil {
		o.onTransition(t.snapshot())
	}
}
