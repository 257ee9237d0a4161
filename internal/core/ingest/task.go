package ingest

import (
	"github.com/google/uuid"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/models"
)

// Stage is the state-machine position of an ingestion task. Transitions
// run strictly forward; no stage is re-entered except via a fresh task.
type Stage int

const (
	StageSelected Stage = iota
	StageValidated
	StageUploading
	StageUploaded
	StageAlreadyExists
	StageNeedsImageMetadata
	StageMetadataProvided
	StageProcessing
	StageProcessed
	StageRegistering
	StageRegistered
	StageLinking
	StageComplete
	StageFailed
)

var stageNames = map[Stage]string{
	StageSelected:           "selected",
	StageValidated:          "validated",
	StageUploading:          "uploading",
	StageUploaded:           "uploaded",
	StageAlreadyExists:      "already_exists",
	StageNeedsImageMetadata: "needs_image_metadata",
	StageMetadataProvided:   "metadata_provided",
	StageProcessing:         "processing",
	StageProcessed:          "processed",
	StageRegistering:        "registering",
	StageRegistered:         "registered",
	StageLinking:            "linking",
	StageComplete:           "complete",
	StageFailed:             "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Task owns one candidate asset through its lifecycle. It is created when
// the user commits a source and belongs to exactly one session; the
// orchestrator is the only writer of its fields.
type Task struct {
	ID        string
	Workspace string
	Candidate models.CandidateAsset

	Stage Stage
	Err   *StageError

	Stored     *models.StoredAsset
	ImageMeta  *models.ImageMetadata
	Processing *models.ProcessingResult
	Record     *models.WorkspaceFileRecord
}

func newTask(workspace string, candidate models.CandidateAsset) *Task {
	return &Task{
		ID:        uuid.NewString(),
		Workspace: workspace,
		Candidate: candidate,
		Stage:     StageSelected,
	}
}

// Terminal reports whether the task can make no further progress.
func (t *Task) Terminal() bool {
	switch t.Stage {
	case StageComplete, StageAlreadyExists, StageFailed:
		return true
	}
	return false
}

// Snapshot is the read-only view handed to observers after every
// transition. Callers render it; they never drive the pipeline with it.
type Snapshot struct {
	TaskID    string
	Workspace string
	FileName  string
	Stage     Stage
	Err       *StageError
}

func (t *Task) snapshot() Snapshot {
	name := t.Candidate.DisplayName
	if t.Stored != nil && t.Stored.ServerName != "" {
		name = t.Stored.ServerName
	}
	return Snapshot{
		TaskID:    t.ID,
		Workspace: t.Workspace,
		FileName:  name,
		Stage:     t.Stage,
		Err:       t.Err,
	}
}
