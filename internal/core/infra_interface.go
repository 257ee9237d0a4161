package core

import (
	"context"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/models"
)

// Backend defines every remote operation the ingestion pipeline consumes.
// It abstracts the RAG backend's HTTP API so the orchestrator never
// depends on transport details, and so tests can substitute a fake.
type Backend interface {
	// UploadFile sends raw bytes to the workspace's storage endpoint.
	UploadFile(ctx context.Context, workspace, filename, mimeType string, data []byte) (*models.StoredAsset, error)

	// DownloadFromURL asks the backend to fetch a remote resource into the
	// workspace; adaptation and upload are fused for URL sources.
	DownloadFromURL(ctx context.Context, workspace, url string) (*models.StoredAsset, error)

	// GenerateImageDescription produces a description for the image stored
	// at imagePath ("workspace/serverName").
	GenerateImageDescription(ctx context.Context, imagePath string) (string, error)

	// ProcessFile submits a stored file for content processing and returns
	// its doc ids, normalized to a sequence.
	ProcessFile(ctx context.Context, workspace, filePath string, meta *models.ImageMetadata) (*models.ProcessingResult, error)

	// RegisterFile records the file as a member of the workspace.
	RegisterFile(ctx context.Context, workspace, fileName string) (*models.WorkspaceFileRecord, error)

	// LinkDocID associates one doc id with a registered workspace file.
	// Linking a doc id twice is a server-side no-op.
	LinkDocID(ctx context.Context, workspace, fileID, docID string) error
}

// WorkspaceReader covers the read/manage operations the CLI needs to name
// targets and show file lists. Kept separate from Backend so the pipeline
// only sees the six stage operations.
type WorkspaceReader interface {
	ListWorkspaces(ctx context.Context) ([]models.Workspace, error)
	GetWorkspace(ctx context.Context, name string) (*models.Workspace, error)
	CreateWorkspace(ctx context.Context, name, userID string) (*models.Workspace, error)
	DeleteWorkspace(ctx context.Context, name string) error
	ListWorkspaceFiles(ctx context.Context, name string) ([]models.WorkspaceFile, error)
	GetFileDocIDs(ctx context.Context, name, fileID string) ([]string, error)
}
