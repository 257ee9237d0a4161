package models

import (
	"strings"
)

// Origin identifies where a candidate asset came from.
type Origin string

const (
	OriginLocalFile  Origin = "local_file"
	OriginRemoteURL  Origin = "remote_url"
	OriginPastedText Origin = "pasted_text"
)

// CandidateAsset is a not-yet-stored representation of user-supplied
// content awaiting upload. For local files and pasted text the bytes are
// carried in Data; for remote URLs the backend fetches the bytes itself,
// so URL is the only payload.
type CandidateAsset struct {
	DisplayName string
	SizeBytes   int64
	MimeType    string
	Origin      Origin
	Data        []byte
	URL         string
}

// StoredAsset is the backend's record of an uploaded file. ServerName may
// differ from the candidate's display name (the server sanitizes names and
// rewrites .webp to .png).
type StoredAsset struct {
	ServerName    string `json:"filename"`
	SizeHuman     string `json:"size_human"`
	MimeType      string `json:"mime_type"`
	AlreadyExists bool   `json:"already_exists"`
}

// IsImage reports whether the stored asset's top-level MIME type is image.
func (s *StoredAsset) IsImage() bool {
	return strings.SplitN(s.MimeType, "/", 2)[0] == "image"
}

// ImageMetadata is the extra description step required before an image
// asset can be processed. Name is mandatory; Description is either typed
// by the user or auto-generated server-side.
type ImageMetadata struct {
	Name        string `json:"image_name"`
	Description string `json:"image_description"`
}

// ProcessingResult holds the content identifiers emitted by processing.
// DocIDs is always a sequence, even when the backend answered with a
// single scalar.
type ProcessingResult struct {
	DocIDs []string
}

// WorkspaceFileRecord is the workspace-scoped registration of a processed
// file. Immutable once created within a pipeline run.
type WorkspaceFileRecord struct {
	FileID        string `json:"file_id"`
	FileName      string `json:"file_name"`
	WorkspaceName string `json:"workspace_name"`
}

// Workspace mirrors one row of the backend's workspace listing.
type Workspace struct {
	ID           int64  `json:"id"`
	Name         string `json:"workspace_name"`
	UserID       string `json:"user_id"`
	TotalFiles   int    `json:"total_files"`
	LastModified string `json:"last_modified"`
	CreatedAt    string `json:"created_at"`
}

// WorkspaceFile is one entry of a workspace's file listing.
type WorkspaceFile struct {
	ID           int64  `json:"id"`
	FileName     string `json:"file_name"`
	LastModified string `json:"last_modified"`
	CreatedAt    string `json:"created_at"`
}
