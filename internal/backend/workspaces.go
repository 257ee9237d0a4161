package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/core"
	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/models"
)

var (
	_ core.Backend         = (*Client)(nil)
	_ core.WorkspaceReader = (*Client)(nil)
)

// RegisterFile records a processed file as a member of the workspace. The
// backend hands back a numeric file id; it is carried as a string because
// the rest of the pipeline only ever echoes it into URLs.
func (c *Client) RegisterFile(ctx context.Context, workspace, fileName string) (*models.WorkspaceFileRecord, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"file_name": fileName}).
		Post(endpointWorkspaces + url.PathEscape(workspace) + "/files")
	if err != nil {
		return nil, fmt.Errorf("register file: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var payload struct {
		FileID        json.Number `json:"file_id"`
		FileName      string      `json:"file_name"`
		WorkspaceName string      `json:"workspace_name"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode register payload: %w", err)
	}

	return &models.WorkspaceFileRecord{
		FileID:        payload.FileID.String(),
		FileName:      payload.FileName,
		WorkspaceName: payload.WorkspaceName,
	}, nil
}

// LinkDocID associates one doc id with a registered file. The server
// deduplicates, so re-linking an id is harmless.
func (c *Client) LinkDocID(ctx context.Context, workspace, fileID, docID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"doc_id": docID}).
		Post(endpointWorkspaces + url.PathEscape(workspace) + "/" + url.PathEscape(fileID) + "/doc_ids")
	if err != nil {
		return fmt.Errorf("link doc id: %w", err)
	}

	_, err = decodeEnvelope(resp)
	return err
}

// ListWorkspaces returns every workspace known to the backend.
func (c *Client) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	resp, err := c.http.R().SetContext(ctx).Get(endpointWorkspaces)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var workspaces []models.Workspace
	if err := json.Unmarshal(env.Data, &workspaces); err != nil {
		return nil, fmt.Errorf("decode workspaces payload: %w", err)
	}
	return workspaces, nil
}

// GetWorkspace fetches one workspace's details by name.
func (c *Client) GetWorkspace(ctx context.Context, name string) (*models.Workspace, error) {
	resp, err := c.http.R().SetContext(ctx).Get(endpointWorkspaces + url.PathEscape(name))
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	ws := &models.Workspace{}
	if err := json.Unmarshal(env.Data, ws); err != nil {
		return nil, fmt.Errorf("decode workspace payload: %w", err)
	}
	return ws, nil
}

// CreateWorkspace creates a named workspace. userID defaults to the
// backend's catch-all user when empty.
func (c *Client) CreateWorkspace(ctx context.Context, name, userID string) (*models.Workspace, error) {
	if userID == "" {
		userID = "default_user"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"workspace_name": name,
			"user_id":        userID,
		}).
		Post(endpointWorkspaces)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	ws := &models.Workspace{}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, ws); err != nil {
			return nil, fmt.Errorf("decode workspace payload: %w", err)
		}
	}
	if ws.Name == "" {
		ws.Name = name
	}
	return ws, nil
}

// DeleteWorkspace removes a workspace and everything in it.
func (c *Client) DeleteWorkspace(ctx context.Context, name string) error {
	resp, err := c.http.R().SetContext(ctx).Delete(endpointWorkspaces + url.PathEscape(name))
	if err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}

	_, err = decodeEnvelope(resp)
	return err
}

// ListWorkspaceFiles returns the file listing of a workspace.
func (c *Client) ListWorkspaceFiles(ctx context.Context, name string) ([]models.WorkspaceFile, error) {
	resp, err := c.http.R().SetContext(ctx).Get(endpointWorkspaces + url.PathEscape(name) + "/files")
	if err != nil {
		return nil, fmt.Errorf("list workspace files: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Workspace string                 `json:"workspace"`
		Files     []models.WorkspaceFile `json:"files"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode files payload: %w", err)
	}
	return payload.Files, nil
}

// GetFileDocIDs returns the doc ids linked to one workspace file.
func (c *Client) GetFileDocIDs(ctx context.Context, name, fileID string) ([]string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(endpointWorkspaces + url.PathEscape(name) + "/" + url.PathEscape(fileID) + "/doc_ids")
	if err != nil {
		return nil, fmt.Errorf("get file doc ids: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var docIDs []string
	if err := json.Unmarshal(env.Data, &docIDs); err != nil {
		return nil, fmt.Errorf("decode doc ids payload: %w", err)
	}
	return docIDs, nil
}
