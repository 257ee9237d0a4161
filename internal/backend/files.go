package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/models"
)

// UploadFile sends the candidate's bytes as multipart form data. The
// server may rename the file (sanitization, .webp -> .png), so callers
// must use the returned ServerName for every later stage.
func (c *Client) UploadFile(ctx context.Context, workspace, filename, mimeType string, data []byte) (*models.StoredAsset, error) {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", filename, mimeType, bytes.NewReader(data)).
		SetFormData(map[string]string{"workspace_name": workspace}).
		Post(endpointFileUpload)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var payload struct {
		UploadedFiles []models.StoredAsset `json:"uploaded_files"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode upload payload: %w", err)
	}
	if len(payload.UploadedFiles) == 0 {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    "backend reported no uploaded files",
		}
	}

	asset := payload.UploadedFiles[0]
	return &asset, nil
}

// DownloadFromURL has the backend fetch a remote resource into the
// workspace. The response reports the fetched file under "name" rather
// than "filename", and already_exists rides at the envelope's top level.
func (c *Client) DownloadFromURL(ctx context.Context, workspace, rawURL string) (*models.StoredAsset, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"url":            rawURL,
			"workspace_name": workspace,
		}).
		Post(endpointFileDownload)
	if err != nil {
		return nil, fmt.Errorf("download from url: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Name      string `json:"name"`
		SizeHuman string `json:"size_human"`
		MimeType  string `json:"mime_type"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode download payload: %w", err)
	}

	return &models.StoredAsset{
		ServerName:    payload.Name,
		SizeHuman:     payload.SizeHuman,
		MimeType:      payload.MimeType,
		AlreadyExists: env.AlreadyExists,
	}, nil
}
