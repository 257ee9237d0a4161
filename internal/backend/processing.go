package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sudhanshu-raj/mutli-model-rag-agent/internal/models"
)

type processRequest struct {
	FilePath      string                `json:"file_path"`
	WorkspaceName string                `json:"workspace_name"`
	ImageMetadata *models.ImageMetadata `json:"image_metadata,omitempty"`
}

// docIDList accepts both shapes the backend emits for doc_id: a single
// scalar or an array. This is the only place the shape is inspected;
// downstream code always sees a slice.
type docIDList []string

func (d *docIDList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*d = docIDList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("doc_id is neither string nor array: %w", err)
	}
	*d = docIDList(many)
	return nil
}

// ProcessFile submits a stored file for content processing. meta is only
// sent for image assets.
func (c *Client) ProcessFile(ctx context.Context, workspace, filePath string, meta *models.ImageMetadata) (*models.ProcessingResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(processRequest{
			FilePath:      filePath,
			WorkspaceName: workspace,
			ImageMetadata: meta,
		}).
		Post(endpointProcessFile)
	if err != nil {
		return nil, fmt.Errorf("process file: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return nil, err
	}

	var payload struct {
		DocID docIDList `json:"doc_id"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode process payload: %w", err)
	}
	if len(payload.DocID) == 0 {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    "processing returned no doc ids",
		}
	}

	return &models.ProcessingResult{DocIDs: payload.DocID}, nil
}

// GenerateImageDescription asks the backend to describe the image stored
// at imagePath ("workspace/serverName").
func (c *Client) GenerateImageDescription(ctx context.Context, imagePath string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("image_path", imagePath).
		Get(endpointImageDescription)
	if err != nil {
		return "", fmt.Errorf("generate image description: %w", err)
	}

	env, err := decodeEnvelope(resp)
	if err != nil {
		return "", err
	}

	var description string
	if err := json.Unmarshal(env.Data, &description); err != nil {
		return "", fmt.Errorf("decode description payload: %w", err)
	}
	return description, nil
}
