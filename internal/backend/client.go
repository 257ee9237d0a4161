package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Endpoints exposed by the RAG backend's Flask API.
const (
	endpointFileUpload       = "/files/upload"
	endpointFileDownload     = "/files/download"
	endpointProcessFile      = "/process_file/process"
	endpointImageDescription = "/process_file/generate_image_description"
	endpointWorkspaces       = "/workspaces/"
)

// Paths that must not carry the secret key header.
var authExcludedPaths = []string{"/auth/validate"}

// Client talks to the backend over HTTP. Every response is wrapped in the
// same {status, data | error} envelope; this client is the only place that
// envelope is decoded.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient builds a client for the given base URL. The secret key is
// injected into every request except the auth endpoints; timeouts are
// owned here, not by the pipeline.
func NewClient(baseURL, secretKey string, timeout time.Duration, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if secretKey == "" {
			return nil
		}
		for _, excluded := range authExcludedPaths {
			if strings.Contains(req.URL, excluded) {
				return nil
			}
		}
		req.SetHeader("X-Secret-Key", secretKey)
		return nil
	})

	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("backend call",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", resp.Time()))
		return nil
	})

	return &Client{http: httpClient, logger: logger}
}

// APIError is the backend's structured failure signal. Type carries the
// server's error_type and is surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Type != "" {
		return e.Type
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// ErrorType returns the backend's error_type, empty when none was sent.
func (e *APIError) ErrorType() string { return e.Type }

// envelope is the uniform response wrapper. On upload failures the
// per-file error list replaces the top-level error_type.
type envelope struct {
	Status        string          `json:"status"`
	Message       string          `json:"message"`
	ErrorType     string          `json:"error_type"`
	AlreadyExists bool            `json:"already_exists"`
	Data          json.RawMessage `json:"data"`
	Errors        []entryError    `json:"errors"`
}

type entryError struct {
	Filename  string `json:"filename"`
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}

// decodeEnvelope parses the body and converts error responses into
// *APIError. The first entry of a structured error list wins when the top
// level carries no error_type.
func decodeEnvelope(resp *resty.Response) (*envelope, error) {
	env := &envelope{}
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), env); err != nil {
			if resp.IsError() {
				return nil, &APIError{
					StatusCode: resp.StatusCode(),
					Message:    http.StatusText(resp.StatusCode()),
				}
			}
			return nil, fmt.Errorf("decode backend response: %w", err)
		}
	}

	if resp.IsError() || env.Status == "error" {
		apiErr := &APIError{
			StatusCode: resp.StatusCode(),
			Type:       env.ErrorType,
			Message:    env.Message,
		}
		if apiErr.Type == "" && len(env.Errors) > 0 {
			apiErr.Type = env.Errors[0].ErrorType
			if apiErr.Message == "" {
				apiErr.Message = env.Errors[0].Error
			}
		}
		return nil, apiErr
	}
	return env, nil
}
