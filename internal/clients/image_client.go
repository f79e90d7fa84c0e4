package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AinaRoxane/Wallet/internal/config"
)

// ImageUploader pushes an image to the external hosting service and
// returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

type imageClient struct {
	uploadURL    string
	uploadPreset string
	httpClient   *http.Client
}

func NewImageClient(cfg config.MediaConfig) ImageUploader {
	return &imageClient{
		uploadURL:    cfg.UploadURL,
		uploadPreset: cfg.UploadPreset,
		httpClient: &http.Client{
			Timeout: cfg.UploadTimeout,
		},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file as an unsigned multipart upload. The hosting
// service answers with the CDN URL in secure_url.
func (c *imageClient) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := writer.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", fmt.Errorf("failed to write upload preset: %w", err)
	}
	// A random public id keeps repeated uploads of the same filename from
	// overwriting each other.
	if err := writer.WriteField("public_id", uuid.NewString()); err != nil {
		return "", fmt.Errorf("failed to write public id: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error.Message != "" {
			return "", fmt.Errorf("upload rejected: %s", result.Error.Message)
		}
		return "", fmt.Errorf("upload rejected with status %d", resp.StatusCode)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}

	logrus.WithField("filename", filename).Debug("Image uploaded")
	return result.SecureURL, nil
}
