package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StorageClient defines the interface for the binary image store. Images
// are referenced by id; URL resolution and deletion happen here, uploads
// are handled elsewhere.
type StorageClient interface {
	// GetURL resolves an image id to a serving URL. A missing id resolves
	// to an empty URL, not an error.
	GetURL(ctx context.Context, imageID string) (string, error)
	// Delete removes the stored binary for an image id
	Delete(ctx context.Context, imageID string) error
}

type storageClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewStorageClient creates a new binary storage client
func NewStorageClient(baseURL string) StorageClient {
	return &storageClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type storageURLResponse struct {
	URL string `json:"url"`
}

// GetURL resolves an image id to a serving URL
func (c *storageClient) GetURL(ctx context.Context, imageID string) (string, error) {
	if imageID == "" {
		return "", nil
	}

	url := fmt.Sprintf("%s/api/v1/objects/%s/url", c.baseURL, imageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call storage service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("storage service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed storageURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode storage response: %w", err)
	}
	return parsed.URL, nil
}

// Delete removes the stored binary for an image id
func (c *storageClient) Delete(ctx context.Context, imageID string) error {
	if imageID == "" {
		return nil
	}

	url := fmt.Sprintf("%s/api/v1/objects/%s", c.baseURL, imageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call storage service: %w", err)
	}
	defer resp.Body.Close()

	// Deleting an already-missing object is fine
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("storage service returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
