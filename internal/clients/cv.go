package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CVService resolves submitted document references against the CV store.
type CVService interface {
	// GetCV returns the document descriptor, or nil when the document does
	// not exist or is not readable by a recruiter.
	GetCV(ctx context.Context, cvID string) (*CVDescriptor, error)
}

// CVDescriptor describes a stored CV document.
type CVDescriptor struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

type CVClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCVClient(baseURL string, timeout time.Duration) *CVClient {
	return &CVClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *CVClient) GetCV(ctx context.Context, cvID string) (*CVDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/internal/cv/"+url.PathEscape(cvID), nil)
	if err != nil {
		return nil, fmt.Errorf("create cv service request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call cv service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read cv service response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cv service returned %d: %s", resp.StatusCode, payload)
	}

	var descriptor CVDescriptor
	if err := json.Unmarshal(payload, &descriptor); err != nil {
		return nil, fmt.Errorf("decode cv descriptor: %w", err)
	}
	return &descriptor, nil
}
