package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"boxoffice/entity"
)

// Backend holds the plumbing shared by the box-office backend clients.
type Backend struct {
	baseURL string
	client  *http.Client
}

func NewBackend(baseURL string, client *http.Client) *Backend {
	return &Backend{
		baseURL: baseURL,
		client:  client,
	}
}

// do runs one backend call and decodes the response into out (out may be
// nil). Any status outside wantStatus becomes a *entity.BackendError with
// the raw status and server message preserved.
func (b *Backend) do(ctx context.Context, method, path string, body any, out any, wantStatus ...int) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend call failed: %w", err)
	}
	defer resp.Body.Close()

	if !statusWanted(resp.StatusCode, wantStatus) {
		return backendError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("could not decode response: %w", err)
		}
	}

	return nil
}

func statusWanted(status int, wanted []int) bool {
	if len(wanted) == 0 {
		return status == http.StatusOK
	}
	for _, w := range wanted {
		if status == w {
			return true
		}
	}
	return false
}

func backendError(resp *http.Response) error {
	var serverMessage struct {
		Message string `json:"message"`
	}
	// message body is best effort, the status alone is enough to classify
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&serverMessage)

	return &entity.BackendError{
		StatusCode: resp.StatusCode,
		Message:    serverMessage.Message,
	}
}
