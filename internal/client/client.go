// Package client submits notes or PDFs to the flashcard server and holds the
// presentation state of one user session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"flashmind/internal/flashcard"
	"flashmind/internal/httputil"
)

// ErrUnexpectedResponse is returned when a successful response is not a JSON array.
var ErrUnexpectedResponse = errors.New("unexpected response format from backend")

// Input is one generation request: pasted text or a PDF. The PDF wins when
// both are set.
type Input struct {
	Text     string
	PDF      []byte
	Filename string
}

// Blank reports whether there is nothing to submit.
func (in Input) Blank() bool {
	return len(in.PDF) == 0 && strings.TrimSpace(in.Text) == ""
}

// Generator turns an Input into flashcards.
type Generator interface {
	Generate(ctx context.Context, in Input) ([]flashcard.Flashcard, error)
}

// StatusError carries a non-2xx answer from the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("the backend responded with status %d", e.StatusCode)
	}
	return e.Message
}

// HTTPClient calls POST /generate on a flashcard server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a client for the server at baseURL. A nil hc uses
// http.DefaultClient, which has no timeout.
func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Generate posts the input as multipart (PDF) or JSON (text) and decodes the
// returned cards.
func (c *HTTPClient) Generate(ctx context.Context, in Input) ([]flashcard.Flashcard, error) {
	body, contentType, err := encodeInput(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post /generate: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp httputil.ErrorResponse
		_ = json.Unmarshal(raw, &errResp)
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	var cards []flashcard.Flashcard
	if err := json.Unmarshal(raw, &cards); err != nil || cards == nil {
		return nil, ErrUnexpectedResponse
	}
	return cards, nil
}

func encodeInput(in Input) (io.Reader, string, error) {
	if len(in.PDF) == 0 {
		raw, err := json.Marshal(map[string]string{"text": in.Text})
		if err != nil {
			return nil, "", fmt.Errorf("encode text: %w", err)
		}
		return bytes.NewReader(raw), "application/json", nil
	}

	filename := in.Filename
	if filename == "" {
		filename = "upload.pdf"
	}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="pdf"; filename=%q`, filename)}
	h["Content-Type"] = []string{"application/pdf"}
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create pdf part: %w", err)
	}
	if _, err := part.Write(in.PDF); err != nil {
		return nil, "", fmt.Errorf("write pdf part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, mw.FormDataContentType(), nil
}
