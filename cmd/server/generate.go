package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"flashmind/internal/app"
	"flashmind/internal/flashcard"
	"flashmind/internal/httputil"
)

const (
	msgGenerationFailed = "Generation failed"
	msgSchemaMismatch   = "Generation failed: flashcards did not match the expected format"
	msgNoInput          = "text or pdf is required"

	// Allowance for multipart boundaries and headers on top of the file itself.
	multipartOverhead = 1 << 20
)

// pdfFields are the multipart fields accepted for the upload, in order.
var pdfFields = []string{"pdf", "file"}

type generateRequest struct {
	Text string `json:"text" validate:"required"`
}

// generationInput is either pasted text or an uploaded PDF. A PDF wins when
// both are present.
type generationInput struct {
	Text     string
	PDF      []byte
	Filename string
}

type requestError struct {
	status  int
	message string
	err     error
}

func (e *requestError) Error() string { return e.message }

func (e *requestError) Unwrap() error { return e.err }

func badRequest(message string, err error) *requestError {
	return &requestError{status: http.StatusBadRequest, message: message, err: err}
}

func generateHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// Validate size before reading the body
		if r.ContentLength > maxFileSize+multipartOverhead {
			httputil.Fail(deps.Log, w, r, fmt.Sprintf("request too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxFileSize+multipartOverhead)

		in, err := readInput(r, maxFileSize)
		if err != nil {
			var reqErr *requestError
			if errors.As(err, &reqErr) {
				httputil.Fail(deps.Log, w, r, reqErr.message, reqErr.err, reqErr.status)
				return
			}
			httputil.Fail(deps.Log, w, r, msgGenerationFailed, err, http.StatusInternalServerError)
			return
		}

		log := deps.Log
		text := in.Text
		if in.PDF != nil {
			log = log.With("filename", in.Filename, "pdf_bytes", len(in.PDF))
			text, err = deps.Extractor.Extract(in.PDF)
			if err != nil {
				httputil.Fail(log, w, r, msgGenerationFailed, err, http.StatusInternalServerError)
				return
			}
			log.InfoContext(ctx, "pdf text extracted", "chars", len(text))
		}

		cards, err := deps.Generator.Generate(ctx, text)
		switch {
		case errors.Is(err, flashcard.ErrEmptyInput):
			httputil.Fail(log, w, r, msgNoInput, err, http.StatusBadRequest)
			return
		case errors.Is(err, flashcard.ErrSchemaMismatch):
			httputil.Fail(log, w, r, msgSchemaMismatch, err, http.StatusInternalServerError)
			return
		case err != nil:
			httputil.Fail(log, w, r, msgGenerationFailed, err, http.StatusInternalServerError)
			return
		}

		httputil.WriteJSON(w, http.StatusOK, cards)
	}
}

// readInput decodes a JSON {"text"} body or a multipart form carrying a PDF
// (or a text field).
func readInput(r *http.Request, maxFileSize int64) (generationInput, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil && r.Header.Get("Content-Type") != "" {
		return generationInput{}, badRequest("invalid content type", err)
	}

	switch mediaType {
	case "multipart/form-data":
		return readMultipart(r, maxFileSize)
	case "application/json", "":
		return readJSON(r)
	default:
		return generationInput{}, &requestError{
			status:  http.StatusUnsupportedMediaType,
			message: "unsupported content type (use application/json or multipart/form-data)",
		}
	}
}

func readJSON(r *http.Request) (generationInput, error) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return generationInput{}, badRequest(msgNoInput, err)
		}
		return generationInput{}, badRequest("invalid payload", err)
	}
	if err := httputil.Validator.Struct(&req); err != nil {
		return generationInput{}, badRequest(msgNoInput, err)
	}
	return generationInput{Text: req.Text}, nil
}

func readMultipart(r *http.Request, maxFileSize int64) (generationInput, error) {
	if err := r.ParseMultipartForm(maxFileSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return generationInput{}, badRequest(fmt.Sprintf("file too large (max %d bytes)", maxFileSize), err)
		}
		return generationInput{}, badRequest("invalid multipart form", err)
	}

	for _, field := range pdfFields {
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return generationInput{}, badRequest("invalid file upload", err)
		}
		defer file.Close()
		return readPDF(file, header, maxFileSize)
	}

	text := r.FormValue("text")
	if strings.TrimSpace(text) == "" {
		return generationInput{}, badRequest(msgNoInput, nil)
	}
	return generationInput{Text: text}, nil
}

func readPDF(file multipart.File, header *multipart.FileHeader, maxFileSize int64) (generationInput, error) {
	if header.Size > maxFileSize {
		return generationInput{}, badRequest(fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil)
	}

	// If Content-Type is missing or generic, detect from filename
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if strings.ToLower(filepath.Ext(header.Filename)) == ".pdf" {
			contentType = "application/pdf"
		}
	}
	if contentType != "application/pdf" {
		return generationInput{}, badRequest("unsupported file type (only PDF allowed)", nil)
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return generationInput{}, fmt.Errorf("failed to read file: %w", err)
	}
	if len(content) == 0 {
		return generationInput{}, badRequest(msgNoInput, nil)
	}
	return generationInput{PDF: content, Filename: header.Filename}, nil
}
