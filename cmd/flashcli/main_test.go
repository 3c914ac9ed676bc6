package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashmind/internal/client"
)

func cardServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"question":"What is DNA?","answer":"Genetic material"}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o600))

	tests := []struct {
		name       string
		opts       options
		stdin      string
		want       string
		wantNotice string
		wantErr    error
		wantCalls  int
	}{
		{
			name:       "text hides answers",
			opts:       options{text: "DNA carries genes"},
			want:       "Card 1\nQ: What is DNA?\n",
			wantNotice: "[success] Generated 1 flashcards.\n",
			wantCalls:  1,
		},
		{
			name:       "copy prints the transcript",
			opts:       options{text: "DNA carries genes", copyAll: true},
			want:       "Card 1\nQ: What is DNA?\nA: Genetic material\n",
			wantCalls:  1,
		},
		{
			name:       "stdin with reveal",
			opts:       options{text: "-", reveal: true},
			stdin:      "DNA carries genes",
			want:       "Card 1\nQ: What is DNA?\nA: Genetic material\n",
			wantCalls:  1,
		},
		{
			name:       "pdf upload",
			opts:       options{pdfPath: pdfPath},
			want:       "Card 1\nQ: What is DNA?\n",
			wantCalls:  1,
		},
		{
			name:       "nothing to submit",
			opts:       options{text: "  "},
			wantErr:    client.ErrNothingToSubmit,
			wantNotice: "[error] Add a PDF or paste some notes before generating.\n",
			wantCalls:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int
			srv := cardServer(t, &calls)
			tt.opts.server = srv.URL
			tt.opts.logLevel = "error"

			var out, errOut bytes.Buffer
			err := run(context.Background(), tt.opts, strings.NewReader(tt.stdin), &out, &errOut)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, out.String())
			}
			if tt.wantNotice != "" {
				assert.Equal(t, tt.wantNotice, errOut.String())
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}
