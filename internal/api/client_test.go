package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadSendsMultipartFileField(t *testing.T) {
	var gotName string
	var gotBytes []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotName = header.Filename
		buf, err := io.ReadAll(file)
		require.NoError(t, err)
		gotBytes = buf
		json.NewEncoder(w).Encode(map[string]string{"filename": header.Filename, "status": "Ingested Successfully"})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	err := client.Upload(context.Background(), "paper.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	require.Equal(t, "paper.pdf", gotName)
	require.Equal(t, []byte("%PDF-1.4"), gotBytes)
}

func TestUploadSurfacesServiceDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Only PDF files are allowed"})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	err := client.Upload(context.Background(), "paper.pdf", []byte("x"))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadRequest, statusErr.Code)
	require.Equal(t, "Only PDF files are allowed", statusErr.Detail)
	require.True(t, statusErr.IsClientError())
	require.False(t, statusErr.IsServerError())
}

func TestChatSendsQuestionAndBoundedHistory(t *testing.T) {
	var got struct {
		Question string     `json:"question"`
		History  [][]string `json:"history"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"answer": "It is about widgets."})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	history := [][2]string{
		{"ai", "Hello! I've read your document. Ask me anything."},
		{"human", "earlier question"},
	}
	answer, err := client.Chat(context.Background(), "What is this about?", history)
	require.NoError(t, err)
	require.Equal(t, "It is about widgets.", answer)
	require.Equal(t, "What is this about?", got.Question)
	require.Equal(t, [][]string{
		{"ai", "Hello! I've read your document. Ask me anything."},
		{"human", "earlier question"},
	}, got.History)
}

func TestChatAcceptsEmptyAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"answer": ""})
	}))
	defer server.Close()

	// The server was reached and answered; an empty string must not be
	// reported as a failure of any class.
	client := New(Config{BaseURL: server.URL})
	answer, err := client.Chat(context.Background(), "q", nil)
	require.NoError(t, err)
	require.Empty(t, answer)
}

func TestChatClassifiesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "engine exploded"})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.Chat(context.Background(), "q", nil)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.True(t, statusErr.IsServerError())
	require.Equal(t, "engine exploded", statusErr.Error())
}

func TestChatTransportFailureHasNoStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := New(Config{BaseURL: server.URL})
	_, err := client.Chat(context.Background(), "q", nil)
	require.Error(t, err)
	var statusErr *StatusError
	require.False(t, errors.As(err, &statusErr), "transport failures carry no status")
}

func TestHealthReportsReadiness(t *testing.T) {
	ready := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]bool{"ready": ready})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	got, err := client.Health(context.Background())
	require.NoError(t, err)
	require.False(t, got)

	ready = true
	got, err = client.Health(context.Background())
	require.NoError(t, err)
	require.True(t, got)
}

func TestHealthTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(Config{BaseURL: server.URL})
	got, err := client.Health(context.Background())
	require.Error(t, err)
	require.False(t, got)
}
