package upload

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const tinyPNG = "data:image/png;base64,iVBORw0KGgo="

func TestUpload(t *testing.T) {
	var gotKey, gotImage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm failed: %v", err)
		}
		gotKey = r.FormValue("key")
		gotImage = r.FormValue("image")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"url":"https://img.example/abc.jpg"},"success":true}`))
	}))
	defer server.Close()

	client := New(Config{URL: server.URL, APIKey: "test-key"})

	url, err := client.Upload(context.Background(), tinyPNG)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if url != "https://img.example/abc.jpg" {
		t.Errorf("Unexpected url: %s", url)
	}
	if gotKey != "test-key" {
		t.Errorf("Expected API key from config, got %q", gotKey)
	}
	if gotImage != "iVBORw0KGgo=" {
		t.Errorf("Expected stripped base64 payload, got %q", gotImage)
	}
}

func TestUploadInvalidImage(t *testing.T) {
	client := New(Config{URL: "http://localhost:0", APIKey: "k"})

	for _, payload := range []string{"", "not-a-data-uri", "data:text/plain;base64,aGk=", "data:image/png;base64"} {
		_, err := client.Upload(context.Background(), payload)
		if !errors.Is(err, ErrInvalidImage) {
			t.Errorf("Upload(%q): expected ErrInvalidImage, got %v", payload, err)
		}
	}
}

func TestUploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(Config{URL: server.URL, APIKey: "k"})
	if _, err := client.Upload(context.Background(), tinyPNG); err == nil {
		t.Error("Expected error for non-200 media host response")
	}
}

func TestUploadUnconfigured(t *testing.T) {
	client := New(Config{})
	if _, err := client.Upload(context.Background(), tinyPNG); err == nil {
		t.Error("Expected error when media host is not configured")
	}
}
