package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/datasets/d1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Write([]byte(`{"data": {"id": "d1", "name": "train"}}`))
	}))
	defer server.Close()

	c, err := New(Options{BaseURL: server.URL, Token: "tok"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), "/datasets/d1", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.ID != "d1" || out.Name != "train" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("unexpected page %q", got)
		}
		w.Write([]byte(`{"data": [{"id": "i1"}, {"id": "i2"}], "total": 42}`))
	}))
	defer server.Close()

	c, _ := New(Options{BaseURL: server.URL, Token: "tok"})

	var out []struct {
		ID string `json:"id"`
	}
	total, err := c.List(context.Background(), "/items", url.Values{"page": {"2"}}, &out)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 42 || len(out) != 2 {
		t.Fatalf("total = %d, len = %d", total, len(out))
	}
}

func TestClient_PlatformError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"code": "404", "message": "dataset not found"}}`))
	}))
	defer server.Close()

	c, _ := New(Options{BaseURL: server.URL, Token: "tok"})

	err := c.Get(context.Background(), "/datasets/absent", nil)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	var perr *PlatformError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PlatformError, got %T", err)
	}
	if perr.Code != "404" || perr.Message != "dataset not found" {
		t.Fatalf("unexpected error payload: %+v", perr)
	}
	if IsBadRequest(err) {
		t.Error("404 must not classify as bad request")
	}
}

func TestClient_PlatformErrorPlainBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("malformed request"))
	}))
	defer server.Close()

	c, _ := New(Options{BaseURL: server.URL, Token: "tok"})

	err := c.Post(context.Background(), "/datasets", map[string]string{"name": ""}, nil)
	if !IsBadRequest(err) {
		t.Fatalf("expected bad-request, got %v", err)
	}
	var perr *PlatformError
	errors.As(err, &perr)
	if perr.Message != "malformed request" {
		t.Fatalf("unexpected message %q", perr.Message)
	}
}

func TestClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "train" {
			t.Errorf("unexpected body: %v", body)
		}
		w.Write([]byte(`{"data": {"id": "d1"}}`))
	}))
	defer server.Close()

	c, _ := New(Options{BaseURL: server.URL, Token: "tok"})

	var out struct {
		ID string `json:"id"`
	}
	if err := c.Post(context.Background(), "/datasets", map[string]string{"name": "train"}, &out); err != nil {
		t.Fatalf("post: %v", err)
	}
	if out.ID != "d1" {
		t.Fatalf("unexpected id %q", out.ID)
	}
}

func TestClient_Upload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("remote_path"); got != "/train/cat.jpg" {
			t.Errorf("unexpected remote_path %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "cat.jpg" {
			t.Errorf("unexpected filename %q", header.Filename)
		}
		w.Write([]byte(`{"data": {"id": "i1"}}`))
	}))
	defer server.Close()

	c, _ := New(Options{BaseURL: server.URL, Token: "tok"})

	var out struct {
		ID string `json:"id"`
	}
	err := c.Upload(context.Background(), "/items", "cat.jpg",
		strings.NewReader("jpeg-bytes"),
		map[string]string{"remote_path": "/train/cat.jpg"}, &out)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if out.ID != "i1" {
		t.Fatalf("unexpected id %q", out.ID)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrEmptyBaseURL) {
		t.Fatalf("expected ErrEmptyBaseURL, got %v", err)
	}
}

func TestCredentials_TokenSource(t *testing.T) {
	// Статический токен — без TokenSource.
	ts, err := Credentials{Token: "tok"}.TokenSource(context.Background())
	if err != nil || ts != nil {
		t.Fatalf("static token: ts=%v err=%v", ts, err)
	}

	// Client credentials — возвращается источник.
	ts, err = Credentials{ClientID: "id", ClientSecret: "secret", TokenURL: "http://auth/token"}.
		TokenSource(context.Background())
	if err != nil || ts == nil {
		t.Fatalf("client credentials: ts=%v err=%v", ts, err)
	}

	// Пустые credentials — ошибка.
	if _, err := (Credentials{}).TokenSource(context.Background()); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}
