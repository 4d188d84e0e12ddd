package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func TestEnsureSectionFindsExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/me/onenote/notebooks" && r.Method == http.MethodGet:
			if !strings.Contains(r.URL.Query().Get("$filter"), "Inkpad") {
				t.Errorf("notebook filter missing name: %s", r.URL.RawQuery)
			}
			fmt.Fprint(w, `{"value":[{"id":"nb-1","displayName":"Inkpad"}]}`)
		case r.URL.Path == "/me/onenote/sections" && r.Method == http.MethodGet:
			fmt.Fprint(w, `{"value":[{"id":"sec-1","displayName":"Quick Notes"}]}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	id, err := c.EnsureSection(context.Background(), "Inkpad", "Quick Notes")
	if err != nil {
		t.Fatalf("ensure section: %v", err)
	}
	if id != "sec-1" {
		t.Fatalf("expected sec-1, got %q", id)
	}
}

func TestEnsureSectionCreatesMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			fmt.Fprint(w, `{"value":[]}`)
		case r.URL.Path == "/me/onenote/notebooks" && r.Method == http.MethodPost:
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["displayName"] != "Fresh" {
				t.Errorf("unexpected notebook name %q", body["displayName"])
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":"nb-new"}`)
		case r.URL.Path == "/me/onenote/notebooks/nb-new/sections" && r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":"sec-new"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	id, err := c.EnsureSection(context.Background(), "Fresh", "Notes")
	if err != nil {
		t.Fatalf("ensure section: %v", err)
	}
	if id != "sec-new" {
		t.Fatalf("expected sec-new, got %q", id)
	}
}

func TestCreatePageMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me/onenote/sections/sec-1/pages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.MultipartForm.Value["Presentation"]; len(got) != 1 || !strings.Contains(got[0], "<html") {
			t.Errorf("presentation part missing or malformed: %v", got)
		}
		if _, ok := r.MultipartForm.Value[ImagePartName]; !ok {
			if _, ok := r.MultipartForm.File[ImagePartName]; !ok {
				t.Errorf("image part missing")
			}
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	err := c.CreatePage(context.Background(), "sec-1", "<html><body>hi</body></html>", []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
}

func TestCreatePageSurfacesErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":"AccessDenied"}}`)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	err := c.CreatePage(context.Background(), "sec-1", "<html/>", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "AccessDenied") {
		t.Fatalf("error payload not surfaced: %v", err)
	}
}

func TestTokenCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	cache := newTokenCache(path)

	if tok, err := cache.load(); err != nil || tok != nil {
		t.Fatalf("expected empty cache, got %v, %v", tok, err)
	}

	tok := &oauth2.Token{AccessToken: "abc", RefreshToken: "def", TokenType: "Bearer"}
	if err := cache.store(tok); err != nil {
		t.Fatalf("store: %v", err)
	}
	back, err := cache.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back == nil || back.AccessToken != "abc" || back.RefreshToken != "def" {
		t.Fatalf("token changed across cache: %+v", back)
	}
}
