package assets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderClientHasDeadline(t *testing.T) {
	l := NewLoader("http://cdn.test", t.TempDir())
	if l.http.Timeout <= 0 {
		t.Fatal("download client must carry a deadline")
	}
}

func TestDownloadWritesCacheFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("glb-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	l := NewLoader(srv.URL, dir)

	local := filepath.Join(dir, "7.glb")
	if err := l.download(srv.URL+"/products/7/model.glb", local); err != nil {
		t.Fatalf("download: %v", err)
	}

	data, err := os.ReadFile(local)
	if err != nil {
		t.Fatalf("read cache file: %v", err)
	}
	if string(data) != "glb-bytes" {
		t.Errorf("cache file = %q", data)
	}
	if _, err := os.Stat(local + ".part"); !os.IsNotExist(err) {
		t.Error("temp file should be gone after a finished download")
	}
}

func TestDownloadNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	l := NewLoader(srv.URL, dir)

	local := filepath.Join(dir, "404.glb")
	if err := l.download(srv.URL+"/products/404/model.glb", local); err == nil {
		t.Fatal("expected error for missing model")
	}
	if _, err := os.Stat(local); !os.IsNotExist(err) {
		t.Error("no cache file should exist after a failed download")
	}
}
