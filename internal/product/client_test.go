package product

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"name":"sofa-x","width":1.8,"height":0.7,"depth":0.9}`))
	}))
	defer srv.Close()

	info, err := NewClient(srv.URL).Lookup(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.ID)
	assert.Equal(t, "sofa-x", info.Name)
	assert.Equal(t, float32(1.8), info.Dimensions().Width)
}

func TestLookupNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Lookup(context.Background(), 7)
	assert.Error(t, err)
}

func TestLookupMalformedBodyIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Lookup(context.Background(), 7)
	assert.Error(t, err)
}

func TestLookupIncompleteMetadataIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":7,"name":"","width":0,"height":0,"depth":0}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Lookup(context.Background(), 7)
	assert.Error(t, err)
}
