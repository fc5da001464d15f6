package cloudexport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
)

func newFakeStorage(t *testing.T, status int) (*storage.Service, *[]string) {
	t.Helper()
	var uploads []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Method != http.MethodPost || !strings.Contains(r.URL.Path, "/b/walls/o") {
			http.NotFound(w, r)
			return
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"error":{"code":403,"message":"forbidden"}}`)
			return
		}
		uploads = append(uploads, string(body))
		w.Header().Set("Content-Type", "application/json")
		name := "exports/ai_wallpaper_cat.jpg"
		_ = json.NewEncoder(w).Encode(map[string]any{"bucket": "walls", "name": name})
	}))
	t.Cleanup(srv.Close)

	svc, err := storage.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return svc, &uploads
}

func TestExport(t *testing.T) {
	svc, uploads := newFakeStorage(t, http.StatusOK)
	e := New(svc, "walls", "/exports/")

	uri, err := e.Export(context.Background(), "ai_wallpaper_cat.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "gs://walls/exports/ai_wallpaper_cat.jpg", uri)
	require.Len(t, *uploads, 1)
	assert.Contains(t, (*uploads)[0], "jpeg-bytes")
	assert.Contains(t, (*uploads)[0], "exports/ai_wallpaper_cat.jpg")
}

func TestExport_UpstreamError(t *testing.T) {
	svc, _ := newFakeStorage(t, http.StatusForbidden)
	e := New(svc, "walls", "")

	_, err := e.Export(context.Background(), "x.jpg", "image/jpeg", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload x.jpg")
}

func TestExport_Empty(t *testing.T) {
	e := New(nil, "walls", "")
	_, err := e.Export(context.Background(), "x.jpg", "image/jpeg", nil)
	assert.Error(t, err)
}

func TestNewFromJSON_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewFromJSON(ctx, nil, "walls", "")
	assert.Error(t, err)

	_, err = NewFromJSON(ctx, []byte(`{"type":"service_account"}`), "", "")
	assert.Error(t, err)

	_, err = NewFromJSON(ctx, []byte(`not json`), "walls", "")
	assert.Error(t, err)
}

func TestNewFromFile_Missing(t *testing.T) {
	_, err := NewFromFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"), "walls", "")
	assert.Error(t, err)
}

func TestNewFromFile_Live(t *testing.T) {
	credPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	bucket := os.Getenv("EXPORT_BUCKET")
	if credPath == "" || bucket == "" {
		t.Skip("Set GOOGLE_APPLICATION_CREDENTIALS and EXPORT_BUCKET to run this test")
	}
	if _, err := NewFromFile(context.Background(), credPath, bucket, "test"); err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
}
