package audio_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/juniorlingo/english-agent/internal/audio"
	"github.com/juniorlingo/english-agent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audio")
	store, err := audio.NewLocalStore(dir, "/audio/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "lesson_1.mp3", []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, "/audio/lesson_1.mp3", url)

	_, err = store.Save(context.Background(), "lesson_1.mp3", []byte("second"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "lesson_1.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestLocalStoreRejectsPaths(t *testing.T) {
	store, err := audio.NewLocalStore(t.TempDir(), audio.URLPrefix)
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.mp3", "nested/lesson.mp3", ".hidden"} {
		_, err := store.Save(context.Background(), name, []byte("x"))
		assert.Error(t, err, name)
	}
}

func TestNewStoreDefaultsToLocal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audio")
	store, localDir, err := audio.NewStore(context.Background(), config.AudioConfig{Dir: dir})
	require.NoError(t, err)

	assert.IsType(t, &audio.LocalStore{}, store)
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, localDir)
	assert.DirExists(t, dir)
}

func TestS3StoreSave(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store, localDir, err := audio.NewStore(context.Background(), config.AudioConfig{
		S3Bucket:          "lesson-audio",
		PublicBaseURL:     "https://cdn.example.com/audio/",
		S3EndpointURL:     server.URL,
		S3AccessKeyID:     "test",
		S3SecretAccessKey: "test",
		S3Region:          "us-east-1",
	})
	require.NoError(t, err)
	assert.Empty(t, localDir)

	url, err := store.Save(context.Background(), "lesson_7.mp3", []byte("mp3 bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/audio/lesson_7.mp3", url)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/lesson-audio/lesson_7.mp3", path)
}
