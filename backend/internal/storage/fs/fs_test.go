package fs

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates nested directories", func(t *testing.T) {
		nestedPath := filepath.Join(t.TempDir(), "a", "b", "c")

		storage, err := New(nestedPath)

		require.NoError(t, err)
		assert.NotNil(t, storage)
		_, err = os.Stat(nestedPath)
		assert.NoError(t, err)
	})

	t.Run("cleans path", func(t *testing.T) {
		tmpDir := t.TempDir()

		storage, err := New(filepath.Join(tmpDir, "media", "..", "media"))

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "media"), storage.rootPath)
	})
}

func TestSaveFile(t *testing.T) {
	t.Run("saves file under folder with a generated name", func(t *testing.T) {
		storage, err := New(t.TempDir())
		require.NoError(t, err)
		content := []byte("test file content")

		path, err := storage.SaveFile(bytes.NewReader(content), "cards", "Preview.PNG")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, "cards/"), path)
		assert.True(t, strings.HasSuffix(path, ".png"), path)
		assert.NotContains(t, path, "Preview")

		saved, err := os.ReadFile(filepath.Join(storage.rootPath, filepath.FromSlash(path)))
		require.NoError(t, err)
		assert.Equal(t, content, saved)
	})

	t.Run("two saves never collide", func(t *testing.T) {
		storage, err := New(t.TempDir())
		require.NoError(t, err)

		a, err := storage.SaveFile(strings.NewReader("a"), "cards", "x.jpg")
		require.NoError(t, err)
		b, err := storage.SaveFile(strings.NewReader("b"), "cards", "x.jpg")
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("folder cannot escape the root", func(t *testing.T) {
		root := t.TempDir()
		storage, err := New(root)
		require.NoError(t, err)

		path, err := storage.SaveFile(strings.NewReader("x"), "../../etc", "x.png")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(path, "etc/"), path)
		_, err = os.Stat(filepath.Join(root, filepath.FromSlash(path)))
		assert.NoError(t, err)
	})

	t.Run("empty folder is rejected", func(t *testing.T) {
		storage, err := New(t.TempDir())
		require.NoError(t, err)

		_, err = storage.SaveFile(strings.NewReader("x"), "", "x.png")

		assert.Error(t, err)
	})
}

func TestReadAndDelete(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)
	path, err := storage.SaveFile(strings.NewReader("payload"), "cards", "a.gif")
	require.NoError(t, err)

	rc, err := storage.Read(path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	// The "storage/" prefix used in URLs is accepted too.
	assert.True(t, storage.Owns("storage/"+path))

	require.NoError(t, storage.DeleteFile(path))
	_, err = storage.Read(path)
	assert.Error(t, err)

	// Deleting twice is fine.
	assert.NoError(t, storage.DeleteFile(path))
}

func TestOwns(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"cards/a.png", true},
		{"storage/cards/a.png", true},
		{"https://cdn.example.com/a.png", false},
		{"/etc/passwd", false},
		{"../secret", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, storage.Owns(tt.path), tt.path)
	}
	assert.NoError(t, storage.DeleteFile("../secret"))
}

func TestHandler(t *testing.T) {
	storage, err := New(t.TempDir())
	require.NoError(t, err)
	path, err := storage.SaveFile(strings.NewReader("img"), "cards", "a.png")
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	storage.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/"+path, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "img", rr.Body.String())
}
