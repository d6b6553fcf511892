package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	name := objectName("photo.PNG")
	require.True(t, strings.HasPrefix(name, "posts/"))
	assert.True(t, strings.HasSuffix(name, ".png"), "extension is kept, lowercased: %s", name)

	base := strings.TrimSuffix(strings.TrimPrefix(name, "posts/"), ".png")
	_, err := uuid.Parse(base)
	assert.NoError(t, err, "object name must be a uuid, got %s", base)

	// nothing of the client path survives except the extension
	assert.NotContains(t, objectName("../../etc/passwd.jpg"), "..")

	// extensionless uploads fall back to .jpg
	assert.True(t, strings.HasSuffix(objectName("avatar"), ".jpg"))

	// re-uploading the same filename never collides
	assert.NotEqual(t, objectName("cat.jpg"), objectName("cat.jpg"))
}

func TestLocalStoreSaveImage(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	name, err := s.SaveImage(context.Background(), "cat.jpg", strings.NewReader("image-bytes"), 11)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "posts/"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}
