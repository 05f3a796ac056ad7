package upload

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_WritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStorage(dir, "http://localhost:8080/")

	url, err := s.Save("my product.png", "image/png", bytes.NewReader([]byte("fake-png")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/public/uploads/my-product-"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	//ディスク上に中身が書かれている
	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-png"), data)
}

func TestSave_RejectsInvalidImageType(t *testing.T) {
	s := NewDiskStorage(t.TempDir(), "http://localhost:8080")

	_, err := s.Save("notes.txt", "text/plain", bytes.NewReader([]byte("hello")))
	assert.ErrorIs(t, err, ErrInvalidImageType)
}

func TestSave_UniqueNamesForSameInput(t *testing.T) {
	s := NewDiskStorage(t.TempDir(), "http://localhost:8080")

	u1, err := s.Save("a.jpg", "image/jpeg", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	u2, err := s.Save("a.jpg", "image/jpeg", bytes.NewReader([]byte("y")))
	require.NoError(t, err)

	assert.NotEqual(t, u1, u2)
}
