package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidImageType = errors.New("invalid image type")

// 受け付ける画像タイプ → 拡張子
var fileTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// DiskStorageは画像をローカルに保存して公開URLを返す。
type DiskStorage struct {
	dir     string
	baseURL string
}

func NewDiskStorage(dir string, baseURL string) *DiskStorage {
	return &DiskStorage{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Saveは画像を保存し、配信用URLを返す。
// ファイル名は「元の名前（空白はダッシュに）-uuid.拡張子」。
func (s *DiskStorage) Save(name string, contentType string, src io.Reader) (string, error) {
	ext, ok := fileTypes[contentType]
	if !ok {
		return "", ErrInvalidImageType
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ReplaceAll(base, " ", "-")
	if base == "" {
		base = "image"
	}

	fileName := fmt.Sprintf("%s-%s.%s", base, uuid.NewString(), ext)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.dir, fileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return s.baseURL + "/public/uploads/" + fileName, nil
}
