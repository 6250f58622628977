package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// アップロード画像をディレクトリに置く。公開URLは <prefix>/<name>
type FileStore struct {
	dir    string
	prefix string
}

// DI
func NewFileStore(dir string, prefix string) *FileStore {
	return &FileStore{dir: dir, prefix: prefix}
}

func (s *FileStore) Dir() string {
	return s.dir
}

// ディレクトリが無ければ作る
func (s *FileStore) Save(name string, data []byte) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("prepare upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path.Join(s.prefix, name), nil
}

// 無いファイルはエラーにしない
func (s *FileStore) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
