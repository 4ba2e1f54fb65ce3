package blob

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const defaultRoot = "./labdata"

// Filesystem maps keys to files below a root directory.
type Filesystem struct {
	root string
}

// NewFilesystem returns a store rooted at root, creating the directory when
// needed.
func NewFilesystem(root string) (*Filesystem, error) {
	if root == "" {
		root = defaultRoot
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "unable to create blob root %s", root)
	}

	return &Filesystem{root: root}, nil
}

func (s *Filesystem) path(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

// Put writes r to a temporary file next to the target and renames it into
// place, so readers never see a partial blob.
func (s *Filesystem) Put(_ context.Context, key string, r io.Reader, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrapf(err, "unable to create directory of %s", key)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", key)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()

		return errors.Wrapf(err, "unable to write %s", key)
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "unable to write %s", key)
	}

	return errors.Wrapf(os.Rename(tmp.Name(), p), "unable to write %s", key)
}

func (s *Filesystem) Get(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(ErrNotFound, key)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", key)
	}

	return f, nil
}

func (s *Filesystem) List(_ context.Context, prefix string) ([]string, error) {
	keys := []string{}

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}

		if key := filepath.ToSlash(rel); strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to list %s", prefix)
	}

	sort.Strings(keys)

	return keys, nil
}

func (s *Filesystem) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(ErrNotFound, key)
	}

	return errors.Wrapf(err, "unable to delete %s", key)
}

var _ Store = (*Filesystem)(nil)
