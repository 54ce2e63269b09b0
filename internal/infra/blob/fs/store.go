// Package fs keeps blobs as files below a directory opened with os.Root, so
// no key can reach outside it. Each object has a JSON attributes file next to
// it named <key>.attrs.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"hostelcore/internal/blob/core"
)

const attrSuffix = ".attrs"

// DefaultDir is used when New gets an empty directory.
const DefaultDir = "./blobdata"

type attrs struct {
	ContentType string            `json:"contentType,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	SHA256      string            `json:"sha256"`
	Size        int64             `json:"size"`
	Written     time.Time         `json:"written"`
}

func (a attrs) info(key string) core.Info {
	return core.Info{
		Key:          key,
		Size:         a.Size,
		ContentType:  a.ContentType,
		ETag:         a.SHA256,
		Metadata:     maps.Clone(a.Metadata),
		LastModified: a.Written,
	}
}

// Store is a core.Store over one directory.
type Store struct {
	root *os.Root
	now  func() time.Time
}

// New creates dir if needed and opens it as the store root.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("blob fs: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("blob fs: %w", err)
	}
	return &Store{root: root, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// Close releases the root handle.
func (s *Store) Close() error { return s.root.Close() }

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" || key == "." || !iofs.ValidPath(key) {
		return fmt.Errorf("%w: %q", core.ErrInvalidKey, key)
	}
	if strings.HasSuffix(key, attrSuffix) {
		return fmt.Errorf("%w: %q ends in %s", core.ErrInvalidKey, key, attrSuffix)
	}
	return nil
}

func missing(key string, err error) error {
	if errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	return err
}

func (s *Store) Put(_ context.Context, key string, r io.Reader, opts core.PutOptions) (core.Info, error) {
	if err := checkKey(key); err != nil {
		return core.Info{}, err
	}
	name := filepath.FromSlash(key)
	if _, err := s.root.Stat(name); err == nil {
		return core.Info{}, fmt.Errorf("%w: %s", core.ErrExists, key)
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := s.root.MkdirAll(dir, 0o750); err != nil {
			return core.Info{}, err
		}
	}
	a, err := s.writeData(name, r)
	if err != nil {
		return core.Info{}, err
	}
	a.ContentType = opts.ContentType
	a.Metadata = maps.Clone(opts.Metadata)
	a.Written = s.now()
	encoded, err := json.Marshal(a)
	if err == nil {
		err = s.root.WriteFile(name+attrSuffix, encoded, 0o640)
	}
	if err != nil {
		_ = s.root.Remove(name)
		return core.Info{}, err
	}
	return a.info(key), nil
}

// writeData streams r into a scratch file and renames it to name once
// complete. The returned attrs carry size and checksum only.
func (s *Store) writeData(name string, r io.Reader) (attrs, error) {
	scratch := filepath.Join(filepath.Dir(name), "."+filepath.Base(name)+"."+uuid.NewString()+".part")
	f, err := s.root.OpenFile(scratch, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return attrs{}, err
	}
	sum := sha256.New()
	n, err := io.Copy(io.MultiWriter(f, sum), r)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = s.root.Rename(scratch, name)
	}
	if err != nil {
		_ = s.root.Remove(scratch)
		return attrs{}, err
	}
	return attrs{SHA256: hex.EncodeToString(sum.Sum(nil)), Size: n}, nil
}

// Get opens the object; the caller closes the reader. An object without its
// attributes file counts as missing.
func (s *Store) Get(_ context.Context, key string) (core.Info, io.ReadCloser, error) {
	if err := checkKey(key); err != nil {
		return core.Info{}, nil, err
	}
	a, err := s.readAttrs(key)
	if err != nil {
		return core.Info{}, nil, err
	}
	f, err := s.root.Open(filepath.FromSlash(key))
	if err != nil {
		return core.Info{}, nil, missing(key, err)
	}
	return a.info(key), f, nil
}

func (s *Store) readAttrs(key string) (attrs, error) {
	raw, err := s.root.ReadFile(filepath.FromSlash(key) + attrSuffix)
	if err != nil {
		return attrs{}, missing(key, err)
	}
	var a attrs
	if err := json.Unmarshal(raw, &a); err != nil {
		return attrs{}, fmt.Errorf("blob fs: attributes of %s: %w", key, err)
	}
	return a, nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	if err := checkKey(key); err != nil {
		return false, err
	}
	name := filepath.FromSlash(key)
	if err := s.root.Remove(name); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := s.root.Remove(name + attrSuffix); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return true, err
	}
	return true, nil
}

// List walks the root for attributes files whose key starts with prefix.
func (s *Store) List(_ context.Context, prefix string) ([]core.Info, error) {
	var out []core.Info
	err := iofs.WalkDir(s.root.FS(), ".", func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		key, ok := strings.CutSuffix(p, attrSuffix)
		if d.IsDir() || !ok || !strings.HasPrefix(key, prefix) {
			return nil
		}
		a, err := s.readAttrs(key)
		if err != nil {
			return err
		}
		out = append(out, a.info(key))
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b core.Info) int { return strings.Compare(a.Key, b.Key) })
	return out, nil
}
