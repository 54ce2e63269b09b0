package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"hostelcore/internal/blob/core"
)

func open(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func put(t *testing.T, s *Store, key, body string, opts core.PutOptions) core.Info {
	t.Helper()
	info, err := s.Put(context.Background(), key, bytes.NewReader([]byte(body)), opts)
	if err != nil {
		t.Fatalf("put %s: %v", key, err)
	}
	return info
}

func TestArchiveLifecycle(t *testing.T) {
	ctx := context.Background()
	s, dir := open(t)
	info := put(t, s, "snapshots/rev1.json", `{"rev":1}`, core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"revision": "1"},
	})
	if info.Size != 9 || len(info.ETag) != 64 || info.LastModified.IsZero() {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := os.Stat(filepath.Join(dir, "snapshots", "rev1.json"+attrSuffix)); err != nil {
		t.Fatalf("attributes file missing: %v", err)
	}
	if _, err := s.Put(ctx, "snapshots/rev1.json", bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	got, rc, err := s.Get(ctx, "snapshots/rev1.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"rev":1}` || got.ETag != info.ETag || got.Metadata["revision"] != "1" || got.ContentType != "application/json" {
		t.Fatalf("unexpected get %q %+v", body, got)
	}

	if removed, err := s.Delete(ctx, "snapshots/rev1.json"); err != nil || !removed {
		t.Fatalf("delete: %v %v", removed, err)
	}
	if removed, err := s.Delete(ctx, "snapshots/rev1.json"); err != nil || removed {
		t.Fatalf("second delete removed=%v err=%v", removed, err)
	}
	if _, _, err := s.Get(ctx, "snapshots/rev1.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestKeysMustStayInsideRoot(t *testing.T) {
	s, _ := open(t)
	for _, key := range []string{"", " ", ".", "/etc/passwd", "../up", "a/../b", "a//b", "dir/", "x" + attrSuffix} {
		if _, err := s.Put(context.Background(), key, bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrInvalidKey) {
			t.Fatalf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestFailedWriteLeavesNoFiles(t *testing.T) {
	s, dir := open(t)
	if _, err := s.Put(context.Background(), "broken.bin", brokenReader{}, core.PutOptions{}); err == nil {
		t.Fatalf("expected copy error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty root, found %d entries", len(entries))
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	s, dir := open(t)
	put(t, s, "snapshots/b.json", "b", core.PutOptions{})
	put(t, s, "snapshots/a.json", "a", core.PutOptions{})
	put(t, s, "exports/c.csv", "c", core.PutOptions{})

	list, err := s.List(context.Background(), "snapshots/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "snapshots/a.json" || list[1].Key != "snapshots/b.json" {
		t.Fatalf("unexpected list %+v", list)
	}

	if err := os.WriteFile(filepath.Join(dir, "exports", "c.csv"+attrSuffix), []byte("{"), 0o600); err != nil {
		t.Fatalf("corrupt attrs: %v", err)
	}
	if _, err := s.List(context.Background(), ""); err == nil {
		t.Fatalf("expected error for corrupt attributes")
	}
}

func TestObjectWithoutAttributesIsMissing(t *testing.T) {
	s, dir := open(t)
	put(t, s, "orphan.json", "{}", core.PutOptions{})
	if err := os.Remove(filepath.Join(dir, "orphan.json"+attrSuffix)); err != nil {
		t.Fatalf("remove attrs: %v", err)
	}
	if _, _, err := s.Get(context.Background(), "orphan.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewFailsWhenDirIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(file); err == nil {
		t.Fatalf("expected error")
	}
}
