// Package backup writes full store snapshots to a blob store and restores
// them.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"hostelcore/internal/blob"
	"hostelcore/internal/infra/persistence/memory"
)

const (
	// Prefix is the key prefix of every archive.
	Prefix = "snapshots/"
	// Format tags the envelope so future layouts can be told apart.
	Format = "hostelcore.snapshot/v1"

	keyTimeLayout = "20060102T150405.000Z"
	metaRevision  = "revision"
	metaFormat    = "format"
)

// ErrInvalidArchive is returned for keys outside Prefix or payloads that do
// not decode.
var ErrInvalidArchive = errors.New("backup: invalid archive")

// StateStore is the part of a persistent store the archiver needs.
type StateStore interface {
	Checkpoint() (memory.Snapshot, uint64)
	ImportState(memory.Snapshot) error
	Revision() uint64
}

// Archive describes one stored snapshot.
type Archive struct {
	Key       string    `json:"key"`
	Revision  uint64    `json:"revision"`
	CreatedAt time.Time `json:"createdAt"`
	SizeBytes int64     `json:"sizeBytes"`
}

type envelope struct {
	Format    string          `json:"format"`
	Revision  uint64          `json:"revision"`
	CreatedAt time.Time       `json:"createdAt"`
	Snapshot  memory.Snapshot `json:"snapshot"`
}

// Archiver moves snapshots between a store and a blob backend.
type Archiver struct {
	store  StateStore
	blobs  blob.Store
	now    func() time.Time
	logger *slog.Logger
	keep   int
}

// Option configures an Archiver.
type Option func(*Archiver)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(a *Archiver) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger routes archive events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archiver) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRetention keeps only the newest keep archives after each export. Zero
// keeps everything.
func WithRetention(keep int) Option {
	return func(a *Archiver) {
		if keep > 0 {
			a.keep = keep
		}
	}
}

// New returns an Archiver over store and blobs.
func New(store StateStore, blobs blob.Store, opts ...Option) *Archiver {
	a := &Archiver{
		store:  store,
		blobs:  blobs,
		now:    func() time.Time { return time.Now().UTC() },
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Export writes the current state under a key derived from the time and the
// store revision.
func (a *Archiver) Export(ctx context.Context) (Archive, error) {
	state, rev := a.store.Checkpoint()
	created := a.now().UTC()
	env := envelope{Format: Format, Revision: rev, CreatedAt: created, Snapshot: state}
	payload, err := json.Marshal(env)
	if err != nil {
		return Archive{}, fmt.Errorf("encode snapshot: %w", err)
	}
	key := fmt.Sprintf("%s%s-rev%d.json", Prefix, created.Format(keyTimeLayout), rev)
	info, err := a.blobs.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: "application/json",
		Metadata: map[string]string{
			metaRevision: strconv.FormatUint(rev, 10),
			metaFormat:   Format,
		},
	})
	if err != nil {
		return Archive{}, fmt.Errorf("store snapshot %s: %w", key, err)
	}
	a.logger.InfoContext(ctx, "snapshot exported", "key", key, "revision", rev, "bytes", info.Size, "driver", string(a.blobs.Driver()))
	if _, err := a.Prune(ctx); err != nil {
		a.logger.WarnContext(ctx, "snapshot prune failed", "error", err)
	}
	return Archive{Key: key, Revision: rev, CreatedAt: created, SizeBytes: info.Size}, nil
}

// Prune deletes archives past the retention limit, oldest first, and returns
// the removed keys. It is a no-op without WithRetention.
func (a *Archiver) Prune(ctx context.Context) ([]string, error) {
	if a.keep == 0 {
		return nil, nil
	}
	archives, err := a.List(ctx)
	if err != nil || len(archives) <= a.keep {
		return nil, err
	}
	var removed []string
	for _, arc := range archives[a.keep:] {
		ok, err := a.blobs.Delete(ctx, arc.Key)
		if err != nil {
			return removed, fmt.Errorf("delete snapshot %s: %w", arc.Key, err)
		}
		if ok {
			removed = append(removed, arc.Key)
		}
	}
	a.logger.InfoContext(ctx, "snapshots pruned", "removed", len(removed), "kept", a.keep)
	return removed, nil
}

// List returns archives newest first.
func (a *Archiver) List(ctx context.Context) ([]Archive, error) {
	infos, err := a.blobs.List(ctx, Prefix)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	out := make([]Archive, 0, len(infos))
	for _, info := range infos {
		if !strings.HasSuffix(info.Key, ".json") {
			continue
		}
		out = append(out, archiveFromInfo(info))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out, nil
}

// Restore replaces the store state with the archive at key. The store drops
// dangling references while importing.
func (a *Archiver) Restore(ctx context.Context, key string) (Archive, error) {
	if !strings.HasPrefix(key, Prefix) || strings.Contains(key, "..") {
		return Archive{}, fmt.Errorf("%w: key must start with %s", ErrInvalidArchive, Prefix)
	}
	info, rc, err := a.blobs.Get(ctx, key)
	if err != nil {
		return Archive{}, err
	}
	defer func() { _ = rc.Close() }()
	var env envelope
	if err := json.NewDecoder(rc).Decode(&env); err != nil {
		return Archive{}, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	if env.Format != Format {
		return Archive{}, fmt.Errorf("%w: unsupported format %q", ErrInvalidArchive, env.Format)
	}
	if err := a.store.ImportState(env.Snapshot); err != nil {
		return Archive{}, fmt.Errorf("import snapshot %s: %w", key, err)
	}
	a.logger.InfoContext(ctx, "snapshot restored", "key", key, "archived_revision", env.Revision, "revision", a.store.Revision())
	return Archive{Key: key, Revision: env.Revision, CreatedAt: env.CreatedAt, SizeBytes: info.Size}, nil
}

func archiveFromInfo(info blob.Info) Archive {
	arc := Archive{Key: info.Key, CreatedAt: info.LastModified, SizeBytes: info.Size}
	if rev, err := strconv.ParseUint(info.Metadata[metaRevision], 10, 64); err == nil {
		arc.Revision = rev
	} else {
		arc.Revision = revisionFromKey(info.Key)
	}
	name := strings.TrimPrefix(info.Key, Prefix)
	if stamp, _, ok := strings.Cut(name, "-rev"); ok {
		if t, err := time.Parse(keyTimeLayout, stamp); err == nil {
			arc.CreatedAt = t
		}
	}
	return arc
}

// revisionFromKey covers backends whose listings omit user metadata.
func revisionFromKey(key string) uint64 {
	_, tail, ok := strings.Cut(key, "-rev")
	if !ok {
		return 0
	}
	rev, _ := strconv.ParseUint(strings.TrimSuffix(tail, ".json"), 10, 64)
	return rev
}
