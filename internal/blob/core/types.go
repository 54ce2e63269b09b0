// Package core holds the object store contract behind snapshot archives.
// Backends live under internal/infra/blob and are chosen by blob.Open.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver names a backend in configuration.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	DriverMemory     Driver = "memory"
)

// PutOptions are written alongside an object and returned by Get and List
// where the backend keeps them.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Info is the stored view of one object. ETag is backend specific.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"sizeBytes"`
	ContentType  string            `json:"contentType,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"lastModified"`
}

// Store keeps write-once objects under slash separated keys. Put on an
// existing key fails with ErrExists; Get on a missing one with ErrNotFound.
// List is ordered by key. Delete reports whether anything was removed.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

var (
	ErrNotFound   = errors.New("blob: not found")
	ErrExists     = errors.New("blob: already exists")
	ErrInvalidKey = errors.New("blob: invalid key")
)
