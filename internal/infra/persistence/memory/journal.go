package memory

import (
	"bytes"
	"sync"
)

// Bucket is one named collection payload.
type Bucket struct {
	Name    string
	Payload []byte
}

// Journal remembers the bucket payloads a durable backend last wrote so
// only collections that changed since are rewritten.
type Journal struct {
	mu      sync.Mutex
	written map[string][]byte
}

// Pending returns the buckets of s whose payload differs from the last
// recorded write, in BucketNames order.
func (j *Journal) Pending(s Snapshot) ([]Bucket, error) {
	buckets, err := s.Buckets()
	if err != nil {
		return nil, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []Bucket
	for _, name := range BucketNames() {
		payload := buckets[name]
		if prev, ok := j.written[name]; ok && bytes.Equal(prev, payload) {
			continue
		}
		out = append(out, Bucket{Name: name, Payload: payload})
	}
	return out, nil
}

// Record marks buckets as durably written.
func (j *Journal) Record(buckets ...Bucket) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.written == nil {
		j.written = make(map[string][]byte, len(buckets))
	}
	for _, b := range buckets {
		j.written[b.Name] = bytes.Clone(b.Payload)
	}
}

// Reset forgets every recorded write.
func (j *Journal) Reset() {
	j.mu.Lock()
	j.written = nil
	j.mu.Unlock()
}
