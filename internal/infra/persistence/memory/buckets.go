package memory

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Buckets splits the snapshot into one JSON payload per collection, keyed by
// the collection's JSON name. Durable backends store each bucket as a row.
func (s Snapshot) Buckets() (map[string][]byte, error) {
	whole, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(whole, &raw); err != nil {
		return nil, fmt.Errorf("split snapshot: %w", err)
	}
	out := make(map[string][]byte, len(raw))
	for name, payload := range raw {
		out[name] = []byte(payload)
	}
	return out, nil
}

// SnapshotFromBuckets reassembles a snapshot from bucket payloads. Unknown
// buckets are ignored; empty payloads leave their collection empty.
func SnapshotFromBuckets(buckets map[string][]byte) (Snapshot, error) {
	known := make(map[string]struct{})
	for _, name := range BucketNames() {
		known[name] = struct{}{}
	}
	raw := make(map[string]json.RawMessage, len(buckets))
	for name, payload := range buckets {
		if _, ok := known[name]; !ok || len(payload) == 0 {
			continue
		}
		raw[name] = json.RawMessage(payload)
	}
	whole, err := json.Marshal(raw)
	if err != nil {
		return Snapshot{}, fmt.Errorf("join buckets: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(whole, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// BucketNames lists the bucket keys in a stable order.
func BucketNames() []string {
	buckets, _ := Snapshot{}.Buckets()
	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
