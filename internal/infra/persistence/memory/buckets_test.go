package memory

import (
	"testing"

	"hostelcore/pkg/domain"
)

func TestSnapshotBucketsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	f := seed(t, s)
	buckets, err := s.ExportState().Buckets()
	if err != nil {
		t.Fatalf("buckets: %v", err)
	}
	if len(buckets) != len(BucketNames()) {
		t.Fatalf("expected %d buckets, got %d", len(BucketNames()), len(buckets))
	}
	buckets["legacy"] = []byte(`{"ignored":true}`)
	buckets["guardians"] = nil
	back, err := SnapshotFromBuckets(buckets)
	if err != nil {
		t.Fatalf("from buckets: %v", err)
	}
	if len(back.Beds) != 2 || back.Beds[0].ID != f.bed2 {
		t.Fatalf("unexpected beds %+v", back.Beds)
	}
	if len(back.Guardians) != 0 {
		t.Fatalf("expected empty guardian bucket to stay empty")
	}
}

func TestSnapshotFromBucketsRejectsMalformedPayload(t *testing.T) {
	if _, err := SnapshotFromBuckets(map[string][]byte{"rooms": []byte("{")}); err == nil {
		t.Fatalf("expected decode error")
	}
	var empty []domain.Room
	if s, err := SnapshotFromBuckets(nil); err != nil || len(s.Rooms) != len(empty) {
		t.Fatalf("expected empty snapshot, got %+v %v", s, err)
	}
}
