package ridestore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bucko909/powerpod/internal/newton"
)

func TestSaveListLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	ride := newton.MakeRide([]newton.Record{
		newton.RideData{SpeedMph: 10, PowerWatts: 100},
		newton.RideData{SpeedMph: 12, PowerWatts: 120},
	})
	when := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)

	path, err := store.Save(ride, when)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("Save wrote to %s, want under %s", path, dir)
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("List returned %d names, want 1: %v", len(names), names)
	}
	if !fileNamePattern.MatchString(names[0]) {
		t.Fatalf("stored name %q does not match the expected naming pattern", names[0])
	}

	loaded, err := store.Load(names[0])
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Records) != len(ride.Records) {
		t.Fatalf("loaded %d records, want %d", len(loaded.Records), len(ride.Records))
	}
}

func TestListIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Save(newton.DefaultRide(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("List returned %d names, want 1", len(names))
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "rides")
	if _, err := Open(dir); err != nil {
		t.Fatalf("Open: %v", err)
	}
}
