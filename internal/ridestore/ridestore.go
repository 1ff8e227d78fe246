// Package ridestore persists completed rides as raw binary files,
// adapted from the teacher's rotating CSV telemetry logger into a
// one-file-per-ride store of the PowerPod's own wire encoding.
package ridestore

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/bucko909/powerpod/internal/newton"
)

// Store writes and lists ride files under a directory, named
// powerpod.<timestamp>-<km>km.raw per SPEC_FULL §6.4.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open ensures dir exists and returns a Store rooted there.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ridestore: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// fileNamePattern matches powerpod.<timestamp>-<km>km.raw.
var fileNamePattern = regexp.MustCompile(`^powerpod\.\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}-[0-9.]+km\.raw$`)

// Save writes r to disk, named after when and its total distance, and
// returns the path written.
func (s *Store) Save(r newton.Ride, when time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	km := float64(r.Header().DistanceMetres) / 1000.0
	name := fmt.Sprintf("powerpod.%s-%.1fkm.raw", when.Format("2006-01-02T15:04:05"), km)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, r.Encode(), 0o644); err != nil {
		return "", fmt.Errorf("ridestore: write %s: %w", path, err)
	}
	return path, nil
}

// List returns the names of every stored ride file, oldest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("ridestore: list %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && fileNamePattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and decodes the ride stored under name.
func (s *Store) Load(name string) (newton.Ride, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return newton.Ride{}, fmt.Errorf("ridestore: read %s: %w", name, err)
	}
	r, err := newton.DecodeRide(data)
	if err != nil {
		return newton.Ride{}, fmt.Errorf("ridestore: decode %s: %w", name, err)
	}
	return r, nil
}
