// Package assets loads game resources in the background and exposes a
// per-handle load status that the session polls once per tick.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// LoadState is the status of one requested resource.
type LoadState int

const (
	Pending LoadState = iota
	Loaded
	Failed
)

// String returns a human-readable name for the state.
func (s LoadState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrUnknownHandle is returned for handles not issued by the server.
var ErrUnknownHandle = errors.New("assets: unknown handle")

// Handle identifies a requested resource.
type Handle int

// Decoder turns raw file bytes into a typed asset.
type Decoder func(data []byte) (any, error)

type entry struct {
	path  string
	state LoadState
	value any
	err   error
}

// Server reads and decodes resources from a filesystem on background goroutines.
type Server struct {
	fsys    fs.FS
	mu      sync.RWMutex
	entries []*entry
	wg      sync.WaitGroup
}

// NewServer creates an asset server reading from fsys.
func NewServer(fsys fs.FS) *Server {
	return &Server{fsys: fsys}
}

// Load requests path and returns immediately with a Pending handle.
func (s *Server) Load(path string, decode Decoder) Handle {
	s.mu.Lock()
	h := Handle(len(s.entries))
	e := &entry{path: path, state: Pending}
	s.entries = append(s.entries, e)
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		value, err := s.read(path, decode)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			e.state = Failed
			e.err = err
			return
		}
		e.state = Loaded
		e.value = value
	}()
	return h
}

func (s *Server) read(path string, decode Decoder) (any, error) {
	data, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot read %s: %w", path, err)
	}
	if decode == nil {
		return data, nil
	}
	value, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot decode %s: %w", path, err)
	}
	return value, nil
}

func (s *Server) get(h Handle) (*entry, bool) {
	if h < 0 || int(h) >= len(s.entries) {
		return nil, false
	}
	return s.entries[h], true
}

// State returns the load status of h. Unknown handles report Failed.
func (s *Server) State(h Handle) LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.get(h)
	if !ok {
		return Failed
	}
	return e.state
}

// Path returns the path h was requested with.
func (s *Server) Path(h Handle) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.get(h); ok {
		return e.path
	}
	return ""
}

// Err returns the failure for a Failed handle.
func (s *Server) Err(h Handle) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.get(h)
	if !ok {
		return ErrUnknownHandle
	}
	return e.err
}

// Value returns the decoded asset once h is Loaded.
func (s *Server) Value(h Handle) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.get(h)
	if !ok || e.state != Loaded {
		return nil, false
	}
	return e.value, true
}

// Wait blocks until every requested load has finished, successfully or not.
// The game loop never calls it; tools and tests do.
func (s *Server) Wait() {
	s.wg.Wait()
}
