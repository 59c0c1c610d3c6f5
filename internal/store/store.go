// Package store persists conversation history as one JSON file per
// conversation. It is an append-only record keyed by an opaque id: the
// pipeline writes a user turn before a run and an assistant turn after, and
// never rewrites past turns.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unbobounbobo/press-council/internal/council"
)

// ErrNotFound is returned when an id does not match any stored conversation.
var ErrNotFound = errors.New("conversation not found")

// Turn is one entry in a conversation. User turns carry Content; assistant
// turns carry the full run bundle.
type Turn struct {
	Role        string                   `json:"role"`
	Timestamp   time.Time                `json:"timestamp"`
	Content     string                   `json:"content,omitempty"`
	Drafts      []council.Draft          `json:"drafts,omitempty"`
	Evaluations []council.Evaluation     `json:"evaluations,omitempty"`
	Synthesis   *council.SynthesisResult `json:"synthesis,omitempty"`
}

// Conversation is the full stored record.
type Conversation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Title     string    `json:"title"`
	Turns     []Turn    `json:"turns"`
}

// Metadata is the list-view projection of a conversation.
type Metadata struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Title     string    `json:"title"`
	TurnCount int       `json:"turnCount"`
}

// FileStore reads and writes conversation JSON files under a directory.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating conversation directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Create starts a new empty conversation with a fresh id.
func (s *FileStore) Create() (*Conversation, error) {
	conv := &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Title:     council.FallbackTitle,
		Turns:     []Turn{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// Get returns the conversation with the given id, or ErrNotFound.
func (s *FileStore) Get(id string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

// List returns metadata for every stored conversation, newest first.
func (s *FileStore) List() ([]Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}

	var out []Metadata
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		conv, err := s.read(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		out = append(out, Metadata{
			ID:        conv.ID,
			CreatedAt: conv.CreatedAt,
			Title:     conv.Title,
			TurnCount: len(conv.Turns),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Delete removes a conversation. Deleting an unknown id is ErrNotFound.
func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting conversation: %w", err)
	}
	return nil
}

// AppendUserTurn records the user's request text.
func (s *FileStore) AppendUserTurn(id, text string) error {
	return s.append(id, Turn{
		Role:      "user",
		Timestamp: time.Now().UTC(),
		Content:   text,
	})
}

// AppendAssistantTurn records a finished run's bundle.
func (s *FileStore) AppendAssistantTurn(id string, drafts []council.Draft, evals []council.Evaluation, synthesis council.SynthesisResult) error {
	return s.append(id, Turn{
		Role:        "assistant",
		Timestamp:   time.Now().UTC(),
		Drafts:      drafts,
		Evaluations: evals,
		Synthesis:   &synthesis,
	})
}

// SetTitle replaces the conversation title.
func (s *FileStore) SetTitle(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.read(id)
	if err != nil {
		return err
	}
	conv.Title = title
	return s.write(conv)
}

func (s *FileStore) append(id string, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.read(id)
	if err != nil {
		return err
	}
	conv.Turns = append(conv.Turns, turn)
	return s.write(conv)
}

// path validates the id and returns the backing file path. Ids are opaque
// but must not escape the store directory.
func (s *FileStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", ErrNotFound
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *FileStore) read(id string) (*Conversation, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading conversation: %w", err)
	}
	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("parsing conversation %s: %w", id, err)
	}
	return &conv, nil
}

// write persists atomically: encode to a temp file, then rename over the
// target.
func (s *FileStore) write(conv *Conversation) error {
	path, err := s.path(conv.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding conversation: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing conversation: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing conversation: %w", err)
	}
	return nil
}
