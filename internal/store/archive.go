package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Archive writes a zstd-compressed JSON snapshot of a conversation to w.
// The snapshot is a plain Conversation document, so an archive survives the
// store directory being cleaned out.
func (s *FileStore) Archive(id string, w io.Writer) error {
	conv, err := s.Get(id)
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating archive encoder: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(conv); err != nil {
		enc.Close()
		return fmt.Errorf("encoding archive: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}

// ArchiveFile writes an archive of a conversation to path.
func (s *FileStore) ArchiveFile(id, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive file: %w", err)
	}
	if err := s.Archive(id, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadArchive decodes a conversation snapshot written by Archive.
func ReadArchive(r io.Reader) (*Conversation, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer dec.Close()

	var conv Conversation
	if err := json.NewDecoder(dec).Decode(&conv); err != nil {
		return nil, fmt.Errorf("decoding archive: %w", err)
	}
	return &conv, nil
}

// Restore writes an archived conversation back into the store. An existing
// conversation with the same id is overwritten.
func (s *FileStore) Restore(conv *Conversation) error {
	if conv == nil || conv.ID == "" {
		return fmt.Errorf("archive has no conversation id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(conv)
}
