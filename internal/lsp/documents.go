package lsp

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Document is the editor's current copy of a palette file.
type Document struct {
	Text    string
	Version protocol.Integer
}

// DocumentStore holds open documents keyed by URI.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]Document)}
}

func (s *DocumentStore) Open(uri, text string, version protocol.Integer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = Document{Text: text, Version: version}
}

// Update replaces the text of an open document. Changes older than the
// stored version, and changes to documents that are not open, are dropped
// and reported as false.
func (s *DocumentStore) Update(uri, text string, version protocol.Integer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok || version < doc.Version {
		return false
	}
	s.docs[uri] = Document{Text: text, Version: version}
	return true
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Get returns the text of an open document.
func (s *DocumentStore) Get(uri string) (string, bool) {
	doc, ok := s.Document(uri)
	return doc.Text, ok
}

func (s *DocumentStore) Document(uri string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}
