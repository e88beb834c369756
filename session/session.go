// Package session owns the document of one editing session.
//
// A Session is the single writer of its document. Mutations from any number
// of goroutines are applied one at a time, in the order they acquire the
// lock; each produces a new validated snapshot. Readers get the last
// committed snapshot and never see a half-applied edit. Snapshots are shared:
// callers must treat them as read-only.
package session

import (
	"sync"

	"github.com/rs/zerolog"

	auditreport "github.com/kakehashi-asia/auditreport"
	"github.com/kakehashi-asia/auditreport/document"
	"github.com/kakehashi-asia/auditreport/logo"
)

// Session serializes edits of a document.
type Session struct {
	mu       sync.Mutex
	doc      *document.Document
	revision uint64
	ids      document.IDGenerator
	log      zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for committed mutations.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithIDs sets the identifier generator used by Insert.
func WithIDs(ids document.IDGenerator) Option {
	return func(s *Session) { s.ids = ids }
}

// New starts a session on doc, or on document.Default() if doc is nil.
func New(doc *document.Document, opts ...Option) *Session {
	if doc == nil {
		doc = document.Default()
	}
	s := &Session{
		doc: doc,
		ids: document.NewSequence(),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current document and its revision.
func (s *Session) Snapshot() (*document.Document, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc, s.revision
}

// Document returns the current document.
func (s *Session) Document() *document.Document {
	doc, _ := s.Snapshot()
	return doc
}

// Revision returns the number of committed mutations.
func (s *Session) Revision() uint64 {
	_, rev := s.Snapshot()
	return rev
}

// apply runs fn on the current snapshot under the lock and commits its
// result. A failing fn leaves the session untouched.
func (s *Session) apply(op string, fn func(*document.Document) (*document.Document, error)) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.doc)
	if err != nil {
		s.log.Debug().Err(err).Str("op", op).Uint64("revision", s.revision).Msg("mutation rejected")
		return s.doc, err
	}
	s.doc = next
	s.revision++
	s.log.Debug().Str("op", op).Uint64("revision", s.revision).Msg("mutation committed")
	return next, nil
}

// Update sets the value at path. See document.Update for the path syntax.
func (s *Session) Update(path string, value any) (*document.Document, error) {
	return s.apply("update "+path, func(d *document.Document) (*document.Document, error) {
		return document.Update(d, path, value)
	})
}

// Insert appends entity to list and returns the new entity's identifier.
func (s *Session) Insert(list document.ListName, entity any) (string, error) {
	var id string
	_, err := s.apply("insert "+string(list), func(d *document.Document) (*document.Document, error) {
		next, newID, err := document.Insert(d, list, entity, s.ids)
		id = newID
		return next, err
	})
	return id, err
}

// RemoveAt deletes the member of list at index.
func (s *Session) RemoveAt(list document.ListName, index int) error {
	_, err := s.apply("remove "+string(list), func(d *document.Document) (*document.Document, error) {
		return document.RemoveAt(d, list, index)
	})
	return err
}

// RemoveByID deletes the member of list carrying id.
func (s *Session) RemoveByID(list document.ListName, id string) error {
	_, err := s.apply("remove "+string(list), func(d *document.Document) (*document.Document, error) {
		return document.RemoveByID(d, list, id)
	})
	return err
}

// Replace swaps in doc after validating it.
func (s *Session) Replace(doc *document.Document) error {
	_, err := s.apply("replace", func(*document.Document) (*document.Document, error) {
		if doc == nil {
			return nil, auditreport.Errorf("Replace", auditreport.ErrInvalidValue, "nil document")
		}
		if err := doc.Validate(); err != nil {
			return nil, auditreport.NewError("Replace", err)
		}
		return doc.Clone(), nil
	})
	return err
}

// SetLogo stores blob as the invoice logo. An empty blob clears the logo.
func (s *Session) SetLogo(blob []byte) error {
	uri := ""
	if len(blob) > 0 {
		var err error
		if uri, err = logo.DataURI(blob); err != nil {
			return err
		}
	}
	_, err := s.apply("set logo", func(d *document.Document) (*document.Document, error) {
		next := d.Clone()
		next.Invoice.LogoSrc = uri
		return next, nil
	})
	return err
}
