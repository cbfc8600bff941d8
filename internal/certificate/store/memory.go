// Package store holds the certificate ledger.
//
// The ledger is append-mostly: certificates are inserted at issuance and the
// only later mutation is the NFT link-back, which goes through Execute so the
// check-and-set happens under a single lock hold.
package store

import (
	"context"
	"sort"
	"sync"

	"originstamp/internal/certificate/models"
	"originstamp/pkg/platform/sentinel"
)

// InMemoryStore is a thread-safe in-memory certificate ledger.
type InMemoryStore struct {
	mu    sync.RWMutex
	certs map[string]*models.Certificate
}

// NewInMemoryStore creates an empty ledger.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{certs: make(map[string]*models.Certificate)}
}

// Save inserts a new certificate. Returns sentinel.ErrConflict when the ID
// is already taken.
func (s *InMemoryStore) Save(_ context.Context, cert *models.Certificate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.certs[cert.CertificateID]; exists {
		return sentinel.ErrConflict
	}
	s.certs[cert.CertificateID] = cloneCertificate(cert)
	return nil
}

// FindByID returns a copy of the certificate or sentinel.ErrNotFound.
func (s *InMemoryStore) FindByID(_ context.Context, certificateID string) (*models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cert, ok := s.certs[certificateID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneCertificate(cert), nil
}

// ListByOwner returns the owner's certificates ordered by issue date, then ID.
func (s *InMemoryStore) ListByOwner(_ context.Context, username string) ([]*models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Certificate
	for _, cert := range s.certs {
		if cert.OwnerUsername == username {
			out = append(out, cloneCertificate(cert))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.Before(out[j].IssueDate)
		}
		return out[i].CertificateID < out[j].CertificateID
	})
	return out, nil
}

// ListBySession returns every certificate issued for a session, ordered as
// ListByOwner.
func (s *InMemoryStore) ListBySession(_ context.Context, sessionID string) ([]*models.Certificate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Certificate
	for _, cert := range s.certs {
		if cert.SessionID == sessionID {
			out = append(out, cloneCertificate(cert))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.Before(out[j].IssueDate)
		}
		return out[i].CertificateID < out[j].CertificateID
	})
	return out, nil
}

// Count returns the number of certificates in the ledger.
func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.certs), nil
}

// Execute runs validate then mutate on the certificate under one lock hold.
// If validate returns an error the certificate is left untouched and the
// error is returned as-is.
func (s *InMemoryStore) Execute(
	_ context.Context,
	certificateID string,
	validate func(*models.Certificate) error,
	mutate func(*models.Certificate),
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cert, ok := s.certs[certificateID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if err := validate(cert); err != nil {
		return err
	}
	mutate(cert)
	return nil
}

func cloneCertificate(cert *models.Certificate) *models.Certificate {
	clone := *cert
	clone.Metadata.CreationTools = append([]string(nil), cert.Metadata.CreationTools...)
	if cert.NFTLink != nil {
		link := *cert.NFTLink
		clone.NFTLink = &link
	}
	return &clone
}
