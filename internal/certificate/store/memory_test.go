package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"originstamp/internal/certificate/models"
	"originstamp/pkg/platform/sentinel"
)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemoryStore
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()
}

func (s *StoreSuite) newCert(id, session, owner string, issued time.Time) *models.Certificate {
	return &models.Certificate{
		CertificateID: id,
		SessionID:     session,
		OwnerUsername: owner,
		Title:         "Sunset Study",
		IssueDate:     issued,
		ExpiryDate:    issued.AddDate(10, 0, 0),
		Status:        models.StatusActive,
		Metadata:      models.Metadata{CreationTools: []string{"Procreate"}},
	}
}

func (s *StoreSuite) TestSaveAndFind() {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cert := s.newCert("CERT-A", "sess-1", "alice", issued)

	s.Require().NoError(s.store.Save(s.ctx, cert))

	s.Run("find returns a copy", func() {
		got, err := s.store.FindByID(s.ctx, "CERT-A")
		s.Require().NoError(err)
		s.Equal("Sunset Study", got.Title)

		got.Title = "tampered"
		got.Metadata.CreationTools[0] = "tampered"

		again, err := s.store.FindByID(s.ctx, "CERT-A")
		s.Require().NoError(err)
		s.Equal("Sunset Study", again.Title)
		s.Equal("Procreate", again.Metadata.CreationTools[0])
	})

	s.Run("duplicate id conflicts", func() {
		err := s.store.Save(s.ctx, s.newCert("CERT-A", "sess-2", "bob", issued))
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.store.FindByID(s.ctx, "CERT-MISSING")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *StoreSuite) TestListByOwnerOrdering() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Save(s.ctx, s.newCert("CERT-B", "sess-1", "alice", base.Add(time.Hour))))
	s.Require().NoError(s.store.Save(s.ctx, s.newCert("CERT-C", "sess-2", "alice", base)))
	s.Require().NoError(s.store.Save(s.ctx, s.newCert("CERT-A", "sess-3", "bob", base)))

	got, err := s.store.ListByOwner(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("CERT-C", got[0].CertificateID)
	s.Equal("CERT-B", got[1].CertificateID)
}

func (s *StoreSuite) TestExecute() {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Save(s.ctx, s.newCert("CERT-A", "sess-1", "alice", issued)))

	s.Run("mutation is applied", func() {
		err := s.store.Execute(s.ctx, "CERT-A",
			func(c *models.Certificate) error {
				if c.NFTLink != nil {
					return sentinel.ErrConflict
				}
				return nil
			},
			func(c *models.Certificate) {
				c.NFTLink = &models.NFTLink{TokenID: 1, TokenURI: "uri"}
			},
		)
		s.Require().NoError(err)

		got, err := s.store.FindByID(s.ctx, "CERT-A")
		s.Require().NoError(err)
		s.Require().NotNil(got.NFTLink)
		s.Equal(uint64(1), got.NFTLink.TokenID)
	})

	s.Run("validate veto returns the error and skips mutate", func() {
		veto := errors.New("nope")
		err := s.store.Execute(s.ctx, "CERT-A",
			func(*models.Certificate) error { return veto },
			func(c *models.Certificate) { c.NFTLink.TokenID = 99 },
		)
		s.ErrorIs(err, veto)

		got, err := s.store.FindByID(s.ctx, "CERT-A")
		s.Require().NoError(err)
		s.Equal(uint64(1), got.NFTLink.TokenID)
	})

	s.Run("unknown id is not found", func() {
		err := s.store.Execute(s.ctx, "CERT-MISSING",
			func(*models.Certificate) error { return nil },
			func(*models.Certificate) {},
		)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}
