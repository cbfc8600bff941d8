package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"originstamp/internal/subscription/models"
	"originstamp/internal/subscription/store"
	dErrors "originstamp/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	svc *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	svc, err := New(store.NewInMemoryRegistry())
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ServiceSuite) TestGetTier() {
	s.Run("unknown user defaults to free", func() {
		tier, limits, err := s.svc.GetTier(context.Background(), "alice")
		s.Require().NoError(err)
		s.Equal(models.TierFree, tier)
		s.Equal(5, limits.MaxPhotos)
		s.False(limits.NFTMintingAllowed)
	})

	s.Run("empty username is rejected", func() {
		_, _, err := s.svc.GetTier(context.Background(), "")
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestUpdateTier() {
	s.Run("changes take effect on the next read", func() {
		err := s.svc.UpdateTier(context.Background(), "alice", models.TierPremium)
		s.Require().NoError(err)

		tier, limits, err := s.svc.GetTier(context.Background(), "alice")
		s.Require().NoError(err)
		s.Equal(models.TierPremium, tier)
		s.Equal(100, limits.MaxPhotos)
		s.True(limits.NFTMintingAllowed)
		s.True(limits.Priority)
	})

	s.Run("downgrades are honored", func() {
		s.SetupTest()
		s.Require().NoError(s.svc.UpdateTier(context.Background(), "alice", models.TierEnterprise))
		s.Require().NoError(s.svc.UpdateTier(context.Background(), "alice", models.TierFree))

		tier, _, err := s.svc.GetTier(context.Background(), "alice")
		s.Require().NoError(err)
		s.Equal(models.TierFree, tier)
	})

	s.Run("rejects invalid tiers", func() {
		s.SetupTest()
		err := s.svc.UpdateTier(context.Background(), "alice", models.Tier("platinum"))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects empty username", func() {
		s.SetupTest()
		err := s.svc.UpdateTier(context.Background(), "", models.TierBasic)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
