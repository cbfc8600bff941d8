package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"originstamp/internal/user/models"
	"originstamp/internal/user/store"
	"originstamp/internal/user/token"
	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	svc *Service
	now time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	svc, err := New(store.NewInMemoryStore(), token.NewMaker("test-secret", time.Hour))
	s.Require().NoError(err)
	s.svc = svc
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) TestRegister() {
	s.Run("creates account with hashed password", func() {
		user, err := s.svc.Register(s.ctx(), "alice", "hunter2-hunter2")
		s.Require().NoError(err)
		s.Equal("alice", user.Username)
		s.Equal(s.now, user.CreatedAt)
		s.NotEqual("hunter2-hunter2", user.PasswordHash)
	})

	s.Run("trims the username", func() {
		s.SetupTest()
		user, err := s.svc.Register(s.ctx(), "  bob  ", "pw-pw-pw")
		s.Require().NoError(err)
		s.Equal("bob", user.Username)
	})

	s.Run("rejects duplicate usernames", func() {
		s.SetupTest()
		_, err := s.svc.Register(s.ctx(), "alice", "first-pw")
		s.Require().NoError(err)

		_, err = s.svc.Register(s.ctx(), "alice", "second-pw")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("rejects empty credentials", func() {
		s.SetupTest()
		_, err := s.svc.Register(s.ctx(), "", "pw")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = s.svc.Register(s.ctx(), "alice", "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestLogin() {
	s.Run("returns a token the maker accepts", func() {
		_, err := s.svc.Register(s.ctx(), "alice", "hunter2-hunter2")
		s.Require().NoError(err)

		signed, err := s.svc.Login(s.ctx(), "alice", "hunter2-hunter2")
		s.Require().NoError(err)
		s.NotEmpty(signed)

		// The token was signed at the pinned request time, so expiry must be
		// checked against that clock, not the machine's.
		maker := token.NewMaker("test-secret", time.Hour, token.WithClock(func() time.Time { return s.now }))
		claims, err := maker.ValidateToken(signed)
		s.Require().NoError(err)
		s.Equal("alice", claims.Username)
	})

	s.Run("wrong password and unknown user fail identically", func() {
		s.SetupTest()
		_, err := s.svc.Register(s.ctx(), "alice", "hunter2-hunter2")
		s.Require().NoError(err)

		_, badPassword := s.svc.Login(s.ctx(), "alice", "wrong")
		_, unknownUser := s.svc.Login(s.ctx(), "nobody", "wrong")
		s.Require().Error(badPassword)
		s.Require().Error(unknownUser)
		s.True(dErrors.HasCode(badPassword, dErrors.CodeUnauthorized))
		s.True(dErrors.HasCode(unknownUser, dErrors.CodeUnauthorized))
		s.Equal(badPassword.Error(), unknownUser.Error())
	})
}

func (s *ServiceSuite) TestPermissions() {
	s.Run("no record means allowed", func() {
		allowed, err := s.svc.MayCreateCertificates(s.ctx(), "alice")
		s.Require().NoError(err)
		s.True(allowed)
	})

	s.Run("explicit record is honored", func() {
		s.SetupTest()
		err := s.svc.SetPermissions(s.ctx(), models.Permissions{
			Username:              "alice",
			CanCreateCertificates: false,
		})
		s.Require().NoError(err)

		allowed, err := s.svc.MayCreateCertificates(s.ctx(), "alice")
		s.Require().NoError(err)
		s.False(allowed)
	})

	s.Run("record without username is rejected", func() {
		s.SetupTest()
		err := s.svc.SetPermissions(s.ctx(), models.Permissions{CanCreateCertificates: true})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestGetInfo() {
	_, err := s.svc.Register(s.ctx(), "alice", "hunter2-hunter2")
	s.Require().NoError(err)

	user, err := s.svc.GetInfo(s.ctx(), "alice")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.Empty(user.PasswordHash)

	_, err = s.svc.GetInfo(s.ctx(), "nobody")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListAndCount() {
	for _, name := range []string{"carol", "alice", "bob"} {
		_, err := s.svc.Register(s.ctx(), name, "pw-pw-pw")
		s.Require().NoError(err)
	}

	names, err := s.svc.ListUsernames(s.ctx())
	s.Require().NoError(err)
	s.Equal([]string{"alice", "bob", "carol"}, names)

	count, err := s.svc.Count(s.ctx())
	s.Require().NoError(err)
	s.Equal(3, count)
}
