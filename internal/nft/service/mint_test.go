package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	certmodels "originstamp/internal/certificate/models"
	certstore "originstamp/internal/certificate/store"
	"originstamp/internal/nft/models"
	"originstamp/internal/nft/service/mocks"
	"originstamp/internal/nft/store"
	sessionmodels "originstamp/internal/session/models"
	sessionstore "originstamp/internal/session/store"
	submodels "originstamp/internal/subscription/models"
	substore "originstamp/internal/subscription/store"
	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/requestcontext"
)

type MintSuite struct {
	suite.Suite
	now      time.Time
	tokens   *store.InMemoryStore
	certs    *certstore.InMemoryStore
	sessions *sessionstore.InMemoryStore
	tiers    *substore.InMemoryRegistry
	svc      *Service
}

func TestMintSuite(t *testing.T) {
	suite.Run(t, new(MintSuite))
}

func (s *MintSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.tokens = store.NewInMemoryStore()
	s.certs = certstore.NewInMemoryStore()
	s.sessions = sessionstore.NewInMemoryStore()
	s.tiers = substore.NewInMemoryRegistry()

	svc, err := New(s.tokens, s.certs, s.sessions, s.tiers)
	s.Require().NoError(err)
	s.svc = svc
}

func (s *MintSuite) ctxFor(username string) context.Context {
	ctx := requestcontext.WithTime(context.Background(), s.now)
	if username != "" {
		ctx = requestcontext.WithCaller(ctx, username)
	}
	return ctx
}

func (s *MintSuite) seedSession(id, owner string, photos ...string) {
	s.Require().NoError(s.sessions.Save(context.Background(), &sessionmodels.Session{
		SessionID:     id,
		OwnerUsername: owner,
		Title:         "Sunset Study",
		Description:   "Oil on canvas",
		PhotoRefs:     photos,
		Status:        sessionmodels.StatusActive,
		CreatedAt:     s.now,
		UpdatedAt:     s.now,
	}))
}

func (s *MintSuite) seedCertificate(id, session, owner string) *certmodels.Certificate {
	cert := &certmodels.Certificate{
		CertificateID:    id,
		SessionID:        session,
		OwnerUsername:    owner,
		Title:            "Sunset Study",
		Description:      "Oil on canvas",
		IssueDate:        s.now,
		ExpiryDate:       s.now.AddDate(10, 0, 0),
		VerificationHash: "0xabc",
		LedgerTxHash:     "0xdef",
		Status:           certmodels.StatusActive,
		Scores:           certmodels.Scores{Verification: 91, Authenticity: 93, Provenance: 91, CommunityTrust: 85},
		Metadata: certmodels.Metadata{
			CreationDuration: "2 hours 15 minutes",
			TotalActions:     3,
			TotalSize:        "16 MB",
			FileFormat:       "PNG",
			CreationTools:    []string{"Oil paint", "Canvas"},
		},
	}
	s.Require().NoError(s.certs.Save(context.Background(), cert))
	return cert
}

func (s *MintSuite) TestMintFromCertificate() {
	s.Run("mints and links the token", func() {
		s.SetupTest()
		s.seedSession("sess-1", "alice", "photo-1", "photo-2", "photo-3")
		s.seedCertificate("CERT-A", "sess-1", "alice")
		s.Require().NoError(s.tiers.SetTier(context.Background(), "alice", submodels.TierBasic))

		token, err := s.svc.MintFromCertificate(s.ctxFor("alice"), "CERT-A", nil)
		s.Require().NoError(err)

		s.Equal(uint64(1), token.ID)
		s.Equal(models.Account{Owner: "alice"}, token.Owner)
		s.Equal("sess-1", token.SessionID)
		s.Equal("Sunset Study - Certificate NFT #1", token.Metadata.Name)

		// Attribute order: certificate identity first, photos last in
		// upload order, and the final photo as the primary image.
		s.Equal("certificate_id", token.Metadata.Attributes[0].TraitType)
		last := token.Metadata.Attributes[len(token.Metadata.Attributes)-1]
		s.Equal("progress_photo_3", last.TraitType)
		s.Equal("photo-3", last.Value)
		s.Equal("photo-3", token.Metadata.Image)

		cert, err := s.certs.FindByID(context.Background(), "CERT-A")
		s.Require().NoError(err)
		s.Require().NotNil(cert.NFTLink)
		s.Equal(uint64(1), cert.NFTLink.TokenID)
		s.Equal(TokenURI(1), cert.NFTLink.TokenURI)

		supply, err := s.tokens.TotalSupply(context.Background())
		s.Require().NoError(err)
		s.Equal(uint64(1), supply)
	})

	s.Run("second mint for the same certificate conflicts", func() {
		s.SetupTest()
		s.seedSession("sess-1", "alice", "photo-1")
		s.seedCertificate("CERT-A", "sess-1", "alice")
		s.Require().NoError(s.tiers.SetTier(context.Background(), "alice", submodels.TierBasic))

		_, err := s.svc.MintFromCertificate(s.ctxFor("alice"), "CERT-A", nil)
		s.Require().NoError(err)

		_, err = s.svc.MintFromCertificate(s.ctxFor("alice"), "CERT-A", nil)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))

		supply, supplyErr := s.tokens.TotalSupply(context.Background())
		s.Require().NoError(supplyErr)
		s.Equal(uint64(1), supply)
	})

	s.Run("free tier cannot mint and nothing is written", func() {
		s.SetupTest()
		s.seedSession("sess-1", "alice", "photo-1")
		s.seedCertificate("CERT-A", "sess-1", "alice")

		_, err := s.svc.MintFromCertificate(s.ctxFor("alice"), "CERT-A", nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Contains(err.Error(), "basic")

		supply, supplyErr := s.tokens.TotalSupply(context.Background())
		s.Require().NoError(supplyErr)
		s.Zero(supply)

		cert, certErr := s.certs.FindByID(context.Background(), "CERT-A")
		s.Require().NoError(certErr)
		s.Nil(cert.NFTLink)
	})

	s.Run("requires authentication", func() {
		s.SetupTest()
		_, err := s.svc.MintFromCertificate(s.ctxFor(""), "CERT-A", nil)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("only the certificate owner may mint", func() {
		s.SetupTest()
		s.seedSession("sess-1", "alice", "photo-1")
		s.seedCertificate("CERT-A", "sess-1", "alice")
		s.Require().NoError(s.tiers.SetTier(context.Background(), "bob", submodels.TierBasic))

		_, err := s.svc.MintFromCertificate(s.ctxFor("bob"), "CERT-A", nil)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("inactive certificate cannot be minted", func() {
		s.SetupTest()
		s.seedSession("sess-1", "alice", "photo-1")
		cert := s.seedCertificate("CERT-A", "sess-1", "alice")
		s.Require().NoError(s.certs.Execute(context.Background(), cert.CertificateID,
			func(*certmodels.Certificate) error { return nil },
			func(c *certmodels.Certificate) { c.Status = certmodels.StatusRevoked },
		))
		s.Require().NoError(s.tiers.SetTier(context.Background(), "alice", submodels.TierBasic))

		_, err := s.svc.MintFromCertificate(s.ctxFor("alice"), "CERT-A", nil)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("unknown certificate is not found", func() {
		s.SetupTest()
		_, err := s.svc.MintFromCertificate(s.ctxFor("alice"), "CERT-NOPE", nil)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("explicit recipient receives the token", func() {
		s.SetupTest()
		s.seedSession("sess-1", "alice", "photo-1")
		s.seedCertificate("CERT-A", "sess-1", "alice")
		s.Require().NoError(s.tiers.SetTier(context.Background(), "alice", submodels.TierBasic))

		recipient := &models.Account{Owner: "gallery", Subaccount: []byte{0x01}}
		token, err := s.svc.MintFromCertificate(s.ctxFor("alice"), "CERT-A", recipient)
		s.Require().NoError(err)
		s.True(token.Owner.Equals(*recipient))
	})
}

// TestMintRollback injects a link-back failure through a mocked certificate
// ledger and checks the mint is fully undone while the token ID stays
// consumed.
func TestMintRollback(t *testing.T) {
	ctrl := gomock.NewController(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithCaller(requestcontext.WithTime(context.Background(), now), "alice")

	tokens := store.NewInMemoryStore()
	sessions := sessionstore.NewInMemoryStore()
	tiers := substore.NewInMemoryRegistry()
	ledger := mocks.NewMockCertificateLedger(ctrl)

	require.NoError(t, sessions.Save(ctx, &sessionmodels.Session{
		SessionID:     "sess-1",
		OwnerUsername: "alice",
		Title:         "Sunset Study",
		PhotoRefs:     []string{"photo-1"},
		Status:        sessionmodels.StatusActive,
	}))
	require.NoError(t, tiers.SetTier(ctx, "alice", submodels.TierBasic))

	cert := &certmodels.Certificate{
		CertificateID: "CERT-A",
		SessionID:     "sess-1",
		OwnerUsername: "alice",
		Title:         "Sunset Study",
		Status:        certmodels.StatusActive,
	}
	ledger.EXPECT().FindByID(gomock.Any(), "CERT-A").Return(cert, nil).Times(2)
	ledger.EXPECT().
		Execute(gomock.Any(), "CERT-A", gomock.Any(), gomock.Any()).
		Return(errors.New("ledger write failed"))

	svc, err := New(tokens, ledger, sessions, tiers)
	require.NoError(t, err)

	_, err = svc.MintFromCertificate(ctx, "CERT-A", nil)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeInternal))

	// The token insert was rolled back.
	supply, err := tokens.TotalSupply(ctx)
	require.NoError(t, err)
	require.Zero(t, supply)

	// The consumed ID is gone for good: the next mint gets ID 2.
	ledger.EXPECT().
		Execute(gomock.Any(), "CERT-A", gomock.Any(), gomock.Any()).
		Return(nil)
	token, err := svc.MintFromCertificate(ctx, "CERT-A", nil)
	require.NoError(t, err)
	require.Equal(t, uint64(2), token.ID)
}

func (s *MintSuite) TestMintFromSession() {
	s.Run("mints with session attributes and first photo image", func() {
		s.SetupTest()
		s.seedSession("sess-1", "alice", "photo-1", "photo-2")
		s.Require().NoError(s.tiers.SetTier(context.Background(), "alice", submodels.TierPremium))

		token, err := s.svc.MintFromSession(s.ctxFor("alice"), models.MintRequest{
			SessionID:            "sess-1",
			AdditionalAttributes: []models.Attribute{{TraitType: "exhibition", Value: "Spring 2026"}},
		})
		s.Require().NoError(err)

		s.Equal("Sunset Study - #1", token.Metadata.Name)
		s.Equal("photo-1", token.Metadata.Image)
		s.Equal("session_id", token.Metadata.Attributes[0].TraitType)

		var traits []string
		for _, attr := range token.Metadata.Attributes {
			traits = append(traits, attr.TraitType)
		}
		s.Contains(traits, "exhibition")
		s.Contains(traits, "photo_2")
	})

	s.Run("only the session owner may mint", func() {
		s.SetupTest()
		s.seedSession("sess-1", "alice", "photo-1")
		s.Require().NoError(s.tiers.SetTier(context.Background(), "bob", submodels.TierBasic))

		_, err := s.svc.MintFromSession(s.ctxFor("bob"), models.MintRequest{SessionID: "sess-1"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("tier gating matches certificate minting", func() {
		s.SetupTest()
		s.seedSession("sess-1", "alice", "photo-1")

		_, err := s.svc.MintFromSession(s.ctxFor("alice"), models.MintRequest{SessionID: "sess-1"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func (s *MintSuite) TestTransfer() {
	s.seedSession("sess-1", "alice", "photo-1")
	s.seedCertificate("CERT-A", "sess-1", "alice")
	s.Require().NoError(s.tiers.SetTier(context.Background(), "alice", submodels.TierBasic))
	token, err := s.svc.MintFromCertificate(s.ctxFor("alice"), "CERT-A", nil)
	s.Require().NoError(err)

	s.Run("owner transfers, wrong-from is rejected independently", func() {
		responses := s.svc.Transfer(s.ctxFor("alice"), []models.TransferRequest{
			{TokenID: token.ID, From: models.Account{Owner: "alice"}, To: models.Account{Owner: "bob"}},
			{TokenID: 999, From: models.Account{Owner: "alice"}, To: models.Account{Owner: "bob"}},
		})
		s.Require().Len(responses, 2)
		s.Empty(responses[0].Error)
		s.Equal("token not found", responses[1].Error)

		got, err := s.tokens.FindByID(context.Background(), token.ID)
		s.Require().NoError(err)
		s.Equal("bob", got.Owner.Owner)
	})

	s.Run("caller must match the from account", func() {
		responses := s.svc.Transfer(s.ctxFor("mallory"), []models.TransferRequest{
			{TokenID: token.ID, From: models.Account{Owner: "bob"}, To: models.Account{Owner: "mallory"}},
		})
		s.Require().Len(responses, 1)
		s.Equal("caller is not the owner", responses[0].Error)
	})

	s.Run("from account must currently hold the token", func() {
		responses := s.svc.Transfer(s.ctxFor("alice"), []models.TransferRequest{
			{TokenID: token.ID, From: models.Account{Owner: "alice"}, To: models.Account{Owner: "carol"}},
		})
		s.Require().Len(responses, 1)
		s.Equal("token not owned by from account", responses[0].Error)
	})
}

func (s *MintSuite) TestCertificateTokenMetadata() {
	s.seedSession("sess-1", "alice", "photo-1")
	s.seedCertificate("CERT-A", "sess-1", "alice")
	s.Require().NoError(s.tiers.SetTier(context.Background(), "alice", submodels.TierBasic))

	s.Run("before minting there is no metadata", func() {
		_, err := s.svc.CertificateTokenMetadata(s.ctxFor(""), "CERT-A")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("after minting the token metadata is returned", func() {
		token, err := s.svc.MintFromCertificate(s.ctxFor("alice"), "CERT-A", nil)
		s.Require().NoError(err)

		meta, err := s.svc.CertificateTokenMetadata(s.ctxFor(""), "CERT-A")
		s.Require().NoError(err)
		s.Equal(token.Metadata.Name, meta.Name)
	})
}

func TestTokenURI(t *testing.T) {
	require.Equal(t, fmt.Sprintf("%s/nft/42/metadata", tokenBaseURL), TokenURI(42))
}
