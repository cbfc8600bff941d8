// Package dashboard aggregates platform totals for the operator view.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	dErrors "originstamp/pkg/domain-errors"
	"originstamp/pkg/platform/httputil"
)

// Counter reports the size of one collection.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// SupplyCounter reports the live token supply.
type SupplyCounter interface {
	TotalSupply(ctx context.Context) (uint64, error)
}

// Totals is the aggregated dashboard payload.
type Totals struct {
	Users        int    `json:"users"`
	Sessions     int    `json:"sessions"`
	Certificates int    `json:"certificates"`
	Tokens       uint64 `json:"tokens"`
}

// Service gathers totals from each domain concurrently.
type Service struct {
	users        Counter
	sessions     Counter
	certificates Counter
	tokens       SupplyCounter
	logger       *slog.Logger
}

// New creates a dashboard Service.
func New(users, sessions, certificates Counter, tokens SupplyCounter, logger *slog.Logger) *Service {
	return &Service{
		users:        users,
		sessions:     sessions,
		certificates: certificates,
		tokens:       tokens,
		logger:       logger,
	}
}

// Totals fans out the four counts and fails fast on the first error.
func (s *Service) Totals(ctx context.Context) (*Totals, error) {
	var totals Totals
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.users.Count(ctx)
		totals.Users = n
		return err
	})
	g.Go(func() error {
		n, err := s.sessions.Count(ctx)
		totals.Sessions = n
		return err
	})
	g.Go(func() error {
		n, err := s.certificates.Count(ctx)
		totals.Certificates = n
		return err
	})
	g.Go(func() error {
		n, err := s.tokens.TotalSupply(ctx)
		totals.Tokens = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "gathering dashboard totals")
	}
	return &totals, nil
}

// Register mounts the dashboard route.
func (s *Service) Register(r chi.Router) {
	r.Get("/dashboard", s.handleTotals)
}

func (s *Service) handleTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.Totals(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "dashboard totals failed", "error", err.Error())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, totals)
}
