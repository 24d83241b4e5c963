package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rgupta87/portfolio-analyzer/internal/analytics"
	"github.com/rgupta87/portfolio-analyzer/internal/broker"
	"github.com/rgupta87/portfolio-analyzer/internal/models"
	"github.com/rs/zerolog"
)

// Store defines the database operations the service needs
type Store interface {
	UpsertUser(u *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	ReplaceAllHoldings(userID int, holdings []*models.Holding) error
	GetHoldingsByUserID(userID int) ([]models.Holding, error)
	ReplaceRecommendations(userID int, recommendations []*models.Recommendation) error
}

// Broker defines the brokerage API operations the service needs
type Broker interface {
	LoginURL() string
	GenerateSession(ctx context.Context, requestToken string) (*broker.Session, error)
	Profile(ctx context.Context, accessToken string) (*broker.Profile, error)
	Holdings(ctx context.Context, accessToken string) ([]map[string]interface{}, error)
}

// SectorCache caches the per-user sector lookup between sync and analysis
type SectorCache interface {
	Get(ctx context.Context, userID int) (map[string]string, error)
	Set(ctx context.Context, userID int, sectors map[string]string) error
}

// Events publishes portfolio lifecycle events. Publishing is best effort:
// a broken broker connection never fails a user request.
type Events interface {
	PublishPortfolioSynced(ctx context.Context, email string, holdingsCount int, totalValue float64) error
	PublishAnalysisGenerated(ctx context.Context, email string, holdingsCount int) error
}

// PortfolioService orchestrates sync and analysis for one user at a time.
// A per-user mutex keeps concurrent requests for the same user from
// interleaving their delete-then-insert cycles; different users never
// contend.
type PortfolioService struct {
	store  Store
	broker Broker
	cache  SectorCache
	events Events
	logger zerolog.Logger

	userLocks sync.Map // userID -> *sync.Mutex
}

// New creates a PortfolioService. cache and events may be nil.
func New(store Store, brokerClient Broker, cache SectorCache, events Events, logger zerolog.Logger) *PortfolioService {
	return &PortfolioService{
		store:  store,
		broker: brokerClient,
		cache:  cache,
		events: events,
		logger: logger,
	}
}

// LoginURL returns the brokerage login URL for the frontend redirect
func (s *PortfolioService) LoginURL() string {
	return s.broker.LoginURL()
}

// Authenticate exchanges the post-login request token for a session,
// fetches the user's profile, and upserts the user with the fresh access
// token.
func (s *PortfolioService) Authenticate(ctx context.Context, requestToken string) (*models.User, error) {
	session, err := s.broker.GenerateSession(ctx, requestToken)
	if err != nil {
		return nil, &ProviderError{Op: "generate session", Err: err}
	}

	profile, err := s.broker.Profile(ctx, session.AccessToken)
	if err != nil {
		return nil, &ProviderError{Op: "fetch profile", Err: err}
	}
	if profile.Email == "" {
		return nil, &ProviderError{Op: "fetch profile", Err: fmt.Errorf("email not provided by broker profile")}
	}

	user := &models.User{
		Email:       profile.Email,
		Name:        profile.DisplayName(),
		AccessToken: session.AccessToken,
	}
	if err := s.store.UpsertUser(user); err != nil {
		return nil, &PersistenceError{Op: "upsert user", Err: err}
	}

	s.logger.Info().Str("email", user.Email).Msg("user authenticated")
	return user, nil
}

// SyncPortfolio fetches the user's holdings from the brokerage, replaces
// the persisted snapshot, and returns the portfolio summary. Records
// without a symbol are skipped, never failing the batch.
func (s *PortfolioService) SyncPortfolio(ctx context.Context, user *models.User) (*models.PortfolioSummary, error) {
	unlock := s.lockUser(user.ID)
	defer unlock()

	raws, err := s.broker.Holdings(ctx, user.AccessToken)
	if err != nil {
		return nil, &ProviderError{Op: "fetch holdings", Err: err}
	}

	holdings := make([]*models.Holding, 0, len(raws))
	for _, raw := range raws {
		h, err := analytics.NormalizeHolding(raw)
		if err != nil {
			s.logger.Warn().Err(err).Msg("skipping holding record")
			continue
		}
		holdings = append(holdings, &h)
	}

	if err := s.store.ReplaceAllHoldings(user.ID, holdings); err != nil {
		return nil, &PersistenceError{Op: "replace holdings", Err: err}
	}

	s.cacheSectors(ctx, user.ID, analytics.SectorLookup(raws))

	values := make([]models.Holding, len(holdings))
	for i, h := range holdings {
		values[i] = *h
	}
	summary := analytics.Summarize(values)

	if s.events != nil {
		if err := s.events.PublishPortfolioSynced(ctx, user.Email, len(holdings), summary.TotalValue); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish sync event")
		}
	}

	s.logger.Info().Str("email", user.Email).Int("holdings", len(holdings)).Msg("portfolio synced")
	return &summary, nil
}

// GenerateAnalysis computes the analysis report over the persisted
// holdings and atomically replaces the user's stored recommendations.
// Requires a prior sync: an empty snapshot fails with ErrHoldingsNotFound
// and writes nothing.
func (s *PortfolioService) GenerateAnalysis(ctx context.Context, user *models.User) (*models.AnalysisReport, error) {
	unlock := s.lockUser(user.ID)
	defer unlock()

	sectors, err := s.sectorLookup(ctx, user)
	if err != nil {
		return nil, err
	}

	holdings, err := s.store.GetHoldingsByUserID(user.ID)
	if err != nil {
		return nil, &PersistenceError{Op: "get holdings", Err: err}
	}
	if len(holdings) == 0 {
		return nil, ErrHoldingsNotFound
	}

	report := analytics.ComputeAnalysis(holdings, sectors, time.Now().UTC())

	recommendations := make([]*models.Recommendation, len(report.Recommendations))
	for i := range report.Recommendations {
		recommendations[i] = &report.Recommendations[i]
	}
	if err := s.store.ReplaceRecommendations(user.ID, recommendations); err != nil {
		return nil, &PersistenceError{Op: "replace recommendations", Err: err}
	}

	if s.events != nil {
		if err := s.events.PublishAnalysisGenerated(ctx, user.Email, len(holdings)); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish analysis event")
		}
	}

	s.logger.Info().Str("email", user.Email).Int("recommendations", len(recommendations)).Msg("analysis generated")
	return &report, nil
}

// sectorLookup returns the sector map from cache when possible, falling
// back to a fresh brokerage fetch
func (s *PortfolioService) sectorLookup(ctx context.Context, user *models.User) (map[string]string, error) {
	if s.cache != nil {
		sectors, err := s.cache.Get(ctx, user.ID)
		if err != nil {
			s.logger.Warn().Err(err).Msg("sector cache read failed")
		} else if sectors != nil {
			return sectors, nil
		}
	}

	raws, err := s.broker.Holdings(ctx, user.AccessToken)
	if err != nil {
		return nil, &ProviderError{Op: "fetch holdings", Err: err}
	}

	sectors := analytics.SectorLookup(raws)
	s.cacheSectors(ctx, user.ID, sectors)
	return sectors, nil
}

func (s *PortfolioService) cacheSectors(ctx context.Context, userID int, sectors map[string]string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, userID, sectors); err != nil {
		s.logger.Warn().Err(err).Msg("sector cache write failed")
	}
}

func (s *PortfolioService) lockUser(userID int) func() {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	lock := mu.(*sync.Mutex)
	lock.Lock()
	return lock.Unlock
}
