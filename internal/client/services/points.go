package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophgive/internal/client/client"
	"github.com/dmitrijs2005/gophgive/internal/client/models"
	"github.com/dmitrijs2005/gophgive/internal/client/session"
)

type PointsService interface {
	Summary(ctx context.Context) (*models.AchievementSummary, error)
}

type pointsService struct {
	client client.Client
	store  *session.Store
}

func NewPointsService(client client.Client, store *session.Store) PointsService {
	return &pointsService{client: client, store: store}
}

// Summary needs both a token and a user id; otherwise it returns
// *AuthRequiredError without calling the server.
func (s *pointsService) Summary(ctx context.Context) (*models.AchievementSummary, error) {
	snap := s.store.Snapshot(ctx)
	if !snap.Authenticated() || snap.UserID == "" {
		return nil, &AuthRequiredError{Action: ActionViewPoints}
	}

	sum, err := s.client.Achievements(ctx, snap.UserID)
	if err != nil {
		return nil, fmt.Errorf("achievements error: %w", err)
	}
	return sum, nil
}
