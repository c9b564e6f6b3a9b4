package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophgive/internal/client/client"
	"github.com/dmitrijs2005/gophgive/internal/client/models"
	"github.com/dmitrijs2005/gophgive/internal/client/session"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

const (
	DefaultName  = "User"
	DefaultEmail = "user@example.com"
	defaultRole  = "user"

	recentActivityLimit = 5
)

// Source tells where an IdentityView came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
)

// IdentityView is what the profile screen shows. Name and Email are never
// empty.
type IdentityView struct {
	Name                     string
	Email                    string
	Role                     string
	Points                   int
	TotalDonations           int
	TotalVolunteerActivities int
	Achievements             []models.Achievement
	RecentActivity           []models.PointLog
	Source                   Source
	Authenticated            bool
}

func (v IdentityView) IsAdmin() bool { return v.Role == "admin" }

// UpdateResult reports whether a profile edit reached the server. When
// Remote is false the change only lives in the local cache and RemoteErr
// says why, unless there was no session to send it with.
type UpdateResult struct {
	Remote    bool
	RemoteErr error
}

type ProfileService interface {
	Load(ctx context.Context) IdentityView
	Update(ctx context.Context, name string) (UpdateResult, error)
}

type profileService struct {
	client client.Client
	store  *session.Store
	logger logging.Logger
}

func NewProfileService(client client.Client, store *session.Store, logger logging.Logger) ProfileService {
	return &profileService{client: client, store: store, logger: logger.With("module", "profile_service")}
}

// Load never fails: remote errors fall back to the cached name and email
// and then to DefaultName and DefaultEmail.
func (s *profileService) Load(ctx context.Context) IdentityView {
	snap := s.store.Snapshot(ctx)

	if !snap.Authenticated() {
		return cachedView(snap)
	}

	u, err := s.client.Profile(ctx)
	if err != nil {
		s.logger.Warn(ctx, "profile fetch failed, using cache", "error", err)
		v := cachedView(snap)
		v.Authenticated = true
		return v
	}

	if err := s.store.CacheIdentity(ctx, u.Identifier(), u.DisplayName(), u.Email); err != nil {
		s.logger.Warn(ctx, "profile cache-back failed", "error", err)
	}

	v := IdentityView{
		Name:                     firstNonEmpty(u.DisplayName(), snap.Username, DefaultName),
		Email:                    firstNonEmpty(u.Email, snap.Email, DefaultEmail),
		Role:                     firstNonEmpty(u.Role, defaultRole),
		Points:                   u.Point,
		TotalDonations:           u.TotalDonations,
		TotalVolunteerActivities: u.TotalVolunteerActivities,
		Achievements:             u.Achievements,
		RecentActivity:           u.ActivityLog,
		Source:                   SourceRemote,
		Authenticated:            true,
	}
	if len(v.RecentActivity) > recentActivityLimit {
		v.RecentActivity = v.RecentActivity[:recentActivityLimit]
	}
	return v
}

// Update always caches name locally and sends it to the server when a
// session exists.
func (s *profileService) Update(ctx context.Context, name string) (UpdateResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UpdateResult{}, ErrNameRequired
	}

	var res UpdateResult
	if token, err := s.store.AccessToken(ctx); err == nil && token != "" {
		if err := s.client.UpdateProfile(ctx, name); err != nil {
			s.logger.Warn(ctx, "profile update failed, saving locally", "error", err)
			res.RemoteErr = err
		} else {
			res.Remote = true
		}
	}

	if err := s.store.Set(ctx, session.KeyUsername, name); err != nil {
		if !res.Remote {
			return res, fmt.Errorf("failed to save profile: %w", err)
		}
		s.logger.Warn(ctx, "profile cache update failed", "error", err)
	}
	return res, nil
}

func cachedView(snap session.Session) IdentityView {
	return IdentityView{
		Name:   firstNonEmpty(snap.Username, DefaultName),
		Email:  firstNonEmpty(snap.Email, DefaultEmail),
		Role:   defaultRole,
		Source: SourceCache,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
