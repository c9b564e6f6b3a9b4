package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/gophgive/internal/client/client"
	"github.com/dmitrijs2005/gophgive/internal/client/config"
	"github.com/dmitrijs2005/gophgive/internal/client/localdb"
	"github.com/dmitrijs2005/gophgive/internal/client/navigation"
	sessionrepo "github.com/dmitrijs2005/gophgive/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophgive/internal/client/services"
	"github.com/dmitrijs2005/gophgive/internal/client/session"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

type App struct {
	logger   logging.Logger
	store    *session.Store
	resolver *session.Resolver
	router   *navigation.Router
	gate     *navigation.Gate

	authService         services.AuthService
	profileService      services.ProfileService
	activityService     services.ActivityService
	pointsService       services.PointsService
	subscriptionService services.SubscriptionService

	reader  *bufio.Reader
	out     io.Writer
	closers []func() error
}

// NewApp opens the session backend selected by c and builds the API client
// and services on top of it.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.New(c.LogFormat, c.LogLevel, os.Stderr)

	repo, closeRepo, err := openSessionRepository(ctx, c)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(repo, logger)

	api, err := client.NewHTTPClient(c.BaseURL, store, c.RequestTimeout, logger)
	if err != nil {
		_ = closeRepo()
		return nil, err
	}

	a := newApp(store, api, logger, os.Stdin, os.Stdout)
	a.closers = append(a.closers, closeRepo)
	return a, nil
}

func newApp(store *session.Store, api client.Client, logger logging.Logger, in io.Reader, out io.Writer) *App {
	resolver := session.NewResolver(store)
	gate := services.NewActionGate(store, logger)

	return &App{
		logger:              logger.With("module", "cli"),
		store:               store,
		resolver:            resolver,
		router:              navigation.NewRouter(context.Background()),
		gate:                navigation.NewGate(resolver, logger),
		authService:         services.NewAuthService(api, store, logger),
		profileService:      services.NewProfileService(api, store, logger),
		activityService:     services.NewActivityService(api, store, gate, logger),
		pointsService:       services.NewPointsService(api, store),
		subscriptionService: services.NewSubscriptionService(api, store, gate, logger),
		reader:              bufio.NewReader(in),
		out:                 out,
	}
}

func openSessionRepository(ctx context.Context, c *config.Config) (sessionrepo.Repository, func() error, error) {
	switch c.SessionBackend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		return sessionrepo.NewRedisRepository(rdb, c.SessionScope), rdb.Close, nil

	default:
		db, err := localdb.Open(ctx, c.SessionDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("error initializing database: %w", err)
		}
		return sessionrepo.NewSQLiteRepository(db), db.Close, nil
	}
}

// Run attaches the navigation gate, opens the Home tab and blocks in the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	detach := a.gate.Attach(ctx, a.router)
	defer detach()

	if _, err := a.router.Reset(ctx, navigation.Home); err != nil {
		a.logger.Error(ctx, "cannot open home", "error", err)
	}

	fmt.Fprintln(a.out, "Welcome to gophgive (type 'help' for commands)")
	a.printTabs()

	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

func (a *App) close() {
	a.router.Close()
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.gate.Phase() == navigation.LoggedIn
}

// refreshGate re-resolves the session after a completed action.
func (a *App) refreshGate(ctx context.Context) error {
	a.gate.Refresh(ctx)
	return nil
}

// status is shown in the prompt: the current route and, when logged in,
// the cached user name.
func (a *App) status() string {
	s := ""
	if e := a.router.Current(); e != nil {
		s = string(e.Route)
	}
	if a.isLoggedIn() {
		name := a.store.Lookup(context.Background(), session.KeyUsername)
		if name == "" {
			name = services.DefaultName
		}
		s = fmt.Sprintf("%s %s", name, s)
	}
	return s
}
