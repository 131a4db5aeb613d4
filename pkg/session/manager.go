package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/skillhub/learnkit/pkg/apiclient"
	"github.com/skillhub/learnkit/pkg/async"
	"github.com/skillhub/learnkit/pkg/broadcast"
	"github.com/skillhub/learnkit/pkg/cache"
	"github.com/skillhub/learnkit/pkg/statemachine"
	"github.com/skillhub/learnkit/pkg/tokenstore"
)

// CurrentUserKey is the cache key under which the authenticated profile
// lives in the shared keyed cache.
const CurrentUserKey = "current-user"

// Session lifecycle phases.
const (
	phaseUninitialized statemachine.State = "uninitialized"
	phaseInitializing  statemachine.State = "initializing"
	phaseAuthenticated statemachine.State = "authenticated"
	phaseAnonymous     statemachine.State = "anonymous"
)

const (
	eventTokenFound       statemachine.Event = "token_found"
	eventNoToken          statemachine.Event = "no_token"
	eventProfileLoaded    statemachine.Event = "profile_loaded"
	eventValidationFailed statemachine.Event = "validation_failed"
	eventLoggedIn         statemachine.Event = "logged_in"
	eventLoggedOut        statemachine.Event = "logged_out"
	eventSessionLost      statemachine.Event = "session_lost"
)

func lifecycleTransitions() []statemachine.Transition {
	return []statemachine.Transition{
		statemachine.T(phaseUninitialized, eventTokenFound, phaseInitializing),
		statemachine.T(phaseUninitialized, eventNoToken, phaseAnonymous),
		statemachine.T(phaseUninitialized, eventLoggedOut, phaseAnonymous),
		statemachine.T(phaseInitializing, eventProfileLoaded, phaseAuthenticated),
		statemachine.T(phaseInitializing, eventValidationFailed, phaseAnonymous),
		statemachine.T(phaseInitializing, eventLoggedOut, phaseAnonymous),
		statemachine.T(phaseAnonymous, eventLoggedIn, phaseAuthenticated),
		// Logout is idempotent: a second call is a local no-op.
		statemachine.T(phaseAnonymous, eventLoggedOut, phaseAnonymous),
		statemachine.T(phaseAuthenticated, eventLoggedIn, phaseAuthenticated),
		statemachine.T(phaseAuthenticated, eventLoggedOut, phaseAnonymous),
		statemachine.T(phaseAuthenticated, eventSessionLost, phaseAnonymous),
	}
}

// Transport issues credential and profile requests to the remote API.
// *apiclient.Client satisfies it.
type Transport interface {
	Login(ctx context.Context, email, password string) (*apiclient.AuthResult, error)
	Register(ctx context.Context, params apiclient.RegisterParams) (*apiclient.AuthResult, error)
	Me(ctx context.Context, token string) (*apiclient.User, error)
	Logout(ctx context.Context, token string) error
}

// Manager owns the session state machine. It is the only component
// permitted to mutate the token store and the cached profile; everything
// else consumes the derived Snapshot.
type Manager struct {
	store     tokenstore.Store
	transport Transport
	cache     *cache.KeyedCache[*apiclient.User]
	bus       *broadcast.Broadcaster[Snapshot]
	machine   *statemachine.Machine
	logger    *slog.Logger
	config    Config

	// mu guards user and epoch; machine fires are serialized under it so
	// transitions apply in the order their owning operations commit.
	mu    sync.RWMutex
	user  *apiclient.User
	epoch uint64

	// fetching counts in-flight profile fetches for the loading flag.
	fetching atomic.Int32

	init *async.Future[struct{}]
	done chan struct{}
}

// New creates a session manager and starts its background startup
// validation: a stored token is resolved to a profile, an absent token
// settles the session anonymous without any network call. Construction
// never blocks; use Ready, Snapshot or Subscribe to observe the outcome.
func New(transport Transport, opts ...Option) *Manager {
	m := &Manager{
		transport: transport,
		config:    DefaultConfig(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		path := m.config.TokenPath
		if path == "" {
			defaultPath, err := tokenstore.DefaultTokenPath()
			if err != nil {
				// No durable location available: fall back to an ephemeral
				// slot rather than failing construction.
				m.logger.Warn("no durable token path, using in-memory store", slog.Any("error", err))
				m.store = tokenstore.NewMemoryStore()
			} else {
				path = defaultPath
			}
		}
		if m.store == nil {
			m.store = tokenstore.NewFileStore(path)
		}
	}

	if m.cache == nil {
		m.cache = cache.NewKeyed[*apiclient.User](cache.WithTTL(m.config.ProfileFreshness))
	}
	m.cache.Register(CurrentUserKey, m.fetchProfile)

	m.machine = statemachine.New(phaseUninitialized, lifecycleTransitions())
	m.bus = broadcast.New[Snapshot](8)

	m.init = async.Run(context.Background(), func(ctx context.Context) (struct{}, error) {
		m.initialize(ctx)
		return struct{}{}, nil
	})

	return m
}

// NewFromConfig builds the transport and token store from configuration
// and returns a running manager.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	client, err := apiclient.New(cfg.APIBaseURL)
	if err != nil {
		return nil, err
	}
	return New(client, append([]Option{WithConfig(cfg)}, opts...)...), nil
}

// Ready blocks until the startup validation has settled, or until ctx is
// cancelled. After Ready returns nil the session is either authenticated
// or anonymous; startup failures are absorbed into the anonymous state,
// never returned.
func (m *Manager) Ready(ctx context.Context) error {
	_, err := m.init.Await(ctx)
	return err
}

// Snapshot returns the current derived session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	user := m.user
	m.mu.RUnlock()

	phase := m.machine.Current()
	loading := phase == phaseUninitialized || phase == phaseInitializing || m.fetching.Load() > 0

	return Snapshot{User: user, Loading: loading}
}

// Subscribe returns a subscription delivering a Snapshot on every session
// transition. The subscription ends when ctx is cancelled or the manager
// closes.
func (m *Manager) Subscribe(ctx context.Context) *broadcast.Subscription[Snapshot] {
	return m.bus.Subscribe(ctx)
}

// Login exchanges credentials for a session. On success the token is
// persisted, the profile force-refreshed and confirmed, and the session
// becomes authenticated. A transport or credential failure leaves local
// state untouched. If credentials are accepted but the profile cannot be
// confirmed, local state fails closed and ErrPostLoginProfileFetch is
// returned.
func (m *Manager) Login(ctx context.Context, email, password string) (*apiclient.User, error) {
	if m.isClosed() {
		return nil, ErrClosed
	}
	// Let startup validation settle first so a stale in-flight fetch
	// cannot race the fresh login.
	if err := m.Ready(ctx); err != nil {
		return nil, err
	}

	result, err := m.transport.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return m.establish(ctx, result)
}

// Register creates an account and establishes its session with the same
// contract as Login. Field-level rejections surface unchanged as
// learnkit.ValidationError so callers can render per-field messages.
func (m *Manager) Register(ctx context.Context, name, email, password string) (*apiclient.User, error) {
	if m.isClosed() {
		return nil, ErrClosed
	}
	if err := m.Ready(ctx); err != nil {
		return nil, err
	}

	result, err := m.transport.Register(ctx, apiclient.RegisterParams{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: password,
	})
	if err != nil {
		return nil, err
	}

	return m.establish(ctx, result)
}

// Logout ends the local session unconditionally and synchronously: when
// it returns, the token is cleared, the cached profile invalidated and
// the session anonymous. The remote revocation runs in the background
// and its failure is logged, never surfaced — the user can always end
// their local session.
func (m *Manager) Logout(ctx context.Context) {
	if m.isClosed() {
		return
	}

	token, _ := m.store.Read(ctx)

	m.mu.Lock()
	m.epoch++
	m.user = nil
	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		m.logger.Warn("token store clear failed", slog.Any("error", err))
	}
	m.cache.Invalidate(CurrentUserKey)
	m.fire(eventLoggedOut)
	m.mu.Unlock()

	m.publish()

	if token == "" {
		return
	}
	go func() {
		remoteCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.config.LogoutTimeout)
		defer cancel()
		if err := m.transport.Logout(remoteCtx, token); err != nil {
			m.logger.Warn("remote logout failed", slog.Any("error", err))
		}
	}()
}

// Refresh re-fetches the profile for the current token so the cached
// identity stays consistent with server state after profile-mutating
// operations. Fetch failures are absorbed: the session fails closed and
// the outcome is reflected in the returned snapshot, not an error.
func (m *Manager) Refresh(ctx context.Context) Snapshot {
	if m.isClosed() {
		return m.Snapshot()
	}
	if err := m.Ready(ctx); err != nil {
		return m.Snapshot()
	}

	m.mu.RLock()
	epoch := m.epoch
	anonymous := m.user == nil
	m.mu.RUnlock()

	if anonymous {
		return m.Snapshot()
	}

	m.fetching.Add(1)
	m.publish()
	user, err := m.cache.Refresh(ctx, CurrentUserKey)
	m.fetching.Add(-1)

	if err != nil {
		m.failClosed(ctx, epoch, eventSessionLost, err)
		return m.Snapshot()
	}

	m.applyUser(epoch, user, "")
	return m.Snapshot()
}

// Close shuts the manager down and ends all subscriptions. Idempotent.
func (m *Manager) Close() error {
	select {
	case <-m.done:
		return nil
	default:
		close(m.done)
		m.bus.Close()
		return nil
	}
}

// initialize performs the startup validation. All failures are absorbed
// into the anonymous state: an expired session is routine, not an error
// the consumer should see.
func (m *Manager) initialize(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, m.config.InitTimeout)
	defer cancel()

	m.mu.RLock()
	epoch := m.epoch
	m.mu.RUnlock()

	if _, err := m.store.Read(ctx); err != nil {
		if !errors.Is(err, tokenstore.ErrTokenNotFound) {
			m.logger.Warn("token store unreadable, treating token as absent", slog.Any("error", err))
		}
		m.transition(epoch, eventNoToken)
		return
	}

	if !m.transition(epoch, eventTokenFound) {
		return
	}

	user, err := m.cache.Get(ctx, CurrentUserKey)
	if err != nil {
		m.failClosed(ctx, epoch, eventValidationFailed, err)
		return
	}

	m.applyUser(epoch, user, eventProfileLoaded)
}

// establish persists the token from a successful login or registration
// and confirms the profile with a forced refresh. The operation is not
// complete until the profile resolves.
func (m *Manager) establish(ctx context.Context, result *apiclient.AuthResult) (*apiclient.User, error) {
	// A new epoch supersedes any in-flight fetch from the previous
	// session state before the new token becomes visible.
	m.mu.Lock()
	m.epoch++
	epoch := m.epoch
	m.mu.Unlock()

	if err := m.store.Write(ctx, result.Token); err != nil {
		// The session still works for this process; it will not survive a
		// restart.
		m.logger.Warn("token store write failed", slog.Any("error", err))
	}

	m.fetching.Add(1)
	m.publish()
	user, err := m.cache.Refresh(ctx, CurrentUserKey)
	m.fetching.Add(-1)

	if err != nil {
		m.failClosed(ctx, epoch, eventSessionLost, err)
		return nil, errors.Join(ErrPostLoginProfileFetch, err)
	}

	m.applyUser(epoch, user, eventLoggedIn)
	return user, nil
}

// fetchProfile is the gated fetcher bound to CurrentUserKey: without a
// stored token it refuses to execute, which is what prevents
// unauthenticated profile fetches.
func (m *Manager) fetchProfile(ctx context.Context) (*apiclient.User, error) {
	token, err := m.store.Read(ctx)
	if err != nil {
		return nil, cache.ErrFetchDisabled
	}
	return m.transport.Me(ctx, token)
}

// failClosed reverts to the anonymous state: token cleared, cache entry
// invalidated, profile dropped. A stale epoch means a newer operation
// already superseded this one and the result is discarded instead.
func (m *Manager) failClosed(ctx context.Context, epoch uint64, event statemachine.Event, cause error) {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return
	}
	m.epoch++
	m.user = nil
	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		m.logger.Warn("token store clear failed", slog.Any("error", err))
	}
	m.cache.Invalidate(CurrentUserKey)
	switch {
	case m.machine.CanFire(event):
		m.fire(event)
	case m.machine.Is(phaseAnonymous):
		// Already anonymous; nothing to transition.
	default:
		m.fire(event) // surfaces the illegal edge in the log
	}
	m.mu.Unlock()

	m.logger.Debug("session failed closed", slog.Any("cause", cause))
	m.publish()
}

// transition fires a phase event if the operation's epoch still owns the
// session. Reports whether it applied.
func (m *Manager) transition(epoch uint64, event statemachine.Event) bool {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return false
	}
	m.fire(event)
	m.mu.Unlock()

	m.publish()
	return true
}

// applyUser installs a freshly fetched profile. An empty event updates
// the profile without a phase change (refresh).
func (m *Manager) applyUser(epoch uint64, user *apiclient.User, event statemachine.Event) bool {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return false
	}
	m.user = user
	if event != "" {
		m.fire(event)
	}
	m.mu.Unlock()

	m.publish()
	return true
}

// fire applies an event to the lifecycle machine. Callers hold m.mu, so
// transitions commit in operation order. An undeclared edge is a bug.
func (m *Manager) fire(event statemachine.Event) {
	if _, err := m.machine.Fire(event); err != nil {
		m.logger.Error("illegal session transition", slog.Any("error", err))
	}
}

func (m *Manager) publish() {
	m.bus.Publish(m.Snapshot())
}

func (m *Manager) isClosed() bool {
	select {
	case <-m.done:
		return true
	default:
		return false
	}
}
