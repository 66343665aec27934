package gate

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Shamu9311/sport-front/internal/api"
	"github.com/Shamu9311/sport-front/internal/logging"
	"github.com/Shamu9311/sport-front/internal/models"
	"github.com/Shamu9311/sport-front/internal/storage"
)

// Storage keys for the persisted session.
const (
	keyUser  = "user"
	keyToken = "token"
)

// State is the collapsed session/profile state.
type State int

const (
	// StateLoading holds until the stored session has been restored.
	// No navigation decisions are made in this state.
	StateLoading State = iota

	// StateSignedOut means no valid session exists.
	StateSignedOut

	// StateProfileUnknown means a session exists but the profile check has
	// not started yet.
	StateProfileUnknown

	// StateProfileChecking means the profile check is in flight.
	StateProfileChecking

	// StateNoProfile means the signed-in user has no nutrition profile.
	StateNoProfile

	// StateReady means the signed-in user has a complete profile.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSignedOut:
		return "signed-out"
	case StateProfileUnknown:
		return "profile-unknown"
	case StateProfileChecking:
		return "profile-checking"
	case StateNoProfile:
		return "no-profile"
	case StateReady:
		return "ready"
	}
	return "invalid"
}

// ProfileStatus is what the gate knows about the user's profile.
type ProfileStatus int

const (
	ProfileStatusUnknown ProfileStatus = iota
	ProfileStatusAbsent
	ProfileStatusPresent
)

// Session is the client's record of an authenticated user plus its bearer
// token. A session exists only when both parts are present.
type Session struct {
	User  models.User
	Token string
}

// ProfileChecker is the remote collaborator that answers "does this user
// have a profile". api.Client satisfies it.
type ProfileChecker interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
}

// Snapshot is a consistent view of the gate taken under its lock. The
// session and profile status always belong to the same generation; a guard
// never observes a session paired with another user's profile status.
type Snapshot struct {
	State   State
	Session *Session
	Profile ProfileStatus
}

// Gate is the session/profile state machine. It is safe for concurrent use;
// every transition is applied atomically and then reported to subscribers.
type Gate struct {
	mu      sync.Mutex
	store   storage.Repository
	checker ProfileChecker
	log     logging.Logger
	now     func() time.Time

	loading  bool
	session  *Session
	profile  ProfileStatus
	checking bool

	// gen increments on every login/logout; an in-flight profile check
	// only applies its result when the generation it was started for is
	// still current.
	gen uint64

	subs []func(Snapshot)
}

func New(store storage.Repository, checker ProfileChecker, log logging.Logger) *Gate {
	return &Gate{
		store:   store,
		checker: checker,
		log:     log,
		now:     time.Now,
		loading: true,
	}
}

// Subscribe registers fn to run after every state transition with the
// snapshot that transition produced. Handlers run on the transitioning
// goroutine and must not call back into the gate.
func (g *Gate) Subscribe(fn func(Snapshot)) {
	g.mu.Lock()
	g.subs = append(g.subs, fn)
	g.mu.Unlock()
}

// Snapshot returns a consistent view of the current state.
func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// State returns the current collapsed state.
func (g *Gate) State() State {
	return g.Snapshot().State
}

// Token returns the current bearer token, or "" when signed out. It lets
// the gate serve as the API client's token source.
func (g *Gate) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return ""
	}
	return g.session.Token
}

// Restore loads the persisted session, if any. Partial state (a user
// without a token or vice versa), corrupt JSON, a locally expired token, or
// a storage failure all degrade to signed-out. Restore must be called once
// before the gate makes navigation decisions; it then triggers the profile
// check for a restored session.
func (g *Gate) Restore(ctx context.Context) {
	sess := g.loadStored(ctx)

	g.mu.Lock()
	g.loading = false
	g.session = sess
	g.profile = ProfileStatusUnknown
	g.gen++
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)

	if sess != nil {
		g.log.Info(ctx, "session restored", "user", sess.User.Username)
		g.CheckProfile(ctx)
	}
}

func (g *Gate) loadStored(ctx context.Context) *Session {
	rawUser, err := g.store.Get(ctx, keyUser)
	if err != nil {
		g.log.Warn(ctx, "failed to read stored session", "error", err)
		return nil
	}
	rawToken, err := g.store.Get(ctx, keyToken)
	if err != nil {
		g.log.Warn(ctx, "failed to read stored token", "error", err)
		return nil
	}
	if len(rawUser) == 0 || len(rawToken) == 0 {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(rawUser, &u); err != nil {
		g.log.Warn(ctx, "stored session is corrupt, discarding", "error", err)
		return nil
	}

	token := string(rawToken)
	if api.TokenExpired(token, g.now()) {
		g.log.Info(ctx, "stored token expired, discarding session", "user", u.Username)
		return nil
	}
	return &Session{User: u, Token: token}
}

// Login installs a fresh session, persists it atomically, and runs the
// profile check for the new user. The check is sequenced strictly after the
// session commit; a concurrent guard sees profile-unknown or
// profile-checking in between and stays silent.
func (g *Gate) Login(ctx context.Context, user models.User, token string) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := g.store.SetAll(ctx, map[string][]byte{
		keyUser:  rawUser,
		keyToken: []byte(token),
	}); err != nil {
		return err
	}

	g.mu.Lock()
	g.loading = false
	g.session = &Session{User: user, Token: token}
	g.profile = ProfileStatusUnknown
	g.checking = false
	g.gen++
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)

	g.log.Info(ctx, "session saved", "user", user.Username)
	g.CheckProfile(ctx)
	return nil
}

// Logout clears the session and the persisted copy. It is also the forced
// path when the API reports an invalidated token; it is idempotent.
func (g *Gate) Logout(ctx context.Context) {
	if err := g.store.Clear(ctx); err != nil {
		g.log.Warn(ctx, "failed to clear stored session", "error", err)
	}

	g.mu.Lock()
	g.loading = false
	g.session = nil
	g.profile = ProfileStatusUnknown
	g.checking = false
	g.gen++
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)

	g.log.Info(ctx, "session cleared")
}

// CheckProfile resolves the profile status for the current session by
// asking the remote collaborator. Any failure counts as "no profile"; the
// check never surfaces an error. The result is discarded when the session
// changed while the check was in flight, so a slow response can never leak
// one user's profile status into another's session.
func (g *Gate) CheckProfile(ctx context.Context) {
	g.mu.Lock()
	if g.session == nil {
		g.mu.Unlock()
		return
	}
	userID := g.session.User.ID
	gen := g.gen
	g.checking = true
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)

	profile, err := g.checker.GetProfile(ctx, userID)

	status := ProfileStatusAbsent
	switch {
	case err != nil:
		g.log.Warn(ctx, "profile check failed, treating as no profile", "user_id", userID, "error", err)
	case profile != nil:
		status = ProfileStatusPresent
	}

	g.mu.Lock()
	if g.gen != gen {
		g.mu.Unlock()
		g.log.Debug(ctx, "discarding stale profile check result", "user_id", userID)
		return
	}
	g.checking = false
	g.profile = status
	snap = g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
}

// ProfileSaved flips the gate to "profile present" after a successful
// profile save, without waiting for re-verification.
func (g *Gate) ProfileSaved() {
	g.mu.Lock()
	if g.session == nil {
		g.mu.Unlock()
		return
	}
	g.checking = false
	g.profile = ProfileStatusPresent
	snap := g.snapshotLocked()
	g.mu.Unlock()
	g.notify(snap)
}

func (g *Gate) snapshotLocked() Snapshot {
	snap := Snapshot{Profile: g.profile}
	if g.session != nil {
		s := *g.session
		snap.Session = &s
	}

	switch {
	case g.loading:
		snap.State = StateLoading
	case g.session == nil:
		snap.State = StateSignedOut
	case g.checking:
		snap.State = StateProfileChecking
	case g.profile == ProfileStatusUnknown:
		snap.State = StateProfileUnknown
	case g.profile == ProfileStatusAbsent:
		snap.State = StateNoProfile
	default:
		snap.State = StateReady
	}
	return snap
}

func (g *Gate) notify(snap Snapshot) {
	g.mu.Lock()
	subs := make([]func(Snapshot), len(g.subs))
	copy(subs, g.subs)
	g.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
