// Package session owns the process-wide session: the bearer token and the
// user snapshot taken at login. The store is the only writer; everything else
// reads through it or subscribes to changes.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/greenroots/storefront/internal/api"
	"github.com/greenroots/storefront/internal/model"
)

const sessionFile = "session.json"

// AuthAPI is the slice of the API client the store needs.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	GoogleLogin(ctx context.Context, credential string) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

type State struct {
	User    *model.User
	Token   string
	Loading bool
}

func (s State) IsAuthenticated() bool { return s.Token != "" }

func (s State) IsAdmin() bool {
	return s.User != nil && s.User.Role == model.RoleAdmin
}

// Result is what login/register style operations hand back to the UI. They
// never return an error value; failures land in Error.
type Result struct {
	Success     bool
	Message     string
	Error       string
	FieldErrors map[string]string
}

type Store struct {
	mu      sync.RWMutex
	state   State
	subs    map[int]func(State)
	nextSub int

	path string
	auth AuthAPI
	log  *zap.Logger
	now  func() time.Time
}

func NewStore(stateDir string, auth AuthAPI, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		state: State{Loading: true},
		subs:  make(map[int]func(State)),
		path:  filepath.Join(stateDir, sessionFile),
		auth:  auth,
		log:   log,
		now:   time.Now,
	}
}

type persisted struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Init restores a persisted session synchronously. There is no server
// round-trip: the cached user is trusted as-is, except that a token whose exp
// claim has already passed is discarded instead of presented as live.
func (s *Store) Init() {
	defer s.notify()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.setState(State{})
		return
	}
	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil || p.Token == "" {
		s.setState(State{})
		return
	}
	if expired, exp := tokenExpired(p.Token, s.now()); expired {
		s.log.Info("discarding expired session", zap.Time("expiredAt", exp))
		_ = os.Remove(s.path)
		s.setState(State{})
		return
	}
	s.setState(State{User: p.User, Token: p.Token})
}

// tokenExpired peeks at the JWT exp claim without verifying the signature.
// Tokens that do not parse as JWTs are left to the server to reject.
func tokenExpired(token string, now time.Time) (bool, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false, time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, time.Time{}
	}
	return exp.Time.Before(now), exp.Time
}

func (s *Store) Login(ctx context.Context, req api.LoginRequest) Result {
	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		return Result{Error: err.Error()}
	}
	if resp.Token == "" {
		return Result{Error: "Login failed"}
	}
	s.establish(resp)
	return Result{Success: true}
}

func (s *Store) GoogleLogin(ctx context.Context, credential string) Result {
	resp, err := s.auth.GoogleLogin(ctx, credential)
	if err != nil {
		return Result{Error: err.Error()}
	}
	if resp.Token == "" {
		return Result{Error: "Google login failed"}
	}
	s.establish(resp)
	return Result{Success: true}
}

// Register submits a registration. It does not log the user in.
func (s *Store) Register(ctx context.Context, form RegisterForm) Result {
	if fieldErrs := form.Validate(); len(fieldErrs) > 0 {
		return Result{Error: "Please fix the highlighted fields", FieldErrors: fieldErrs}
	}
	resp, err := s.auth.Register(ctx, api.RegisterRequest{
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
		Location: form.Location,
	})
	if err != nil {
		return Result{Error: err.Error()}
	}
	return Result{Success: true, Message: resp.Message}
}

func (s *Store) ForgotPassword(ctx context.Context, email string) Result {
	if err := s.auth.ForgotPassword(ctx, email); err != nil {
		return Result{Error: err.Error()}
	}
	return Result{Success: true, Message: "OTP sent to your email"}
}

func (s *Store) ResetPassword(ctx context.Context, email, otp, newPassword string) Result {
	if err := s.auth.ResetPassword(ctx, email, otp, newPassword); err != nil {
		return Result{Error: err.Error()}
	}
	return Result{Success: true, Message: "Password reset, please login"}
}

// Logout clears memory and disk synchronously. No server call.
func (s *Store) Logout() {
	_ = os.Remove(s.path)
	s.setState(State{})
	s.notify()
}

func (s *Store) establish(resp *api.AuthResponse) {
	user := resp.User
	s.setState(State{User: &user, Token: resp.Token})
	if err := s.persist(); err != nil {
		s.log.Warn("persist session", zap.Error(err))
	}
	s.notify()
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	s.mu.RLock()
	p := persisted{Token: s.state.Token, User: s.state.User}
	s.mu.RUnlock()
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token satisfies api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) IsAuthenticated() bool { return s.State().IsAuthenticated() }

func (s *Store) IsAdmin() bool { return s.State().IsAdmin() }

// Subscribe registers fn for every state change and returns an unsubscribe
// func. fn is invoked synchronously from the mutating goroutine.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	st := s.state
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(st)
	}
}
