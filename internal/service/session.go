package service

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Route names a screen of the shell.
type Route string

const (
	RouteSignIn   Route = "signin"
	RouteSignUp   Route = "signup"
	RouteWeeks    Route = "weeks"
	RouteProjects Route = "projects"
	RouteMetrics  Route = "metrics"
	RouteSettings Route = "settings"
)

// Routes lists every known route.
var Routes = []Route{RouteSignIn, RouteSignUp, RouteWeeks, RouteProjects, RouteMetrics, RouteSettings}

// ParseRoute returns the route named s.
func ParseRoute(s string) (Route, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range Routes {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a short user-facing message produced by an auth action.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func (n Notice) IsError() bool { return n.Kind == NoticeError }

// IdentityStore persists the last authenticated email between runs.
type IdentityStore interface {
	AuthEmail() string
	SetAuthEmail(email string)
}

// AuthSession tracks whether a user is signed in and guards routes.
type AuthSession struct {
	auth     Authenticator
	identity IdentityStore

	mu    sync.RWMutex
	email string
}

// NewAuthSession restores a signed-in state from identity when it holds an
// email.
func NewAuthSession(auth Authenticator, identity IdentityStore) *AuthSession {
	s := &AuthSession{auth: auth, identity: identity}
	if identity != nil {
		s.email = identity.AuthEmail()
	}
	return s
}

func (s *AuthSession) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email != ""
}

// Email returns the signed-in email, or "" when signed out.
func (s *AuthSession) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// Login checks the credentials. State only changes on success.
func (s *AuthSession) Login(ctx context.Context, email, password string) Notice {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Notice{Kind: NoticeError, Message: "Email and password are required"}
	}
	ok, err := s.auth.LoginUser(ctx, email, password)
	if err != nil {
		return Notice{Kind: NoticeError, Message: "Login failed"}
	}
	if !ok {
		return Notice{Kind: NoticeError, Message: "Invalid credentials"}
	}

	s.mu.Lock()
	s.email = email
	s.mu.Unlock()
	if s.identity != nil {
		s.identity.SetAuthEmail(email)
	}
	return Notice{Kind: NoticeSuccess, Message: "Welcome back"}
}

// Register creates an account. The session stays signed out so the user
// signs in afterwards.
func (s *AuthSession) Register(ctx context.Context, email, password, confirm string) Notice {
	if password != confirm {
		return Notice{Kind: NoticeError, Message: "Passwords do not match"}
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return Notice{Kind: NoticeError, Message: "Email and password are required"}
	}
	if err := s.auth.RegisterUser(ctx, email, password); err != nil {
		return Notice{Kind: NoticeError, Message: err.Error()}
	}
	return Notice{Kind: NoticeSuccess, Message: "Account created. You can sign in now."}
}

// Logout forgets the persisted identity.
func (s *AuthSession) Logout() {
	s.mu.Lock()
	s.email = ""
	s.mu.Unlock()
	if s.identity != nil {
		s.identity.SetAuthEmail("")
	}
}

// Resolve maps a requested route to the one that may be shown.
func (s *AuthSession) Resolve(r Route) Route {
	authed := s.Authenticated()
	switch {
	case !authed && r == RouteSignUp:
		return RouteSignUp
	case !authed:
		return RouteSignIn
	case r == RouteSignIn || r == RouteSignUp:
		return RouteWeeks
	}
	if _, ok := ParseRoute(string(r)); !ok {
		return RouteWeeks
	}
	return r
}
