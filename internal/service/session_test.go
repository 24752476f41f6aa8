package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memIdentity struct{ email string }

func (m *memIdentity) AuthEmail() string     { return m.email }
func (m *memIdentity) SetAuthEmail(e string) { m.email = e }

func TestAuthSession_RestoresPersistedIdentity(t *testing.T) {
	gw, _ := newTestGateway(t)
	s := NewAuthSession(gw, &memIdentity{email: "ada@example.com"})

	assert.True(t, s.Authenticated())
	assert.Equal(t, "ada@example.com", s.Email())
	assert.Equal(t, RouteWeeks, s.Resolve(RouteSignIn))
}

func TestAuthSession_LoginFlow(t *testing.T) {
	gw, _ := newTestGateway(t)
	ctx := context.Background()
	id := &memIdentity{}
	s := NewAuthSession(gw, id)

	n := s.Register(ctx, "ada@example.com", "pw", "pw")
	require.False(t, n.IsError(), n.Message)
	assert.Equal(t, "Account created. You can sign in now.", n.Message)
	assert.False(t, s.Authenticated())

	n = s.Login(ctx, "Ada@Example.com", "wrong")
	assert.Equal(t, Notice{Kind: NoticeError, Message: "Invalid credentials"}, n)
	assert.False(t, s.Authenticated())

	n = s.Login(ctx, "Ada@Example.com", "pw")
	assert.Equal(t, Notice{Kind: NoticeSuccess, Message: "Welcome back"}, n)
	assert.Equal(t, "ada@example.com", s.Email())
	assert.Equal(t, "ada@example.com", id.email)
}

func TestAuthSession_RegisterMismatchMakesNoCall(t *testing.T) {
	gw, _ := newTestGateway(t)
	s := NewAuthSession(gw, &memIdentity{})

	n := s.Register(context.Background(), "ada@example.com", "a", "b")
	assert.Equal(t, "Passwords do not match", n.Message)

	ok, err := gw.LoginUser(context.Background(), "ada@example.com", "a")
	require.NoError(t, err)
	assert.False(t, ok, "no account should have been created")
}

func TestAuthSession_RegisterDuplicateSurfacesMessage(t *testing.T) {
	gw, _ := newTestGateway(t)
	ctx := context.Background()
	s := NewAuthSession(gw, &memIdentity{})

	s.Register(ctx, "ada@example.com", "a", "a")
	n := s.Register(ctx, "ada@example.com", "a", "a")
	assert.True(t, n.IsError())
	assert.Equal(t, ErrEmailTaken.Error(), n.Message)
}

type brokenAuth struct{}

func (brokenAuth) LoginUser(context.Context, string, string) (bool, error) { return false, errInjected }
func (brokenAuth) RegisterUser(context.Context, string, string) error      { return errInjected }

func TestAuthSession_LoginBackendFailure(t *testing.T) {
	s := NewAuthSession(brokenAuth{}, &memIdentity{})

	n := s.Login(context.Background(), "ada@example.com", "pw")
	assert.Equal(t, "Login failed", n.Message)
	assert.False(t, s.Authenticated())
}

func TestAuthSession_LogoutClearsIdentity(t *testing.T) {
	id := &memIdentity{email: "ada@example.com"}
	s := NewAuthSession(brokenAuth{}, id)

	s.Logout()
	assert.False(t, s.Authenticated())
	assert.Empty(t, id.email)
}

func TestAuthSession_Resolve(t *testing.T) {
	out := NewAuthSession(brokenAuth{}, &memIdentity{})
	in := NewAuthSession(brokenAuth{}, &memIdentity{email: "a@b.c"})

	tests := []struct {
		name    string
		session *AuthSession
		route   Route
		want    Route
	}{
		{"signed out weeks", out, RouteWeeks, RouteSignIn},
		{"signed out settings", out, RouteSettings, RouteSignIn},
		{"signed out signup", out, RouteSignUp, RouteSignUp},
		{"signed out signin", out, RouteSignIn, RouteSignIn},
		{"signed in signin", in, RouteSignIn, RouteWeeks},
		{"signed in signup", in, RouteSignUp, RouteWeeks},
		{"signed in metrics", in, RouteMetrics, RouteMetrics},
		{"signed in unknown", in, Route("nowhere"), RouteWeeks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.Resolve(tt.route))
		})
	}
}

func TestParseRoute(t *testing.T) {
	r, ok := ParseRoute(" Metrics ")
	assert.True(t, ok)
	assert.Equal(t, RouteMetrics, r)

	_, ok = ParseRoute("admin")
	assert.False(t, ok)
}
