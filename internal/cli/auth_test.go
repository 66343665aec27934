package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Shamu9311/sport-front/internal/api"
	"github.com/Shamu9311/sport-front/internal/gate"
	"github.com/Shamu9311/sport-front/internal/models"
	"github.com/Shamu9311/sport-front/internal/notify"
)

func TestLogin_Success(t *testing.T) {
	fc := &fakeClient{
		LoginUser:  &models.User{ID: 7, Username: "dina", Email: "dina@example.org"},
		LoginToken: "tok-1",
		Profile:    readyProfile(),
	}
	a, out := newTestApp(t, fc)
	feedInput(a, "dina@example.org")
	stubPassword(t, []byte("secret"), nil)

	a.Login(context.Background())

	require.Equal(t, "dina@example.org", fc.LastLoginEmail)
	require.Equal(t, "secret", fc.LastLoginPass)
	require.Equal(t, gate.StateReady, a.gate.State())
	require.Equal(t, "tok-1", a.gate.Token())
	require.Equal(t, gate.RouteHome, a.route)
	require.Contains(t, out.String(), "Welcome back, dina!")
}

func TestLogin_WithoutProfile_LandsOnCreateProfile(t *testing.T) {
	fc := &fakeClient{
		LoginUser:  &models.User{ID: 7, Username: "dina"},
		LoginToken: "tok-1",
	}
	a, out := newTestApp(t, fc)
	feedInput(a, "dina@example.org")
	stubPassword(t, []byte("secret"), nil)

	a.Login(context.Background())

	require.Equal(t, gate.StateNoProfile, a.gate.State())
	require.Equal(t, gate.RouteCreateProfile, a.route)
	require.Contains(t, out.String(), "create-profile")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	fc := &fakeClient{LoginErr: api.ErrInvalidCredentials}
	a, out := newTestApp(t, fc)
	feedInput(a, "dina@example.org")
	stubPassword(t, []byte("wrong"), nil)

	a.Login(context.Background())

	require.Equal(t, gate.StateSignedOut, a.gate.State())
	require.Contains(t, out.String(), "Invalid email or password")
}

func TestLogin_ServerUnavailable(t *testing.T) {
	fc := &fakeClient{LoginErr: api.ErrUnavailable}
	a, out := newTestApp(t, fc)
	feedInput(a, "dina@example.org")
	stubPassword(t, []byte("secret"), nil)

	a.Login(context.Background())

	require.Equal(t, gate.StateSignedOut, a.gate.State())
	require.Contains(t, out.String(), "Cannot reach the server")
}

func TestLogin_GuardBlocksWhenAlreadySignedIn(t *testing.T) {
	fc := &fakeClient{}
	a, out := newTestApp(t, fc)
	signIn(t, a, fc, readyProfile())
	out.Reset()

	a.Login(context.Background())

	require.Zero(t, fc.LoginCalls)
	require.Contains(t, out.String(), "Not available here")
}

func TestRegister_Success(t *testing.T) {
	fc := &fakeClient{
		RegisterUser:  &models.User{ID: 9, Username: "rob"},
		RegisterToken: "tok-2",
		Profile:       readyProfile(),
	}
	a, out := newTestApp(t, fc)
	feedInput(a, "rob", "rob@example.org")
	stubPassword(t, []byte("secret"), nil)

	a.Register(context.Background())

	require.Equal(t, "rob", fc.LastRegName)
	require.Zero(t, fc.LoginCalls)
	require.Equal(t, gate.StateReady, a.gate.State())
	require.Equal(t, "tok-2", a.gate.Token())
	require.Contains(t, out.String(), "Account created. Welcome, rob!")
}

func TestRegister_NoToken_FallsBackToLogin(t *testing.T) {
	fc := &fakeClient{
		RegisterUser: &models.User{ID: 9, Username: "rob"},
		LoginUser:    &models.User{ID: 9, Username: "rob"},
		LoginToken:   "tok-3",
		Profile:      readyProfile(),
	}
	a, _ := newTestApp(t, fc)
	feedInput(a, "rob", "rob@example.org")
	stubPassword(t, []byte("secret"), nil)

	a.Register(context.Background())

	require.Equal(t, 1, fc.LoginCalls)
	require.Equal(t, "rob@example.org", fc.LastLoginEmail)
	require.Equal(t, "secret", fc.LastLoginPass)
	require.Equal(t, gate.StateReady, a.gate.State())
	require.Equal(t, "tok-3", a.gate.Token())
}

func TestRegister_NoToken_LoginFails(t *testing.T) {
	fc := &fakeClient{
		RegisterUser: &models.User{ID: 9, Username: "rob"},
		LoginErr:     errors.New("boom"),
	}
	a, out := newTestApp(t, fc)
	feedInput(a, "rob", "rob@example.org")
	stubPassword(t, []byte("secret"), nil)

	a.Register(context.Background())

	require.Equal(t, gate.StateSignedOut, a.gate.State())
	require.Contains(t, out.String(), "Account created; please sign in with 'login'")
}

func TestRegister_ServerUnavailable(t *testing.T) {
	fc := &fakeClient{RegisterErr: api.ErrUnavailable}
	a, out := newTestApp(t, fc)
	feedInput(a, "rob", "rob@example.org")
	stubPassword(t, []byte("secret"), nil)

	a.Register(context.Background())

	require.Equal(t, gate.StateSignedOut, a.gate.State())
	require.Contains(t, out.String(), "Cannot reach the server")
}

func TestLogout_ClearsSessionAndReminders(t *testing.T) {
	fc := &fakeClient{}
	a, out := newTestApp(t, fc)
	signIn(t, a, fc, readyProfile())

	_, err := a.notifier.Schedule(context.Background(), notify.DailyAt(9, 0), notify.Content{Title: "x"})
	require.NoError(t, err)

	a.Logout(context.Background())

	require.Equal(t, gate.StateSignedOut, a.gate.State())
	require.Empty(t, a.notifier.Scheduled())
	require.Equal(t, gate.RouteLogin, a.route)
	require.Contains(t, out.String(), "Signed out")
}
