package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/sisimpur/sisimpur-cli/internal/client/api"
	"github.com/sisimpur/sisimpur-cli/internal/client/models"
	"github.com/sisimpur/sisimpur-cli/internal/client/session"
	"github.com/sisimpur/sisimpur-cli/internal/common"
)

func setupStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return session.NewStore(db, testLogger())
}

func TestLogin_SignsInAndWipesPassword(t *testing.T) {
	store := setupStore(t)
	p := &models.Principal{ID: 1, Email: "rifat@example.com"}

	var gotEmail string
	f := &fakeClient{login: func(ctx context.Context, email string, password []byte) (string, *models.Principal, error) {
		gotEmail = email
		require.Equal(t, []byte("hunter22"), password)
		return "tok-1", p, nil
	}}

	svc := NewAuthService(f, store, testLogger())
	pw := []byte("hunter22")

	got, err := svc.Login(context.Background(), "rifat@example.com", pw)
	require.NoError(t, err)
	require.Equal(t, p, got)
	require.Equal(t, "rifat@example.com", gotEmail)

	require.True(t, svc.IsAuthenticated())
	require.Equal(t, "tok-1", store.Token())
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, pw)
}

func TestLogin_ValidationBeforeNetwork(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, setupStore(t), testLogger())

	_, err := svc.Login(context.Background(), "", []byte("pw"))
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Login(context.Background(), "a@b.c", nil)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestLogin_RejectedCredentialsLeaveSessionAnonymous(t *testing.T) {
	store := setupStore(t)
	f := &fakeClient{login: func(ctx context.Context, email string, password []byte) (string, *models.Principal, error) {
		return "", nil, &api.APIError{StatusCode: 0, Message: "Invalid credentials"}
	}}

	svc := NewAuthService(f, store, testLogger())
	_, err := svc.Login(context.Background(), "a@b.c", []byte("wrong"))
	require.Error(t, err)
	require.False(t, svc.IsAuthenticated())
}

func TestVerifyOTP_SignsIn(t *testing.T) {
	store := setupStore(t)
	p := &models.Principal{ID: 2, Username: "sakib"}
	f := &fakeClient{verifyOTP: func(ctx context.Context, email, code string) (string, *models.Principal, error) {
		require.Equal(t, "123456", code)
		return "tok-otp", p, nil
	}}

	svc := NewAuthService(f, store, testLogger())
	got, err := svc.VerifyOTP(context.Background(), "a@b.c", "123456")
	require.NoError(t, err)
	require.Equal(t, p, got)
	require.Equal(t, "tok-otp", store.Token())
}

func TestSendOTP_RequiresEmail(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, setupStore(t), testLogger())
	_, err := svc.SendOTP(context.Background(), "  ")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestSignup_RequiresStrongEnoughPassword(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, setupStore(t), testLogger())
	_, err := svc.Signup(context.Background(), api.SignupRequest{
		Email: "a@b.c", FullName: "A B", Password: []byte("short"),
	})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestLogout_DiscardsTokenEvenWhenServerUnreachable(t *testing.T) {
	store := setupStore(t)
	require.NoError(t, store.SetAuthenticated(context.Background(), "tok-1", &models.Principal{ID: 1}))

	f := &fakeClient{logout: func(ctx context.Context) error { return api.ErrUnavailable }}
	svc := NewAuthService(f, store, testLogger())

	require.NoError(t, svc.Logout(context.Background()))
	require.False(t, svc.IsAuthenticated())
	require.Nil(t, svc.Current())
}
