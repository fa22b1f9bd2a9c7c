package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/bnema/klinik-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeAuthAPI struct {
	result       domain.LoginResult
	err          error
	resetMessage string
	calls        []string
}

func (f *fakeAuthAPI) Login(_ context.Context, username, password string) (domain.LoginResult, error) {
	f.calls = append(f.calls, "login:"+username+":"+password)
	return f.result, f.err
}

func (f *fakeAuthAPI) ResetPassword(_ context.Context, email string) (string, error) {
	f.calls = append(f.calls, "reset:"+email)
	return f.resetMessage, f.err
}

func mockAnyContext() interface{} {
	return mock.Anything
}

func TestSessionServiceLoginStoresTokenAndIdentity(t *testing.T) {
	store := mocks.NewMockSessionStore(t)
	clock := mocks.NewMockClock(t)
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	auth := &fakeAuthAPI{result: domain.LoginResult{Token: "jwt", Type: "Bearer", Username: "admin", Role: domain.RoleAdmin, UserID: 1}}
	service := NewSessionService(auth, store, nil, clock)

	want := domain.Identity{Username: "admin", Role: domain.RoleAdmin, UserID: 1, LoggedInAt: now}
	clock.EXPECT().Now().Return(now).Once()
	store.EXPECT().Save(mockAnyContext(), "jwt", want).Return(nil).Once()

	got, err := service.Login(context.Background(), " admin ", "admin123")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"login:admin:admin123"}, auth.calls)
}

func TestSessionServiceLoginRejectsMissingCredentials(t *testing.T) {
	auth := &fakeAuthAPI{}
	service := NewSessionService(auth, mocks.NewMockSessionStore(t), nil, mocks.NewMockClock(t))

	_, err := service.Login(context.Background(), "  ", "secret")
	require.ErrorIs(t, err, ErrMissingCredentials)

	_, err = service.Login(context.Background(), "admin", "")
	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.Empty(t, auth.calls)
}

func TestSessionServiceLoginDoesNotStoreOnFailure(t *testing.T) {
	auth := &fakeAuthAPI{err: errors.New("Hata: Geçersiz kullanıcı adı veya şifre!")}
	service := NewSessionService(auth, mocks.NewMockSessionStore(t), nil, mocks.NewMockClock(t))

	_, err := service.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.ErrorContains(t, err, "Geçersiz")
}

func TestSessionServiceLoginRejectsEmptyToken(t *testing.T) {
	auth := &fakeAuthAPI{result: domain.LoginResult{Username: "admin"}}
	service := NewSessionService(auth, mocks.NewMockSessionStore(t), nil, mocks.NewMockClock(t))

	_, err := service.Login(context.Background(), "admin", "admin123")
	require.ErrorIs(t, err, ErrEmptyToken)
}

func TestSessionServiceLogoutTwiceSucceeds(t *testing.T) {
	store := mocks.NewMockSessionStore(t)
	service := NewSessionService(&fakeAuthAPI{}, store, nil, nil)

	store.EXPECT().Clear(mockAnyContext()).Return(nil).Twice()

	require.NoError(t, service.Logout(context.Background()))
	require.NoError(t, service.Logout(context.Background()))
}

func TestSessionServiceCurrent(t *testing.T) {
	store := mocks.NewMockSessionStore(t)
	service := NewSessionService(&fakeAuthAPI{}, store, nil, nil)

	store.EXPECT().Identity(mockAnyContext()).Return(domain.Identity{}, domain.ErrNotLoggedIn).Once()

	_, err := service.Current(context.Background())
	require.ErrorIs(t, err, domain.ErrNotLoggedIn)
}

func TestSessionServiceInvalidateClearsThenRedirects(t *testing.T) {
	store := mocks.NewMockSessionStore(t)
	navigator := mocks.NewMockNavigator(t)
	service := NewSessionService(&fakeAuthAPI{}, store, NewSessionInvalidator(store, navigator), nil)

	var order []string
	store.EXPECT().Clear(mockAnyContext()).Run(func(context.Context) { order = append(order, "clear") }).Return(nil).Once()
	navigator.EXPECT().RedirectToLogin(mockAnyContext()).Run(func(context.Context) { order = append(order, "redirect") }).Return(nil).Once()

	require.NoError(t, service.Invalidate(context.Background()))
	assert.Equal(t, []string{"clear", "redirect"}, order)
}

func TestSessionInvalidatorRedirectsEvenWhenClearFails(t *testing.T) {
	store := mocks.NewMockSessionStore(t)
	navigator := mocks.NewMockNavigator(t)
	invalidator := NewSessionInvalidator(store, navigator)

	store.EXPECT().Clear(mockAnyContext()).Return(errors.New("disk full")).Once()
	navigator.EXPECT().RedirectToLogin(mockAnyContext()).Return(nil).Once()

	err := invalidator.Invalidate(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
}

func TestSessionServiceResetPassword(t *testing.T) {
	auth := &fakeAuthAPI{resetMessage: "Yeni şifreniz email adresinize gönderildi."}
	service := NewSessionService(auth, mocks.NewMockSessionStore(t), nil, nil)

	message, err := service.ResetPassword(context.Background(), " dr@klinik.com ")
	require.NoError(t, err)
	assert.Equal(t, "Yeni şifreniz email adresinize gönderildi.", message)
	assert.Equal(t, []string{"reset:dr@klinik.com"}, auth.calls)

	_, err = service.ResetPassword(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingEmail)
}
