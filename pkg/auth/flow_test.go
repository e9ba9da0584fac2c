package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"flashcards/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUsers keeps copies so a test only observes what was saved.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]models.User
	saves int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]models.User{}}
}

func (m *memoryUsers) find(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.ID == id })
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *memoryUsers) FindByRefreshToken(_ context.Context, token string) (*models.User, error) {
	return m.find(func(u models.User) bool { return u.RefreshToken != nil && *u.RefreshToken == token })
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUsers) Save(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	m.saves++
	return nil
}

const strongPassword = "Str0ng!Passw0rd"

func newTestFlow(t *testing.T) (*Flow, *memoryUsers) {
	t.Helper()
	users := newMemoryUsers()
	// fewer iterations keep the suite fast; the production constructor is covered in password_test.go
	hasher := &PasswordHasher{iterations: 1000}
	flow := NewFlow(users, hasher, newTestIssuer(t))
	return flow, users
}

func TestRegister_IssuesSession(t *testing.T) {
	flow, users := newTestFlow(t)
	ctx := context.Background()

	s, err := flow.Register(ctx, "a@b.com", strongPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, s.AccessToken)
	assert.NotEmpty(t, s.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), s.RefreshTokenExpiresAt, 5*time.Second)

	stored, err := users.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, s.RefreshToken, *stored.RefreshToken)
	assert.NotEmpty(t, stored.PasswordSalt)
	assert.NotEqual(t, strongPassword, stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()

	_, err := flow.Register(ctx, "a@b.com", strongPassword)
	require.NoError(t, err)

	_, err = flow.Register(ctx, "a@b.com", strongPassword)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()

	_, err := flow.Register(ctx, "a@b.com", strongPassword)
	require.NoError(t, err)
	_, err = flow.Register(ctx, "A@b.com", strongPassword)
	assert.NoError(t, err)
}

func TestRegister_WeakPassword(t *testing.T) {
	flow, users := newTestFlow(t)

	_, err := flow.Register(context.Background(), "a@b.com", "weak")
	var weak *WeakPasswordError
	require.ErrorAs(t, err, &weak)
	assert.Len(t, weak.Violations, 4)
	assert.Empty(t, users.users)
}

func TestLogin_GenericFailure(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()
	_, err := flow.Register(ctx, "a@b.com", strongPassword)
	require.NoError(t, err)

	_, wrongPassword := flow.Login(ctx, "a@b.com", "Wr0ng!Password")
	_, unknownEmail := flow.Login(ctx, "nobody@b.com", strongPassword)

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRotation_InvalidatesPreviousRefreshToken(t *testing.T) {
	ctx := context.Background()

	steps := map[string]func(f *Flow, s *Session) (*Session, error){
		"login": func(f *Flow, _ *Session) (*Session, error) {
			return f.Login(ctx, "a@b.com", strongPassword)
		},
		"refresh": func(f *Flow, s *Session) (*Session, error) {
			return f.Refresh(ctx, s.RefreshToken)
		},
		"change password": func(f *Flow, s *Session) (*Session, error) {
			return f.ChangePassword(ctx, s.User.ID, strongPassword, "An0ther!Passw0rd")
		},
	}

	for name, step := range steps {
		t.Run(name, func(t *testing.T) {
			flow, _ := newTestFlow(t)
			first, err := flow.Register(ctx, "a@b.com", strongPassword)
			require.NoError(t, err)

			second, err := step(flow, first)
			require.NoError(t, err)
			assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

			_, err = flow.Refresh(ctx, first.RefreshToken)
			assert.ErrorIs(t, err, ErrInvalidRefreshToken)

			_, err = flow.Refresh(ctx, second.RefreshToken)
			assert.NoError(t, err)
		})
	}
}

func TestRefresh_ExpiryIsExclusive(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()
	s, err := flow.Register(ctx, "a@b.com", strongPassword)
	require.NoError(t, err)

	flow.now = func() time.Time { return s.RefreshTokenExpiresAt }
	_, err = flow.Refresh(ctx, s.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	flow.now = func() time.Time { return s.RefreshTokenExpiresAt.Add(-time.Second) }
	_, err = flow.Refresh(ctx, s.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_EmptyOrUnknownToken(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()

	_, err := flow.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = flow.Refresh(ctx, "never-issued")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout_ClearsSessionAndIsIdempotent(t *testing.T) {
	flow, users := newTestFlow(t)
	ctx := context.Background()
	s, err := flow.Register(ctx, "a@b.com", strongPassword)
	require.NoError(t, err)

	require.NoError(t, flow.Logout(ctx, s.User.ID))
	stored, err := users.FindByID(ctx, s.User.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)
	assert.True(t, stored.RefreshTokenExpiresAtUTC.IsZero())

	_, err = flow.Refresh(ctx, s.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	require.NoError(t, flow.Logout(ctx, s.User.ID))
	again, err := users.FindByID(ctx, s.User.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, again)
}

func TestLogout_UnknownUser(t *testing.T) {
	flow, _ := newTestFlow(t)
	assert.ErrorIs(t, flow.Logout(context.Background(), "missing"), ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()
	s, err := flow.Register(ctx, "a@b.com", strongPassword)
	require.NoError(t, err)

	_, err = flow.ChangePassword(ctx, s.User.ID, "Wr0ng!Password", "An0ther!Passw0rd")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = flow.ChangePassword(ctx, s.User.ID, strongPassword, "short")
	var weak *WeakPasswordError
	assert.ErrorAs(t, err, &weak)

	_, err = flow.ChangePassword(ctx, s.User.ID, strongPassword, "An0ther!Passw0rd")
	require.NoError(t, err)

	_, err = flow.Login(ctx, "a@b.com", strongPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = flow.Login(ctx, "a@b.com", "An0ther!Passw0rd")
	assert.NoError(t, err)
}

func TestMe(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()
	s, err := flow.Register(ctx, "a@b.com", strongPassword)
	require.NoError(t, err)

	u, err := flow.Me(ctx, s.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)

	_, err = flow.Me(ctx, "missing")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
