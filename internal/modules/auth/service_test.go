package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/novalabs/novapos-backend/internal/modules/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	users map[string]*user.User
}

func (m *mockUserRepo) CreateUser(_ context.Context, u *user.User) error {
	m.users[u.Email] = u
	return nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range m.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

type memorySessionStore struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{revoked: map[string]bool{}}
}

func (m *memorySessionStore) Revoke(_ context.Context, sessionID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[sessionID] = true
	return nil
}

func (m *memorySessionStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[sessionID], nil
}

func newTestService(t *testing.T) (Service, uuid.UUID) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	cashier := &user.User{ID: uuid.New(), Email: "cashier@novapos.test", PasswordHash: string(hash), Role: user.RoleStaff}
	repo := &mockUserRepo{users: map[string]*user.User{cashier.Email: cashier}}
	return NewService(repo, newMemorySessionStore(), []byte("test-secret")), cashier.ID
}

func TestLoginAndVerify(t *testing.T) {
	svc, userID := newTestService(t)

	token, err := svc.Login(context.Background(), "cashier@novapos.test", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, user.RoleStaff, sess.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "cashier@novapos.test", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "ghost@novapos.test", "hunter22")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	svc, _ := newTestService(t)

	token, err := svc.Login(context.Background(), "cashier@novapos.test", "hunter22")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	_, err = svc.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestLogout_DoesNotAffectOtherSessions(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Login(context.Background(), "cashier@novapos.test", "hunter22")
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), "cashier@novapos.test", "hunter22")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), first))

	_, err = svc.Verify(context.Background(), second)
	assert.NoError(t, err)
}

func TestVerify_GarbageToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Verify(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	svc, _ := newTestService(t)
	token, err := svc.Login(context.Background(), "cashier@novapos.test", "hunter22")
	require.NoError(t, err)

	hash, _ := bcrypt.GenerateFromPassword([]byte("x"), bcrypt.MinCost)
	other := NewService(
		&mockUserRepo{users: map[string]*user.User{"a@b.c": {ID: uuid.New(), PasswordHash: string(hash)}}},
		newMemorySessionStore(),
		[]byte("different-secret"),
	)

	_, err = other.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
