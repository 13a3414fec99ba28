package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/infra/auth"

	"github.com/pkg/errors"
)

// fakeUserRepository is an in-memory UserRepository for orchestration tests.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[entity.UserID]*entity.User

	failWith error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[entity.UserID]*entity.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}

	stored := *user
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.users[user.ID] = &stored

	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id entity.UserID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, user := range f.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepository) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	stored.Email = user.Email
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.UpdatedAt = time.Now()

	return nil
}

func (f *fakeUserRepository) SetPasswordHash(_ context.Context, id entity.UserID, encoded string) error {
	return f.mutate(id, func(u *entity.User) { u.PasswordHash = encoded })
}

func (f *fakeUserRepository) SetSuspended(_ context.Context, id entity.UserID, suspended bool) error {
	return f.mutate(id, func(u *entity.User) { u.IsSuspended = suspended })
}

func (f *fakeUserRepository) SetDeleted(_ context.Context, id entity.UserID, deleted bool) error {
	return f.mutate(id, func(u *entity.User) { u.IsDeleted = deleted })
}

func (f *fakeUserRepository) SetEmailVerified(_ context.Context, id entity.UserID, verified bool) error {
	return f.mutate(id, func(u *entity.User) { u.EmailVerified = verified })
}

func (f *fakeUserRepository) mutate(id entity.UserID, fn func(*entity.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	fn(user)
	user.UpdatedAt = time.Now()

	return nil
}

// fakeRevocationStore is an in-memory RevocationStore.
type fakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]bool
	tickets map[string]*entity.PasswordResetTicket

	failReads  error
	failWrites error
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{
		revoked: make(map[string]bool),
		tickets: make(map[string]*entity.PasswordResetTicket),
	}
}

func (f *fakeRevocationStore) RevokeToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWrites != nil {
		return f.failWrites
	}
	f.revoked[token] = true

	return nil
}

func (f *fakeRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failReads != nil {
		return false, f.failReads
	}

	return f.revoked[token], nil
}

func (f *fakeRevocationStore) RegisterResetTicket(_ context.Context, ticket *entity.PasswordResetTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWrites != nil {
		return f.failWrites
	}
	copied := *ticket
	f.tickets[ticket.ResetID] = &copied

	return nil
}

func (f *fakeRevocationStore) LookupResetTicket(_ context.Context, resetID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failReads != nil {
		return "", f.failReads
	}
	ticket, ok := f.tickets[resetID]
	if !ok {
		return "", repository.ErrResetTicketNotFound
	}

	return ticket.Email, nil
}

func (f *fakeRevocationStore) DeleteResetTicket(_ context.Context, resetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWrites != nil {
		return f.failWrites
	}
	delete(f.tickets, resetID)

	return nil
}

// fakeNotifier records published events.
type fakeNotifier struct {
	mu            sync.Mutex
	resetNotices  []*service.PasswordResetNotice
	createdEvents []entity.UserID

	failWith error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{}
}

func (f *fakeNotifier) SendPasswordReset(_ context.Context, notice *service.PasswordResetNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}
	copied := *notice
	f.resetNotices = append(f.resetNotices, &copied)

	return nil
}

func (f *fakeNotifier) SendUserCreated(_ context.Context, userID entity.UserID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}
	f.createdEvents = append(f.createdEvents, userID)

	return nil
}

// errCacheDown simulates a lost redis connection.
var errCacheDown = errors.New("cache connection refused")

// testEnv wires the real credential and token services to the in-memory
// fakes, mirroring the production object graph.
type testEnv struct {
	users       *fakeUserRepository
	revocations *fakeRevocationStore
	notifier    *fakeNotifier
	credentials service.CredentialService
	tokens      service.TokenService
	cfg         *config.Config
}

func newTestEnv() *testEnv {
	cfg := &config.Config{
		JWT: &config.JWTConfig{
			Secret: "test_session_secret_key_very_long_for_testing",
			Issuer: "localhost",
			TTL:    30 * 24 * time.Hour,
		},
		Credential: &config.CredentialConfig{Iterations: 1_000},
		Reset:      &config.ResetConfig{TicketTTL: time.Hour, FormExpiry: 48 * time.Hour},
	}

	tokens, err := auth.NewJWTService(cfg)
	if err != nil {
		panic(err)
	}

	return &testEnv{
		users:       newFakeUserRepository(),
		revocations: newFakeRevocationStore(),
		notifier:    newFakeNotifier(),
		credentials: auth.NewCredentialService(cfg),
		tokens:      tokens,
		cfg:         cfg,
	}
}

func (env *testEnv) logger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// seedUser registers an account directly and returns it.
func (env *testEnv) seedUser(email, password string, role entity.Role) *entity.User {
	user := &entity.User{
		ID:        entity.NewUserID(),
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	user.PasswordHash = env.credentials.Derive(user.ID, password)
	if err := env.users.Create(context.Background(), user); err != nil {
		panic(err)
	}

	return user
}
