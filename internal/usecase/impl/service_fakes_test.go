package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"spark/internal/domain/entity"
	"spark/internal/domain/repository"
	"spark/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory doubles for the repository and domain-service interfaces. They
// implement the same contracts as the postgres implementations, including the
// sentinel errors, so the services under test cannot tell the difference.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*entity.User
	tokens map[string]uuid.UUID

	failFindByID error
	failCreate   error
	failReplace  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uuid.UUID]*entity.User),
		tokens: make(map[string]uuid.UUID),
	}
}

func (r *fakeUserRepo) snapshot(user *entity.User) *entity.User {
	clone := *user
	clone.RefreshTokens = make([]string, 0)
	for token, owner := range r.tokens {
		if owner == user.ID {
			clone.RefreshTokens = append(clone.RefreshTokens, token)
		}
	}

	return &clone
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failFindByID != nil {
		return nil, r.failFindByID
	}

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return r.snapshot(user), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return r.snapshot(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByRefreshToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, ok := r.tokens[token]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return r.snapshot(r.users[owner]), nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreate != nil {
		return r.failCreate
	}

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}

	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}

	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}

	delete(r.users, id)
	for token, owner := range r.tokens {
		if owner == id {
			delete(r.tokens, token)
		}
	}

	return nil
}

func (r *fakeUserRepo) AppendRefreshToken(_ context.Context, userID uuid.UUID, token string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return repository.ErrUserNotFound
	}

	r.tokens[token] = userID

	return nil
}

func (r *fakeUserRepo) RemoveRefreshToken(_ context.Context, userID uuid.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.tokens[token]; ok && owner == userID {
		delete(r.tokens, token)
	}

	return nil
}

func (r *fakeUserRepo) ReplaceRefreshToken(_ context.Context, userID uuid.UUID, oldToken, newToken string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failReplace != nil {
		return r.failReplace
	}

	owner, ok := r.tokens[oldToken]
	if !ok || owner != userID {
		return repository.ErrRefreshTokenNotFound
	}

	delete(r.tokens, oldToken)
	r.tokens[newToken] = userID

	return nil
}

func (r *fakeUserRepo) hasToken(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tokens[token]

	return ok
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *profile
	r.profiles[profile.UserID] = &clone

	return nil
}

func (r *fakeProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	clone := *profile

	return &clone, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.UserID]; !ok {
		return repository.ErrProfileNotFound
	}

	clone := *profile
	r.profiles[profile.UserID] = &clone

	return nil
}

type fakeRepositoryFactory struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func (f *fakeRepositoryFactory) UserRepo() repository.UserRepository       { return f.userRepo }
func (f *fakeRepositoryFactory) ProfileRepo() repository.ProfileRepository { return f.profileRepo }

// fakeTxManager runs the callback against the same repositories without any
// transactional bracket.
type fakeTxManager struct {
	factory repository.RepositoryFactory
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// fakeHasher records passwords with a reversible prefix so assertions can see
// exactly what was stored.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService issues sequential opaque tokens and remembers which user
// each refresh token was minted for.
type fakeTokenService struct {
	mu      sync.Mutex
	counter int
	issued  map[string]uuid.UUID
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{issued: make(map[string]uuid.UUID)}
}

func (s *fakeTokenService) IssueAccessToken(session entity.Session) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++

	return fmt.Sprintf("access-%s-%d", session.UserID, s.counter), nil
}

func (s *fakeTokenService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	token := fmt.Sprintf("refresh-%d", s.counter)
	s.issued[token] = userID

	return token, nil
}

func (s *fakeTokenService) VerifyAccessToken(_ string) (*entity.Session, error) {
	return nil, service.ErrInvalidToken
}

func (s *fakeTokenService) VerifyRefreshToken(token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.issued[token]
	if !ok {
		return uuid.Nil, service.ErrInvalidToken
	}

	return userID, nil
}

func (s *fakeTokenService) RefreshTokenTTL() time.Duration {
	return 7 * 24 * time.Hour
}

type userServiceFixture struct {
	service      *userService
	userRepo     *fakeUserRepo
	tokenService *fakeTokenService
}

func newUserServiceFixture() *userServiceFixture {
	userRepo := newFakeUserRepo()
	tokenService := newFakeTokenService()
	factory := &fakeRepositoryFactory{userRepo: userRepo, profileRepo: newFakeProfileRepo()}

	svc := &userService{
		txManager:    &fakeTxManager{factory: factory},
		userRepo:     userRepo,
		hasher:       fakeHasher{},
		tokenService: tokenService,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return &userServiceFixture{
		service:      svc,
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}
