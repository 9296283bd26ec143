package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"quote_backend/internal/feature/auth/domain/entity"
	"quote_backend/internal/platform/password"
)

// mockUserRepository is a mock implementation of UserRepository.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id string) (*entity.User, error)
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

// FindByID is the mock implementation of the FindByID method.
func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockJWTGenerator is a mock implementation of JWTGenerator.
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID, email string) (string, error)
}

// GenerateToken is the mock implementation of the GenerateToken method.
func (m *mockJWTGenerator) GenerateToken(userID, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-jwt-token", nil
}

// recordingHasher はHash/Verifyの呼び出しを記録するPasswordHasherです。
type recordingHasher struct {
	prefix     string
	hashed     []string
	verifiedAt []string
}

func (h *recordingHasher) Hash(plaintext string) (string, error) {
	h.hashed = append(h.hashed, plaintext)
	return h.prefix + plaintext, nil
}

func (h *recordingHasher) Verify(plaintext, hash string) bool {
	h.verifiedAt = append(h.verifiedAt, hash)
	return hash == h.prefix+plaintext
}

func newTestUsecase(repo UserRepository, gen JWTGenerator) *authUsecase {
	return NewAuthUsecase(repo, password.NewBcryptHasher(bcrypt.MinCost), gen)
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup", func(t *testing.T) {
		var created *entity.User
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				return nil
			},
		}

		uc := newTestUsecase(mockRepo, &mockJWTGenerator{})
		res, err := uc.Signup(context.Background(), "a@x.com", "p1")

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotEmpty(t, created.ID, "ID must be generated server side")
		assert.Equal(t, created.ID, res.UserID)
		assert.Equal(t, "mock-jwt-token", res.Token)
		assert.NotEqual(t, "p1", created.Password, "password is not hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("p1")), "invalid bcrypt hash")
	})

	t.Run("generated IDs are unique", func(t *testing.T) {
		seen := map[string]bool{}
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				assert.False(t, seen[user.ID], "duplicate ID %s", user.ID)
				seen[user.ID] = true
				return nil
			},
		}
		uc := newTestUsecase(mockRepo, &mockJWTGenerator{})

		for i := 0; i < 3; i++ {
			_, err := uc.Signup(context.Background(), "a@x.com", "p1")
			require.NoError(t, err)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("Create must not be called")
				return nil
			},
		}
		uc := newTestUsecase(mockRepo, &mockJWTGenerator{})

		_, err := uc.Signup(context.Background(), "", "p1")
		assert.ErrorIs(t, err, ErrMissingCredentials)

		_, err = uc.Signup(context.Background(), "a@x.com", "")
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("Create must not be called")
				return nil
			},
		}
		uc := newTestUsecase(mockRepo, &mockJWTGenerator{})

		_, err := uc.Signup(context.Background(), "a@x.com", strings.Repeat("a", MaxPasswordBytes+1))
		assert.ErrorIs(t, err, ErrPasswordTooLong)

		_, err = uc.Signup(context.Background(), "a@x.com", strings.Repeat("a", MaxPasswordBytes))
		assert.NoError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID, email string) (string, error) {
				t.Error("no token may be issued for a rejected signup")
				return "", nil
			},
		}

		uc := newTestUsecase(mockRepo, mockJWT)
		res, err := uc.Signup(context.Background(), "a@x.com", "p1")

		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return expectedErr
			},
		}

		uc := newTestUsecase(mockRepo, &mockJWTGenerator{})
		_, err := uc.Signup(context.Background(), "a@x.com", "p1")

		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("token generation failure", func(t *testing.T) {
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID, email string) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		uc := newTestUsecase(&mockUserRepository{}, mockJWT)
		_, err := uc.Signup(context.Background(), "a@x.com", "p1")

		assert.EqualError(t, err, "failed to generate token: failed to sign token")
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("p1"), bcrypt.MinCost)
	require.NoError(t, err)
	testUser := &entity.User{
		ID:       "user-1",
		Email:    "a@x.com",
		Password: string(hashedPassword),
	}
	findTestUser := func(ctx context.Context, email string) (*entity.User, error) {
		if email == testUser.Email {
			return testUser, nil
		}
		return nil, ErrUserNotFound
	}

	t.Run("successful login", func(t *testing.T) {
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID, email string) (string, error) {
				assert.Equal(t, testUser.ID, userID)
				assert.Equal(t, testUser.Email, email)
				return "mock-jwt-token", nil
			},
		}

		uc := newTestUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, mockJWT)
		res, err := uc.Login(context.Background(), "a@x.com", "p1")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", res.Token)
		assert.Equal(t, "user-1", res.UserID)
	})

	t.Run("user not found", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, &mockJWTGenerator{})
		res, err := uc.Login(context.Background(), "wrong@x.com", "p1")

		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.EqualError(t, err, "invalid email or password")
	})

	t.Run("unknown user is compared against a hash from the configured hasher", func(t *testing.T) {
		hasher := &recordingHasher{prefix: "cost12:"}
		uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, hasher, &mockJWTGenerator{})

		_, err := uc.Login(context.Background(), "wrong@x.com", "p1")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		require.Len(t, hasher.hashed, 1, "dummy hash must be derived once at construction")
		require.Len(t, hasher.verifiedAt, 1)
		assert.Equal(t, "cost12:"+dummyPassword, hasher.verifiedAt[0])
	})

	t.Run("dummy hash uses the hasher's cost", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, password.NewBcryptHasher(bcrypt.MinCost+1), &mockJWTGenerator{})

		cost, err := bcrypt.Cost([]byte(uc.dummyHash))

		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost+1, cost)
	})

	t.Run("incorrect password issues no token", func(t *testing.T) {
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID, email string) (string, error) {
				t.Error("token must not be generated for a wrong password")
				return "", nil
			},
		}

		uc := newTestUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, mockJWT)
		res, err := uc.Login(context.Background(), "a@x.com", "wrong-password")

		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("repository failure is not reported as invalid credentials", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, dbErr
			},
		}

		uc := newTestUsecase(mockRepo, &mockJWTGenerator{})
		_, err := uc.Login(context.Background(), "a@x.com", "p1")

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, &mockJWTGenerator{})

		_, err := uc.Login(context.Background(), "a@x.com", "")

		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("JWT generation failure", func(t *testing.T) {
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID, email string) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		uc := newTestUsecase(&mockUserRepository{FindByEmailFunc: findTestUser}, mockJWT)
		_, err := uc.Login(context.Background(), "a@x.com", "p1")

		assert.EqualError(t, err, "failed to generate token: failed to sign token")
	})
}

func TestAuthUsecase_CurrentUser(t *testing.T) {
	mockRepo := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			if id == "user-1" {
				return &entity.User{ID: "user-1", Email: "a@x.com"}, nil
			}
			return nil, ErrUserNotFound
		},
	}
	uc := newTestUsecase(mockRepo, &mockJWTGenerator{})

	user, err := uc.CurrentUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = uc.CurrentUser(context.Background(), "user-2")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = uc.CurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
