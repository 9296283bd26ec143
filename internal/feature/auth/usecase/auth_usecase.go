package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"quote_backend/internal/feature/auth/domain/entity"
)

// MaxPasswordBytes はbcryptが受け付けるパスワードの最大バイト長です。
const MaxPasswordBytes = 72

// dummyPassword は存在しないユーザー用の比較対象ハッシュの元になる値です。
const dummyPassword = "quote-backend-timing-equalizer"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// PasswordHasher はパスワードの一方向ハッシュと照合を定義します。
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID, email string) (string, error)
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token  string
	UserID string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users        UserRepository
	hasher       PasswordHasher
	jwtGenerator JWTGenerator
	newID        func() string
	// dummyHash は存在しないユーザーでもパスワード比較を実行するためのハッシュです。
	// hasherと同じコストで生成するため、比較時間が実在ユーザーと揃います。
	dummyHash string
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, jwtGenerator JWTGenerator) *authUsecase {
	// 固定の短い値なのでHashは失敗しない。失敗時は空文字となり、比較は常に不一致になる。
	dummy, _ := hasher.Hash(dummyPassword)
	return &authUsecase{
		users:        users,
		hasher:       hasher,
		jwtGenerator: jwtGenerator,
		newID:        uuid.NewString,
		dummyHash:    dummy,
	}
}

// validateCredentials checks presence only.
func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// Signup はハッシュ化されたパスワードで新規ユーザーを登録し、セッショントークンを発行します。
// メールアドレスの重複はストレージの一意制約で検出します（事前の存在チェックは行いません）。
func (u *authUsecase) Signup(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{ID: u.newID(), Email: email, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, UserID: user.ID}, nil
}

// Login はユーザーを認証し、成功時にJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash := u.dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// 第1引数は平文パスワード、第2引数はハッシュ化パスワード
	matched := u.hasher.Verify(password, passwordHash)
	if err != nil || !matched {
		return nil, ErrInvalidCredentials
	}

	token, tokenErr := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if tokenErr != nil {
		return nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return &AuthResult{Token: token, UserID: user.ID}, nil
}

// CurrentUser returns the user behind an already verified token subject.
func (u *authUsecase) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, ErrUserNotFound
	}
	return u.users.FindByID(ctx, userID)
}
