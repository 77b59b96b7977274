package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"biobag/internal/domain/model"
	"biobag/internal/repository"
)

var (
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
)

// 管理者パスワードの最小文字数
const minAdminPasswordLen = 12

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

type BootstrapAdminInput struct {
	Email    string
	Password string
}

// 起動時に初期管理者を作る（既にいれば何もしない）
type BootstrapAdminUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	idGen    IDGenerator
	clock    Clock
}

// DI
func NewBootstrapAdminUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
) *BootstrapAdminUsecase {
	return &BootstrapAdminUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		idGen:    idGen,
		clock:    clock,
	}
}

// 作成したらtrue
func (u *BootstrapAdminUsecase) Execute(ctx context.Context, in BootstrapAdminInput) (bool, error) {
	email := strings.TrimSpace(in.Email)

	// emailの形式チェック
	if !isValidEmailFormat(email) {
		return false, ErrInvalidEmailFormat
	}
	if len(in.Password) < minAdminPasswordLen {
		return false, ErrPasswordTooShort
	}

	// 既存なら何もしない（パスワードも上書きしない）
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return false, nil
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return false, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return false, err
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
		TokenVersion: 0,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

// メールチェック
func isValidEmailFormat(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
