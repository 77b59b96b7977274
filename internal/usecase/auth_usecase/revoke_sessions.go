package auth

import (
	"context"
	"errors"

	"biobag/internal/repository"
)

var ErrUnauthorized = errors.New("unauthorized")

type RevokeSessionsOutput struct {
	UserID          string `json:"user_id"`
	NewTokenVersion int    `json:"new_token_version"`
}

// token_versionを+1して、発行済みのアクセストークンを全部無効にする
type RevokeSessionsUsecase struct {
	userRepo repository.UserRepository
}

func NewRevokeSessionsUsecase(userRepo repository.UserRepository) *RevokeSessionsUsecase {
	return &RevokeSessionsUsecase{userRepo: userRepo}
}

func (u *RevokeSessionsUsecase) Execute(ctx context.Context, userID string) (RevokeSessionsOutput, error) {
	if userID == "" {
		return RevokeSessionsOutput{}, ErrUnauthorized
	}

	if err := u.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return RevokeSessionsOutput{}, ErrUnauthorized
		}
		return RevokeSessionsOutput{}, err
	}

	//更新後を取得してnew_token_versionを返す
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return RevokeSessionsOutput{}, err
	}

	return RevokeSessionsOutput{
		UserID:          user.ID,
		NewTokenVersion: user.TokenVersion,
	}, nil
}
