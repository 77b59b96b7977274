package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"
)

type ContactUsecase struct {
	contacts  repo.ContactRepository
	validator ContactValidator
	idGen     IDGenerator
	clock     Clock
}

func NewContactUsecase(contacts repo.ContactRepository, validator ContactValidator, idGen IDGenerator, clock Clock) *ContactUsecase {
	return &ContactUsecase{contacts: contacts, validator: validator, idGen: idGen, clock: clock}
}

type SubmitContactInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Message string
}

func NormalizeContactInput(in SubmitContactInput) SubmitContactInput {
	return SubmitContactInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Company: strings.TrimSpace(in.Company),
		Message: strings.TrimSpace(in.Message),
	}
}

// 匿名のお問い合わせ。未読で保存
func (u *ContactUsecase) Submit(ctx context.Context, in SubmitContactInput) (model.Contact, error) {
	in = NormalizeContactInput(in)
	if err := u.validator.ValidateContact(in); err != nil {
		return model.Contact{}, err
	}

	c, err := u.contacts.Create(ctx, model.Contact{
		ID:        u.idGen.NewID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     optional(in.Phone),
		Company:   optional(in.Company),
		Message:   in.Message,
		IsRead:    false,
		CreatedAt: u.clock.Now(),
	})
	if err != nil {
		return model.Contact{}, WrapHTTPError(http.StatusInternalServerError, "failed to submit contact", err)
	}
	return c, nil
}

func (u *ContactUsecase) List(ctx context.Context, unreadOnly bool) ([]model.Contact, error) {
	items, err := u.contacts.List(ctx, repo.ContactListFilter{UnreadOnly: unreadOnly})
	if err != nil {
		return []model.Contact{}, WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return items, nil
}

func (u *ContactUsecase) MarkRead(ctx context.Context, contactID string) error {
	if err := checkRowID(contactID, "invalid id"); err != nil {
		return err
	}
	err := u.contacts.MarkRead(ctx, contactID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return nil
}

func (u *ContactUsecase) Delete(ctx context.Context, contactID string) error {
	if err := checkRowID(contactID, "invalid id"); err != nil {
		return err
	}
	err := u.contacts.Delete(ctx, contactID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return WrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
