package repository

import (
	"context"

	"biobag/internal/domain/model"
)

type ContactListFilter struct {
	UnreadOnly bool
}

type ContactRepository interface {
	Create(ctx context.Context, c model.Contact) (model.Contact, error)
	List(ctx context.Context, f ContactListFilter) ([]model.Contact, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
