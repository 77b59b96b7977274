package repository

import (
	"context"

	"biobag/internal/domain/model"
	repo "biobag/internal/repository"

	"gorm.io/gorm"
)

type ContactGormRepository struct {
	db *gorm.DB
}

func NewContactGormRepository(db *gorm.DB) *ContactGormRepository {
	return &ContactGormRepository{db: db}
}

func (r *ContactGormRepository) Create(ctx context.Context, c model.Contact) (model.Contact, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Contact{}, err
	}
	return c, nil
}

// 新しい順
func (r *ContactGormRepository) List(ctx context.Context, f repo.ContactListFilter) ([]model.Contact, error) {
	q := r.db.WithContext(ctx).Model(&model.Contact{})
	if f.UnreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var list []model.Contact
	if err := q.Order("created_at desc").Find(&list).Error; err != nil {
		return []model.Contact{}, err
	}
	return list, nil
}

func (r *ContactGormRepository) MarkRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.Contact{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ContactGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
