package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

// GormWeldRepository stores welds in PostgreSQL through gorm.
type GormWeldRepository struct {
	DB *gorm.DB
}

func NewGormWeldRepository(db *gorm.DB) *GormWeldRepository {
	return &GormWeldRepository{DB: db}
}

func (r *GormWeldRepository) CreateWeld(ctx context.Context, w *models.Weld) error {
	return r.DB.WithContext(ctx).Create(w).Error
}

func (r *GormWeldRepository) filtered(ctx context.Context, f WeldFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&models.Weld{})
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("weld_number ILIKE ?", "%"+escapeLike(s)+"%")
	}
	if o := strings.TrimSpace(f.ObjectName); o != "" {
		q = q.Where("object_name = ?", o)
	}
	return q
}

func (r *GormWeldRepository) ListWelds(ctx context.Context, f WeldFilter) ([]models.Weld, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQ := r.filtered(ctx, f).Order("created_at DESC")
	if f.Limit > 0 {
		listQ = listQ.Offset(f.Offset()).Limit(f.Limit)
	}
	var welds []models.Weld
	if err := listQ.Find(&welds).Error; err != nil {
		return nil, 0, err
	}
	return welds, total, nil
}

func (r *GormWeldRepository) GetWeld(ctx context.Context, id string) (*models.Weld, error) {
	// id is a uuid column; anything else can never match
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var w models.Weld
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *GormWeldRepository) SaveWeld(ctx context.Context, w *models.Weld) error {
	if _, err := uuid.Parse(w.ID); err != nil {
		return ErrNotFound
	}
	res := r.DB.WithContext(ctx).Model(w).Select("*").Omit("id", "created_at").Updates(w)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormWeldRepository) DeleteWeld(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Weld{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
