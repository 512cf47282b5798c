package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/zaqqye/weld_backend_v1/internal/models"
)

// ErrNotFound is returned when no weld has the requested id.
var ErrNotFound = errors.New("record not found")

// WeldFilter narrows ListWelds. Limit <= 0 disables paging.
type WeldFilter struct {
	Search     string // case-insensitive substring of weld_number
	ObjectName string // exact match
	Page       int
	Limit      int
}

// Offset returns the row offset for the filter's page (pages start at 1).
func (f WeldFilter) Offset() int {
	if f.Limit <= 0 || f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type WeldRepository interface {
	CreateWeld(ctx context.Context, w *models.Weld) error
	// ListWelds returns matches newest-created first, plus the total match count before paging.
	ListWelds(ctx context.Context, f WeldFilter) ([]models.Weld, int64, error)
	GetWeld(ctx context.Context, id string) (*models.Weld, error)
	// SaveWeld overwrites every column except id and created_at.
	SaveWeld(ctx context.Context, w *models.Weld) error
	DeleteWeld(ctx context.Context, id string) error
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
