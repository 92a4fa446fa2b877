package repository

import (
	"context"

	"github.com/sjperalta/cabinet-api/internal/models"

	"gorm.io/gorm"
)

// SavingRepository defines data access for member savings
type SavingRepository interface {
	Create(ctx context.Context, saving *models.Saving) error
	FindActiveByName(ctx context.Context, name string) (*models.Saving, error)
	Update(ctx context.Context, saving *models.Saving) error
	List(ctx context.Context, query *ListQuery) ([]models.Saving, error)
}

type savingRepository struct {
	db *gorm.DB
}

// NewSavingRepository creates a new saving repository
func NewSavingRepository(db *gorm.DB) SavingRepository {
	return &savingRepository{db: db}
}

func (r *savingRepository) Create(ctx context.Context, saving *models.Saving) error {
	return createRecord(ctx, r.db, saving)
}

// FindActiveByName retrieves the saver's oldest saving that has not been withdrawn
func (r *savingRepository) FindActiveByName(ctx context.Context, name string) (*models.Saving, error) {
	var saving models.Saving
	err := r.db.WithContext(ctx).
		Where("name = ? AND withdrawn = ?", name, false).
		Order("date_saved ASC, id ASC").
		First(&saving).Error
	if err != nil {
		return nil, err
	}
	return &saving, nil
}

// Update persists the remaining principal and the withdrawn flag
func (r *savingRepository) Update(ctx context.Context, saving *models.Saving) error {
	return r.db.WithContext(ctx).
		Model(&models.Saving{}).
		Where("id = ?", saving.ID).
		Updates(map[string]interface{}{
			"amount":    saving.Amount,
			"withdrawn": saving.Withdrawn,
		}).Error
}

func (r *savingRepository) List(ctx context.Context, query *ListQuery) ([]models.Saving, error) {
	return listRecords[models.Saving](ctx, r.db, query, "name", "date_saved ASC, id ASC")
}
