package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/chowstack/chowstack/internal/catalog/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) FindAvailableItems(ctx context.Context, tenantID snowflake.ID, ids []snowflake.ID) ([]domain.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []domain.MenuItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("available = ?", true).
		Where("id IN ?", ids).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetComboType(ctx context.Context, tenantID, id snowflake.ID) (*domain.ComboType, error) {
	var combo domain.ComboType
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("tenant_id = ? OR tenant_id IS NULL", tenantID).
		First(&combo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrComboTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &combo, nil
}

func (r *repository) CountAvailableComboItems(ctx context.Context, comboTypeID snowflake.ID, ids []snowflake.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Table("combo_availabilities ca").
		Joins("JOIN menu_items mi ON mi.id = ca.menu_item_id").
		Where("ca.combo_type_id = ?", comboTypeID).
		Where("ca.menu_item_id IN ?", ids).
		Where("mi.available = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) ListCategories(ctx context.Context, tenantID snowflake.ID) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) ListAvailableItems(ctx context.Context, tenantID snowflake.ID) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("available = ?", true).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListComboTypes(ctx context.Context, tenantID snowflake.ID) ([]domain.ComboType, error) {
	var combos []domain.ComboType
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? OR tenant_id IS NULL", tenantID).
		Order("name ASC").
		Find(&combos).Error
	if err != nil {
		return nil, err
	}
	return combos, nil
}

func (r *repository) ListComboAvailability(ctx context.Context, comboTypeID snowflake.ID) ([]domain.ComboAvailability, error) {
	var rows []domain.ComboAvailability
	err := r.db.WithContext(ctx).
		Where("combo_type_id = ?", comboTypeID).
		Order("display_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
