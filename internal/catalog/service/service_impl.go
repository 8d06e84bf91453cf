package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/chowstack/chowstack/internal/catalog/domain"
	"github.com/chowstack/chowstack/internal/config"
)

type service struct {
	repo     domain.Repository
	platform *config.PlatformHolder
}

func NewService(repo domain.Repository, platform *config.PlatformHolder) domain.Service {
	return &service{repo: repo, platform: platform}
}

func (s *service) GetMenu(ctx context.Context, tenantID snowflake.ID) (*domain.MenuResponse, error) {
	categories, err := s.repo.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListAvailableItems(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[snowflake.ID][]domain.MenuItemView)
	for _, item := range items {
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], domain.MenuItemView{
			ID:         item.ID.String(),
			Name:       item.Name,
			PriceCents: item.PriceCents,
		})
	}

	resp := &domain.MenuResponse{
		Categories: make([]domain.MenuCategory, 0, len(categories)),
		Combos:     []domain.MenuComboType{},
	}
	for _, category := range categories {
		resp.Categories = append(resp.Categories, domain.MenuCategory{
			ID:    category.ID.String(),
			Name:  category.Name,
			Items: byCategory[category.ID],
		})
	}

	combos, err := s.repo.ListComboTypes(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	// The selectable-item pool is looked up under the canonical id: combo
	// types in an equivalence group all present the same slots.
	eq := domain.ParseEquivalence(s.platform.Current().ComboEquivalence)
	for _, combo := range combos {
		slots, err := s.repo.ListComboAvailability(ctx, eq.Canonical(combo.ID))
		if err != nil {
			return nil, err
		}

		view := domain.MenuComboType{
			ID:                           combo.ID.String(),
			Name:                         combo.Name,
			BasePriceCents:               combo.BasePriceCents,
			BaseItemCount:                combo.BaseItemCount,
			AdditionalItemUnitPriceCents: combo.AdditionalItemUnitPriceCents,
			IncludedSideCount:            combo.IncludedSideCount,
			BaseChoices:                  []domain.MenuComboSlot{},
			Entrees:                      []domain.MenuComboSlot{},
		}
		for _, slot := range slots {
			entry := domain.MenuComboSlot{
				MenuItemID:   slot.MenuItemID.String(),
				DisplayOrder: slot.DisplayOrder,
			}
			if slot.Role == domain.RoleBaseChoice {
				view.BaseChoices = append(view.BaseChoices, entry)
			} else {
				view.Entrees = append(view.Entrees, entry)
			}
		}
		resp.Combos = append(resp.Combos, view)
	}

	return resp, nil
}
