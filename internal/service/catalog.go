package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/hospital-billing/internal/models"
	"github.com/mmynk/hospital-billing/internal/storage"
)

// ItemInput is the decoded body of an item create or update request.
// Nil fields were absent from the request.
type ItemInput struct {
	Category    *string `json:"category"`
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Strength    *string `json:"strength"`
	Price       any     `json:"price"`
	Description *string `json:"description"`
}

// CatalogService manages the billable item catalog.
type CatalogService struct {
	store storage.ItemStore
}

// NewCatalogService creates a new CatalogService with the given storage backend.
func NewCatalogService(store storage.ItemStore) *CatalogService {
	return &CatalogService{store: store}
}

// ListAll returns every item ordered by category, then name.
func (s *CatalogService) ListAll(ctx context.Context) ([]*models.Item, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		slog.Error("ListItems failed", "error", err)
		return nil, err
	}
	return items, nil
}

// ListByCategory returns the items of one category ordered by name.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]*models.Item, error) {
	items, err := s.store.ListItemsByCategory(ctx, category)
	if err != nil {
		slog.Error("ListItemsByCategory failed", "category", category, "error", err)
		return nil, err
	}
	return items, nil
}

// Add validates and stores a new item, returning its ID.
func (s *CatalogService) Add(ctx context.Context, in ItemInput) (int64, error) {
	category, err := requireText("category", in.Category)
	if err != nil {
		return 0, err
	}
	name, err := requireText("name", in.Name)
	if err != nil {
		return 0, err
	}
	price, err := coerceAmount("price", in.Price)
	if err != nil {
		return 0, err
	}

	item := &models.Item{
		Category:    category,
		Name:        name,
		Type:        optionalText(in.Type),
		Strength:    optionalText(in.Strength),
		Price:       price,
		Description: optionalText(in.Description),
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		slog.Error("AddItem failed", "category", category, "name", name, "error", err)
		return 0, err
	}

	slog.Info("Item added", "item_id", item.ID, "category", item.Category, "name", item.Name)
	return item.ID, nil
}

// Update applies the fields present in the input to an existing item.
func (s *CatalogService) Update(ctx context.Context, id int64, in ItemInput) error {
	patch, err := buildPatch(in)
	if err != nil {
		return err
	}

	if err := s.store.UpdateItem(ctx, id, patch); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.Warn("UpdateItem on unknown item", "item_id", id)
		} else {
			slog.Error("UpdateItem failed", "item_id", id, "error", err)
		}
		return err
	}

	slog.Info("Item updated", "item_id", id)
	return nil
}

// Delete removes an item.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.Warn("DeleteItem on unknown item", "item_id", id)
		} else {
			slog.Error("DeleteItem failed", "item_id", id, "error", err)
		}
		return err
	}

	slog.Info("Item deleted", "item_id", id)
	return nil
}

func buildPatch(in ItemInput) (models.ItemPatch, error) {
	var patch models.ItemPatch

	if in.Category != nil {
		category, err := requireText("category", in.Category)
		if err != nil {
			return patch, err
		}
		patch.Category = &category
	}
	if in.Name != nil {
		name, err := requireText("name", in.Name)
		if err != nil {
			return patch, err
		}
		patch.Name = &name
	}
	if in.Price != nil {
		price, err := coerceAmount("price", in.Price)
		if err != nil {
			return patch, err
		}
		patch.Price = &price
	}
	if in.Type != nil {
		v := optionalText(in.Type)
		patch.Type = &v
	}
	if in.Strength != nil {
		v := optionalText(in.Strength)
		patch.Strength = &v
	}
	if in.Description != nil {
		v := optionalText(in.Description)
		patch.Description = &v
	}

	if patch.IsEmpty() {
		return patch, invalid("body", "contains no fields to update")
	}
	return patch, nil
}
