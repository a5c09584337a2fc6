package services

import (
	"errors"
	"fmt"
	"strings"

	"hotelx-backend/models"
	"hotelx-backend/storage"
)

type CategoryService struct {
	store storage.Store
}

func NewCategoryService(store storage.Store) *CategoryService {
	return &CategoryService{store: store}
}

type CategoryCreate struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"basePrice"`
	Capacity    int     `json:"capacity"`
}

type CategoryUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	BasePrice   *float64 `json:"basePrice"`
	Capacity    *int     `json:"capacity"`
}

func (s *CategoryService) CreateCategory(req CategoryCreate) (*models.RoomCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if req.Capacity <= 0 {
		req.Capacity = 2
	}

	category := &models.RoomCategory{
		Name:        name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Capacity:    req.Capacity,
	}
	if err := s.store.CreateCategory(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(id uint, req CategoryUpdate) (*models.RoomCategory, error) {
	category, err := s.store.GetCategory(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name is required", ErrValidation)
		}
		category.Name = name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.BasePrice != nil {
		category.BasePrice = *req.BasePrice
	}
	if req.Capacity != nil && *req.Capacity > 0 {
		category.Capacity = *req.Capacity
	}

	if err := s.store.UpdateCategory(category); err != nil {
		return nil, fmt.Errorf("failed to update category %d: %w", id, err)
	}
	return category, nil
}

func (s *CategoryService) GetCategory(id uint) (*models.RoomCategory, error) {
	category, err := s.store.GetCategory(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListCategories() ([]models.RoomCategory, error) {
	return s.store.ListCategories()
}

func (s *CategoryService) DeleteCategory(id uint) error {
	if err := s.store.DeleteCategory(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
