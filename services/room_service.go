package services

import (
	"errors"
	"fmt"
	"strings"

	"hotelx-backend/models"
	"hotelx-backend/storage"
)

type RoomService struct {
	store storage.Store
}

func NewRoomService(store storage.Store) *RoomService {
	return &RoomService{store: store}
}

type RoomCreate struct {
	RoomNumber     string `json:"roomNumber" binding:"required"`
	CategoryID     uint   `json:"categoryId" binding:"required"`
	Floor          int    `json:"floor"`
	HasWifi        bool   `json:"hasWifi"`
	HasAC          bool   `json:"hasAc"`
	HasMinibar     bool   `json:"hasMinibar"`
	HasRoomService bool   `json:"hasRoomService"`
	HasTV          bool   `json:"hasTv"`
	HasBalcony     bool   `json:"hasBalcony"`
	Notes          string `json:"notes"`
}

type RoomUpdate struct {
	RoomNumber     *string `json:"roomNumber"`
	CategoryID     *uint   `json:"categoryId"`
	Status         *string `json:"status"`
	Floor          *int    `json:"floor"`
	HasWifi        *bool   `json:"hasWifi"`
	HasAC          *bool   `json:"hasAc"`
	HasMinibar     *bool   `json:"hasMinibar"`
	HasRoomService *bool   `json:"hasRoomService"`
	HasTV          *bool   `json:"hasTv"`
	HasBalcony     *bool   `json:"hasBalcony"`
	Notes          *string `json:"notes"`
}

func (s *RoomService) CreateRoom(req RoomCreate) (*models.Room, error) {
	number := strings.TrimSpace(req.RoomNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: room number is required", ErrValidation)
	}
	if _, err := s.store.GetCategory(req.CategoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	room := &models.Room{
		RoomNumber:     number,
		CategoryID:     req.CategoryID,
		Status:         models.RoomAvailable,
		Floor:          req.Floor,
		HasWifi:        req.HasWifi,
		HasAC:          req.HasAC,
		HasMinibar:     req.HasMinibar,
		HasRoomService: req.HasRoomService,
		HasTV:          req.HasTV,
		HasBalcony:     req.HasBalcony,
		Notes:          req.Notes,
	}
	if err := s.store.CreateRoom(room); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, fmt.Errorf("%w: room number %q already exists", ErrValidation, number)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return s.store.GetRoom(room.ID)
}

// UpdateRoom applies a partial update. The booking lifecycle owns the
// reserved/occupied statuses; clients may only move a room between available
// and maintenance.
func (s *RoomService) UpdateRoom(id uint, req RoomUpdate) (*models.Room, error) {
	room, err := s.store.GetRoom(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if req.Status != nil {
		switch *req.Status {
		case models.RoomAvailable, models.RoomMaintenance:
			room.Status = *req.Status
		default:
			return nil, fmt.Errorf("%w: room status %q is lifecycle-managed", ErrValidation, *req.Status)
		}
	}
	if req.RoomNumber != nil {
		number := strings.TrimSpace(*req.RoomNumber)
		if number == "" {
			return nil, fmt.Errorf("%w: room number is required", ErrValidation)
		}
		room.RoomNumber = number
	}
	if req.CategoryID != nil {
		if _, err := s.store.GetCategory(*req.CategoryID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		room.CategoryID = *req.CategoryID
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.HasWifi != nil {
		room.HasWifi = *req.HasWifi
	}
	if req.HasAC != nil {
		room.HasAC = *req.HasAC
	}
	if req.HasMinibar != nil {
		room.HasMinibar = *req.HasMinibar
	}
	if req.HasRoomService != nil {
		room.HasRoomService = *req.HasRoomService
	}
	if req.HasTV != nil {
		room.HasTV = *req.HasTV
	}
	if req.HasBalcony != nil {
		room.HasBalcony = *req.HasBalcony
	}
	if req.Notes != nil {
		room.Notes = *req.Notes
	}

	if err := s.store.UpdateRoom(room); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, fmt.Errorf("%w: room number %q already exists", ErrValidation, room.RoomNumber)
		}
		return nil, fmt.Errorf("failed to update room %d: %w", id, err)
	}
	return s.store.GetRoom(id)
}

func (s *RoomService) GetRoom(id uint) (*models.Room, error) {
	room, err := s.store.GetRoom(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *RoomService) ListRooms() ([]models.Room, error) {
	return s.store.ListRooms()
}

func (s *RoomService) DeleteRoom(id uint) error {
	if err := s.store.DeleteRoom(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}
