package services

import (
	"errors"
	"fmt"
	"strings"

	"hotelx-backend/models"
	"hotelx-backend/storage"
)

type GuestService struct {
	store storage.Store
}

func NewGuestService(store storage.Store) *GuestService {
	return &GuestService{store: store}
}

type GuestCreate struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	IDType   string `json:"idType"`
	IDNumber string `json:"idNumber"`
}

type GuestUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Country  *string `json:"country"`
	IDType   *string `json:"idType"`
	IDNumber *string `json:"idNumber"`
}

// CreateGuest de-duplicates on email: an existing guest with the same email
// is returned as-is instead of erroring. The bool reports whether a new
// record was created.
func (s *GuestService) CreateGuest(req GuestCreate) (*models.Guest, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, false, fmt.Errorf("%w: email is required", ErrValidation)
	}

	if existing, err := s.store.GetGuestByEmail(email); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check guest email: %w", err)
	}

	guest := &models.Guest{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Country:  req.Country,
		IDType:   req.IDType,
		IDNumber: req.IDNumber,
	}
	if err := s.store.CreateGuest(guest); err != nil {
		// Lost a race with a concurrent create for the same email.
		if errors.Is(err, storage.ErrDuplicate) {
			existing, lookupErr := s.store.GetGuestByEmail(email)
			return existing, false, lookupErr
		}
		return nil, false, fmt.Errorf("failed to create guest: %w", err)
	}
	return guest, true, nil
}

func (s *GuestService) UpdateGuest(id uint, req GuestUpdate) (*models.Guest, error) {
	guest, err := s.store.GetGuest(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		guest.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		guest.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		guest.Phone = *req.Phone
	}
	if req.Address != nil {
		guest.Address = *req.Address
	}
	if req.City != nil {
		guest.City = *req.City
	}
	if req.Country != nil {
		guest.Country = *req.Country
	}
	if req.IDType != nil {
		guest.IDType = *req.IDType
	}
	if req.IDNumber != nil {
		guest.IDNumber = *req.IDNumber
	}

	if err := s.store.UpdateGuest(guest); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already in use", ErrValidation)
		}
		return nil, fmt.Errorf("failed to update guest %d: %w", id, err)
	}
	return guest, nil
}

func (s *GuestService) GetGuest(id uint) (*models.Guest, error) {
	guest, err := s.store.GetGuest(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return guest, nil
}

func (s *GuestService) ListGuests() ([]models.Guest, error) {
	return s.store.ListGuests()
}

func (s *GuestService) DeleteGuest(id uint) error {
	if err := s.store.DeleteGuest(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGuestNotFound
		}
		return err
	}
	return nil
}
