package config

import (
	"errors"
	"fmt"

	"hotelx-backend/logger"
	"hotelx-backend/models"
	"hotelx-backend/storage"

	"golang.org/x/crypto/bcrypt"
)

// NewStore builds the storage backend selected by STORAGE_DRIVER.
// "memory" (the default) needs no external services; "mysql" connects
// through the DSN resolution above.
func NewStore() (storage.Store, error) {
	driver := envOrDefault("STORAGE_DRIVER", "memory")
	switch driver {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "mysql":
		db, err := ConnectDatabase()
		if err != nil {
			return nil, fmt.Errorf("mysql storage: %w", err)
		}
		return storage.NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}
}

// SeedStore loads the default admin account plus a starter set of
// categories and rooms. Safe to run on every boot.
func SeedStore(store storage.Store) error {
	username := envOrDefault("ADMIN_USERNAME", "admin")
	if _, err := store.GetUserByUsername(username); errors.Is(err, storage.ErrNotFound) {
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		user := &models.User{
			Username: username,
			Password: string(hash),
			Name:     "Administrator",
		}
		if err := store.CreateUser(user); err != nil && !errors.Is(err, storage.ErrDuplicate) {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		logger.InfoLogger.Infof("seeded admin user %q", username)
	}

	categories, err := store.ListCategories()
	if err != nil {
		return err
	}
	if len(categories) > 0 {
		return nil
	}

	seedCategories := []models.RoomCategory{
		{Name: "Standard", Description: "Standard room with queen bed", BasePrice: 89, Capacity: 2},
		{Name: "Deluxe", Description: "Deluxe room with king bed and city view", BasePrice: 149, Capacity: 3},
		{Name: "Suite", Description: "Suite with separate living area", BasePrice: 249, Capacity: 4},
	}
	for i := range seedCategories {
		if err := store.CreateCategory(&seedCategories[i]); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", seedCategories[i].Name, err)
		}
	}

	seedRooms := []models.Room{
		{RoomNumber: "101", CategoryID: seedCategories[0].ID, Status: models.RoomAvailable, Floor: 1, HasWifi: true, HasAC: true, HasTV: true},
		{RoomNumber: "102", CategoryID: seedCategories[0].ID, Status: models.RoomAvailable, Floor: 1, HasWifi: true, HasAC: true, HasTV: true},
		{RoomNumber: "201", CategoryID: seedCategories[1].ID, Status: models.RoomAvailable, Floor: 2, HasWifi: true, HasAC: true, HasTV: true, HasMinibar: true},
		{RoomNumber: "301", CategoryID: seedCategories[2].ID, Status: models.RoomAvailable, Floor: 3, HasWifi: true, HasAC: true, HasTV: true, HasMinibar: true, HasBalcony: true, HasRoomService: true},
	}
	for i := range seedRooms {
		if err := store.CreateRoom(&seedRooms[i]); err != nil {
			return fmt.Errorf("failed to seed room %q: %w", seedRooms[i].RoomNumber, err)
		}
	}

	logger.InfoLogger.Infof("seeded %d categories and %d rooms", len(seedCategories), len(seedRooms))
	return nil
}
