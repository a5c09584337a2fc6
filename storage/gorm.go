package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotelx-backend/models"
)

// GormStore persists the ledger in MySQL through gorm.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// translate maps driver errors onto the storage sentinel errors so services
// never string-match MySQL messages themselves.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	// Other drivers word it differently.
	lc := strings.ToLower(err.Error())
	if strings.Contains(lc, "duplicate entry") || strings.Contains(lc, "unique constraint") {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// ---------------- Users ----------------

func (s *GormStore) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateUser(user *models.User) error {
	return translate(s.db.Create(user).Error)
}

// ---------------- Room categories ----------------

func (s *GormStore) ListCategories() ([]models.RoomCategory, error) {
	var list []models.RoomCategory
	if err := s.db.Order("id").Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (s *GormStore) GetCategory(id uint) (*models.RoomCategory, error) {
	var category models.RoomCategory
	if err := s.db.First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *GormStore) CreateCategory(category *models.RoomCategory) error {
	return translate(s.db.Create(category).Error)
}

func (s *GormStore) UpdateCategory(category *models.RoomCategory) error {
	res := s.db.Omit(clause.Associations).Save(category)
	if res.Error != nil {
		return translate(res.Error)
	}
	return nil
}

func (s *GormStore) DeleteCategory(id uint) error {
	res := s.db.Delete(&models.RoomCategory{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- Rooms ----------------

func (s *GormStore) ListRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.Preload("Category").Order("id").Find(&rooms).Error; err != nil {
		return nil, translate(err)
	}
	return rooms, nil
}

func (s *GormStore) GetRoom(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.Preload("Category").First(&room, id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (s *GormStore) GetRoomByNumber(number string) (*models.Room, error) {
	var room models.Room
	if err := s.db.Preload("Category").Where("room_number = ?", number).First(&room).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (s *GormStore) CreateRoom(room *models.Room) error {
	return translate(s.db.Omit(clause.Associations).Create(room).Error)
}

func (s *GormStore) UpdateRoom(room *models.Room) error {
	return translate(s.db.Omit(clause.Associations).Save(room).Error)
}

func (s *GormStore) SetRoomStatus(id uint, status string) error {
	res := s.db.Model(&models.Room{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteRoom(id uint) error {
	res := s.db.Delete(&models.Room{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- Guests ----------------

func (s *GormStore) ListGuests() ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.db.Order("id").Find(&guests).Error; err != nil {
		return nil, translate(err)
	}
	return guests, nil
}

func (s *GormStore) GetGuest(id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.db.First(&guest, id).Error; err != nil {
		return nil, translate(err)
	}
	return &guest, nil
}

func (s *GormStore) GetGuestByEmail(email string) (*models.Guest, error) {
	var guest models.Guest
	if err := s.db.Where("email = ?", email).First(&guest).Error; err != nil {
		return nil, translate(err)
	}
	return &guest, nil
}

func (s *GormStore) CreateGuest(guest *models.Guest) error {
	return translate(s.db.Create(guest).Error)
}

func (s *GormStore) UpdateGuest(guest *models.Guest) error {
	return translate(s.db.Omit(clause.Associations).Save(guest).Error)
}

func (s *GormStore) DeleteGuest(id uint) error {
	res := s.db.Delete(&models.Guest{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- Bookings ----------------

func (s *GormStore) bookingQuery() *gorm.DB {
	return s.db.
		Preload("Guest").
		Preload("Room").
		Preload("Room.Category").
		Preload("Payment")
}

func (s *GormStore) ListBookings() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.bookingQuery().Order("id").Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (s *GormStore) GetBooking(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.bookingQuery().First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (s *GormStore) GetBookingByNumber(number string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.bookingQuery().Where("booking_number = ?", number).First(&booking).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (s *GormStore) GetBookingsOverlapping(checkIn, checkOut time.Time) ([]models.Booking, error) {
	var list []models.Booking
	err := s.db.
		Where("status <> ?", models.BookingCancelled).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (s *GormStore) CreateBooking(booking *models.Booking) error {
	return translate(s.db.Omit(clause.Associations).Create(booking).Error)
}

func (s *GormStore) UpdateBooking(booking *models.Booking) error {
	return translate(s.db.Omit(clause.Associations).Save(booking).Error)
}

func (s *GormStore) DeleteBooking(id uint) error {
	res := s.db.Delete(&models.Booking{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- Payments ----------------

func (s *GormStore) paymentQuery() *gorm.DB {
	return s.db.
		Preload("Booking").
		Preload("Booking.Guest").
		Preload("Booking.Room").
		Preload("Booking.Room.Category")
}

func (s *GormStore) ListPayments() ([]models.Payment, error) {
	var list []models.Payment
	if err := s.paymentQuery().Order("id").Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (s *GormStore) GetPayment(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.paymentQuery().First(&payment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (s *GormStore) GetPaymentByTransactionID(transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.paymentQuery().Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (s *GormStore) GetPaymentByInvoiceID(invoiceID string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.paymentQuery().Where("invoice_id = ?", invoiceID).First(&payment).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (s *GormStore) GetPaymentByBookingID(bookingID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.paymentQuery().
		Where("booking_id = ?", bookingID).
		Order("id DESC").
		First(&payment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (s *GormStore) CreatePayment(payment *models.Payment) error {
	return translate(s.db.Omit(clause.Associations).Create(payment).Error)
}

func (s *GormStore) UpdatePayment(payment *models.Payment) error {
	return translate(s.db.Omit(clause.Associations).Save(payment).Error)
}

func (s *GormStore) DeletePayment(id uint) error {
	res := s.db.Delete(&models.Payment{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
