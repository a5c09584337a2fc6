package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"hotelx-backend/models"
)

// MemoryStore keeps the ledger in mutex-guarded maps with monotonically
// assigned ids. It is the default driver when no database is configured and
// the backend the test suite runs against.
type MemoryStore struct {
	mu sync.RWMutex

	users      map[uint]models.User
	categories map[uint]models.RoomCategory
	rooms      map[uint]models.Room
	guests     map[uint]models.Guest
	bookings   map[uint]models.Booking
	payments   map[uint]models.Payment

	nextUserID     uint
	nextCategoryID uint
	nextRoomID     uint
	nextGuestID    uint
	nextBookingID  uint
	nextPaymentID  uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uint]models.User),
		categories: make(map[uint]models.RoomCategory),
		rooms:      make(map[uint]models.Room),
		guests:     make(map[uint]models.Guest),
		bookings:   make(map[uint]models.Booking),
		payments:   make(map[uint]models.Payment),

		nextUserID:     1,
		nextCategoryID: 1,
		nextRoomID:     1,
		nextGuestID:    1,
		nextBookingID:  1,
		nextPaymentID:  1,
	}
}

// ---------------- Users ----------------

func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return fmt.Errorf("%w: username %q", ErrDuplicate, user.Username)
		}
	}

	user.ID = s.nextUserID
	s.nextUserID++
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

// ---------------- Room categories ----------------

func (s *MemoryStore) ListCategories() ([]models.RoomCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.RoomCategory, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetCategory(id uint) (*models.RoomCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := c
	return &out, nil
}

func (s *MemoryStore) CreateCategory(category *models.RoomCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category.ID = s.nextCategoryID
	s.nextCategoryID++
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now
	s.categories[category.ID] = *category
	return nil
}

func (s *MemoryStore) UpdateCategory(category *models.RoomCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.categories[category.ID]
	if !ok {
		return ErrNotFound
	}
	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = time.Now().UTC()
	s.categories[category.ID] = *category
	return nil
}

func (s *MemoryStore) DeleteCategory(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

// ---------------- Rooms ----------------

func (s *MemoryStore) roomWithCategory(r models.Room) models.Room {
	if c, ok := s.categories[r.CategoryID]; ok {
		r.Category = c
	}
	return r
}

func (s *MemoryStore) ListRooms() ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, s.roomWithCategory(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetRoom(id uint) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := s.roomWithCategory(r)
	return &out, nil
}

func (s *MemoryStore) GetRoomByNumber(number string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rooms {
		if r.RoomNumber == number {
			out := s.roomWithCategory(r)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateRoom(room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rooms {
		if r.RoomNumber == room.RoomNumber {
			return fmt.Errorf("%w: room number %q", ErrDuplicate, room.RoomNumber)
		}
	}

	room.ID = s.nextRoomID
	s.nextRoomID++
	now := time.Now().UTC()
	room.CreatedAt = now
	room.UpdatedAt = now

	stored := *room
	stored.Category = models.RoomCategory{}
	s.rooms[room.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateRoom(room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rooms[room.ID]
	if !ok {
		return ErrNotFound
	}
	for _, r := range s.rooms {
		if r.ID != room.ID && r.RoomNumber == room.RoomNumber {
			return fmt.Errorf("%w: room number %q", ErrDuplicate, room.RoomNumber)
		}
	}

	room.CreatedAt = existing.CreatedAt
	room.UpdatedAt = time.Now().UTC()

	stored := *room
	stored.Category = models.RoomCategory{}
	s.rooms[room.ID] = stored
	return nil
}

func (s *MemoryStore) SetRoomStatus(id uint, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	s.rooms[id] = r
	return nil
}

func (s *MemoryStore) DeleteRoom(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(s.rooms, id)
	return nil
}

// ---------------- Guests ----------------

func (s *MemoryStore) ListGuests() ([]models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Guest, 0, len(s.guests))
	for _, g := range s.guests {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetGuest(id uint) (*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.guests[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := g
	return &out, nil
}

func (s *MemoryStore) GetGuestByEmail(email string) (*models.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.guests {
		if g.Email == email {
			out := g
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateGuest(guest *models.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.guests {
		if g.Email == guest.Email {
			return fmt.Errorf("%w: guest email %q", ErrDuplicate, guest.Email)
		}
	}

	guest.ID = s.nextGuestID
	s.nextGuestID++
	now := time.Now().UTC()
	guest.CreatedAt = now
	guest.UpdatedAt = now
	s.guests[guest.ID] = *guest
	return nil
}

func (s *MemoryStore) UpdateGuest(guest *models.Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.guests[guest.ID]
	if !ok {
		return ErrNotFound
	}
	for _, g := range s.guests {
		if g.ID != guest.ID && g.Email == guest.Email {
			return fmt.Errorf("%w: guest email %q", ErrDuplicate, guest.Email)
		}
	}

	guest.CreatedAt = existing.CreatedAt
	guest.UpdatedAt = time.Now().UTC()
	s.guests[guest.ID] = *guest
	return nil
}

func (s *MemoryStore) DeleteGuest(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.guests[id]; !ok {
		return ErrNotFound
	}
	delete(s.guests, id)
	return nil
}

// ---------------- Bookings ----------------

func (s *MemoryStore) bookingWithDetails(b models.Booking) models.Booking {
	if g, ok := s.guests[b.GuestID]; ok {
		b.Guest = g
	}
	if r, ok := s.rooms[b.RoomID]; ok {
		b.Room = s.roomWithCategory(r)
	}
	// Latest payment wins; the model carries at most one active payment.
	var latest *models.Payment
	for _, p := range s.payments {
		if p.BookingID != b.ID {
			continue
		}
		if latest == nil || p.ID > latest.ID {
			cp := p
			latest = &cp
		}
	}
	b.Payment = latest
	return b
}

func (s *MemoryStore) ListBookings() ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, s.bookingWithDetails(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetBooking(id uint) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := s.bookingWithDetails(b)
	return &out, nil
}

func (s *MemoryStore) GetBookingByNumber(number string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.BookingNumber == number {
			out := s.bookingWithDetails(b)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetBookingsOverlapping(checkIn, checkOut time.Time) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Booking
	for _, b := range s.bookings {
		if b.Status == models.BookingCancelled {
			continue
		}
		if models.DateRangesOverlap(b.CheckInDate, b.CheckOutDate, checkIn, checkOut) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateBooking(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookings {
		if b.BookingNumber == booking.BookingNumber {
			return fmt.Errorf("%w: booking number %q", ErrDuplicate, booking.BookingNumber)
		}
	}

	booking.ID = s.nextBookingID
	s.nextBookingID++
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	stored := *booking
	stored.Guest = models.Guest{}
	stored.Room = models.Room{}
	stored.Payment = nil
	s.bookings[booking.ID] = stored
	return nil
}

func (s *MemoryStore) UpdateBooking(booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.bookings[booking.ID]
	if !ok {
		return ErrNotFound
	}

	booking.CreatedAt = existing.CreatedAt
	booking.UpdatedAt = time.Now().UTC()

	stored := *booking
	stored.Guest = models.Guest{}
	stored.Room = models.Room{}
	stored.Payment = nil
	s.bookings[booking.ID] = stored
	return nil
}

func (s *MemoryStore) DeleteBooking(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

// ---------------- Payments ----------------

func (s *MemoryStore) paymentWithBooking(p models.Payment) models.Payment {
	if b, ok := s.bookings[p.BookingID]; ok {
		withDetails := s.bookingWithDetails(b)
		withDetails.Payment = nil
		p.Booking = &withDetails
	}
	return p
}

func (s *MemoryStore) ListPayments() ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		out = append(out, s.paymentWithBooking(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetPayment(id uint) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := s.paymentWithBooking(p)
	return &out, nil
}

func (s *MemoryStore) GetPaymentByTransactionID(transactionID string) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.payments {
		if p.TransactionID != nil && *p.TransactionID == transactionID {
			out := s.paymentWithBooking(p)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetPaymentByInvoiceID(invoiceID string) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.payments {
		if p.InvoiceID != nil && *p.InvoiceID == invoiceID {
			out := s.paymentWithBooking(p)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetPaymentByBookingID(bookingID uint) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.Payment
	for _, p := range s.payments {
		if p.BookingID != bookingID {
			continue
		}
		if latest == nil || p.ID > latest.ID {
			cp := p
			latest = &cp
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	out := s.paymentWithBooking(*latest)
	return &out, nil
}

func (s *MemoryStore) CreatePayment(payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.payments {
		if payment.TransactionID != nil && p.TransactionID != nil && *p.TransactionID == *payment.TransactionID {
			return fmt.Errorf("%w: transaction id %q", ErrDuplicate, *payment.TransactionID)
		}
		if payment.InvoiceID != nil && p.InvoiceID != nil && *p.InvoiceID == *payment.InvoiceID {
			return fmt.Errorf("%w: invoice id %q", ErrDuplicate, *payment.InvoiceID)
		}
	}

	payment.ID = s.nextPaymentID
	s.nextPaymentID++
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	stored := *payment
	stored.Booking = nil
	s.payments[payment.ID] = stored
	return nil
}

func (s *MemoryStore) UpdatePayment(payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.payments[payment.ID]
	if !ok {
		return ErrNotFound
	}

	payment.CreatedAt = existing.CreatedAt
	payment.UpdatedAt = time.Now().UTC()

	stored := *payment
	stored.Booking = nil
	s.payments[payment.ID] = stored
	return nil
}

func (s *MemoryStore) DeletePayment(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[id]; !ok {
		return ErrNotFound
	}
	delete(s.payments, id)
	return nil
}
