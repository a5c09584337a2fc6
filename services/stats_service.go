package services

import (
	"hotelx-backend/models"
	"hotelx-backend/storage"
)

// Stats are the dashboard aggregates.
type Stats struct {
	TotalBookings  int     `json:"totalBookings"`
	Revenue        float64 `json:"revenue"`
	OccupancyRate  float64 `json:"occupancyRate"`
	UnpaidPayments int     `json:"unpaidPayments"`
}

type StatsService struct {
	store storage.Store
}

func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store}
}

// GetStats computes total bookings, revenue over paid payments, occupancy as
// the share of occupied rooms, and the count of unpaid payments.
func (s *StatsService) GetStats() (*Stats, error) {
	bookings, err := s.store.ListBookings()
	if err != nil {
		return nil, err
	}
	rooms, err := s.store.ListRooms()
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPayments()
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalBookings: len(bookings)}

	for _, p := range payments {
		switch p.Status {
		case models.PaymentPaid:
			stats.Revenue += p.Amount
		case models.PaymentUnpaid:
			stats.UnpaidPayments++
		}
	}

	occupied := 0
	for _, r := range rooms {
		if r.Status == models.RoomOccupied {
			occupied++
		}
	}
	if len(rooms) > 0 {
		stats.OccupancyRate = float64(occupied) / float64(len(rooms)) * 100
	}

	return stats, nil
}
