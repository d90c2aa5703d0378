package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

type timeSlotsResponse struct {
	Success   bool     `json:"success"`
	TimeSlots []string `json:"time_slots"`
}

// TimeSlots returns the bookable "HH:MM" slots for a date (YYYY-MM-DD).
func (c *Client) TimeSlots(ctx context.Context, date string) ([]string, error) {
	u := c.base + "/reservations/time-slots/?date=" + url.QueryEscape(date)
	var out timeSlotsResponse
	if err := c.do(ctx, http.MethodGet, "reservation-time-slots", u, nil, &out); err != nil {
		return nil, err
	}
	return out.TimeSlots, nil
}

type availableTablesResponse struct {
	Success         bool  `json:"success"`
	AvailableTables []int `json:"available_tables"`
}

// AvailableTables returns the free table numbers for a date + "HH:MM" time.
func (c *Client) AvailableTables(ctx context.Context, date, timeOfDay string) ([]int, error) {
	u := c.base + "/reservations/available-tables/?date=" + url.QueryEscape(date) + "&time=" + url.QueryEscape(timeOfDay)
	var out availableTablesResponse
	if err := c.do(ctx, http.MethodGet, "reservation-available-tables", u, nil, &out); err != nil {
		return nil, err
	}
	return out.AvailableTables, nil
}

type createReservationResponse struct {
	Success       bool               `json:"success"`
	Error         string             `json:"error"`
	EmailSent     bool               `json:"email_sent"`
	Reservation   domain.Reservation `json:"reservation"`
	ReservationID int                `json:"reservation_id"`
}

// CreateReservation submits the assembled reservation in one call.
func (c *Client) CreateReservation(ctx context.Context, in ports.ReservationInput) (domain.Reservation, error) {
	var out createReservationResponse
	if err := c.do(ctx, http.MethodPost, "reservation-create", c.base+"/reservations/create/", in, &out); err != nil {
		return domain.Reservation{}, err
	}
	if !out.Success {
		return domain.Reservation{}, &domain.RequestError{StatusCode: http.StatusUnprocessableEntity, Message: out.Error}
	}
	res := out.Reservation
	if res.ReservationID == 0 {
		res.ReservationID = out.ReservationID
	}
	return res, nil
}

type myReservationsResponse struct {
	Success      bool                 `json:"success"`
	Reservations []domain.Reservation `json:"reservations"`
}

// MyReservations lists the authenticated customer's reservations.
func (c *Client) MyReservations(ctx context.Context) ([]domain.Reservation, error) {
	var out myReservationsResponse
	if err := c.do(ctx, http.MethodGet, "reservations-my", c.base+"/reservations/my/", nil, &out); err != nil {
		return nil, err
	}
	return out.Reservations, nil
}

// CancelReservation cancels one of the customer's reservations.
func (c *Client) CancelReservation(ctx context.Context, id int) error {
	u := c.base + "/reservations/" + strconv.Itoa(id) + "/cancel/"
	return c.do(ctx, http.MethodPost, "reservation-cancel", u, nil, nil)
}
