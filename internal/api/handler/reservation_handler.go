package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// ReservationHandler drives the booking wizard and the customer's own list.
type ReservationHandler struct {
	reservations ports.ReservationService
	now          func() time.Time
}

func NewReservationHandler(reservations ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, now: time.Now}
}

type reservationPage struct {
	Draft *domain.ReservationDraft
	Today string
}

// Wizard renders the wizard at whatever step the draft is on.
func (h *ReservationHandler) Wizard(c echo.Context) error {
	draft, err := h.reservations.Draft(c.Request().Context(), sessionID(c))
	if err != nil {
		return err
	}
	return h.render(c, draft, "")
}

// SelectDate sets the date, resetting time and table choices.
func (h *ReservationHandler) SelectDate(c echo.Context) error {
	return h.mutate(c, func() (*domain.ReservationDraft, error) {
		return h.reservations.SelectDate(c.Request().Context(), sessionID(c), c.FormValue("date"))
	}, "Could not load available times")
}

// SelectTime sets the time, resetting the table choice.
func (h *ReservationHandler) SelectTime(c echo.Context) error {
	return h.mutate(c, func() (*domain.ReservationDraft, error) {
		return h.reservations.SelectTime(c.Request().Context(), sessionID(c), c.FormValue("time"))
	}, "Could not select that time")
}

// SetPartySize records the party size.
func (h *ReservationHandler) SetPartySize(c echo.Context) error {
	n, err := strconv.Atoi(c.FormValue("num_people"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid party size")
	}
	return h.mutate(c, func() (*domain.ReservationDraft, error) {
		return h.reservations.SetPartySize(c.Request().Context(), sessionID(c), n)
	}, "Could not set the party size")
}

// SelectTable records the chosen table.
func (h *ReservationHandler) SelectTable(c echo.Context) error {
	table, err := strconv.Atoi(c.FormValue("table"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid table")
	}
	return h.mutate(c, func() (*domain.ReservationDraft, error) {
		return h.reservations.SelectTable(c.Request().Context(), sessionID(c), table)
	}, "Could not select that table")
}

// Next advances the wizard when the current step's selections are complete.
func (h *ReservationHandler) Next(c echo.Context) error {
	return h.mutate(c, func() (*domain.ReservationDraft, error) {
		return h.reservations.Next(c.Request().Context(), sessionID(c))
	}, "Complete this step first")
}

// Back steps backwards, keeping later selections.
func (h *ReservationHandler) Back(c echo.Context) error {
	return h.mutate(c, func() (*domain.ReservationDraft, error) {
		return h.reservations.Back(c.Request().Context(), sessionID(c))
	}, "Could not go back")
}

// Confirm submits the reservation and clears the draft.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	_, err := h.reservations.Confirm(c.Request().Context(), sessionID(c), customerID(c))
	if err != nil {
		draft, derr := h.reservations.Draft(c.Request().Context(), sessionID(c))
		if derr != nil {
			return err
		}
		return h.render(c, draft, domain.ErrorMessage(err, "Could not confirm the reservation"))
	}
	return c.Redirect(http.StatusSeeOther, "/my-reservations?created=1")
}

type myReservationsPage struct {
	Reservations []domain.Reservation
}

// Mine lists the customer's reservations.
func (h *ReservationHandler) Mine(c echo.Context) error {
	reservations, err := h.reservations.Mine(c.Request().Context())
	if err != nil {
		return err
	}
	p := newPage(c, "My reservations", myReservationsPage{Reservations: reservations})
	if c.QueryParam("created") == "1" {
		p.Success = "Reservation confirmed!"
	}
	if c.QueryParam("cancelled") == "1" {
		p.Success = "Reservation cancelled."
	}
	return c.Render(http.StatusOK, "my_reservations", p)
}

// Cancel cancels one of the customer's reservations.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := strconv.Atoi(c.FormValue("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation")
	}
	if err := h.reservations.Cancel(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/my-reservations?cancelled=1")
}

// mutate applies one wizard mutation and re-renders in place; a backend
// failure keeps the draft visible with a message rather than a dead end.
func (h *ReservationHandler) mutate(c echo.Context, op func() (*domain.ReservationDraft, error), fallback string) error {
	draft, err := op()
	if err != nil {
		if draft == nil {
			var derr error
			draft, derr = h.reservations.Draft(c.Request().Context(), sessionID(c))
			if derr != nil {
				return err
			}
		}
		return h.render(c, draft, domain.ErrorMessage(err, fallback))
	}
	return c.Redirect(http.StatusSeeOther, "/reservations/new")
}

func (h *ReservationHandler) render(c echo.Context, draft *domain.ReservationDraft, errMsg string) error {
	p := newPage(c, "Reserve a table", reservationPage{
		Draft: draft,
		Today: h.now().Format("2006-01-02"),
	})
	p.Error = errMsg
	status := http.StatusOK
	if errMsg != "" {
		status = http.StatusUnprocessableEntity
	}
	return c.Render(status, "reservation", p)
}
