package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/ports"
)

// ReservationService drives the three-step wizard
// (date+time → table → confirm). Changing an earlier selection resets
// everything it feeds: a new date drops the chosen time and table, a new time
// drops the table. Back navigation keeps later selections until a forward
// move re-fetches them.
type ReservationService struct {
	backend ports.ReservationBackend
	wizards ports.WizardStore
	log     zerolog.Logger
}

func NewReservationService(b ports.ReservationBackend, wizards ports.WizardStore, log zerolog.Logger) *ReservationService {
	return &ReservationService{backend: b, wizards: wizards, log: log}
}

// Draft returns the session's wizard state, starting a fresh one when none
// exists.
func (s *ReservationService) Draft(ctx context.Context, sessionID string) (*domain.ReservationDraft, error) {
	d, err := s.wizards.Get(ctx, sessionID)
	if err == nil && d != nil {
		return d, nil
	}
	d = domain.NewReservationDraft()
	if err := s.wizards.Set(ctx, sessionID, d); err != nil {
		return nil, err
	}
	return d, nil
}

// SelectDate fetches the date's time slots and resets the dependent
// selections: time, table, and the fetched table list.
func (s *ReservationService) SelectDate(ctx context.Context, sessionID, date string) (*domain.ReservationDraft, error) {
	d, err := s.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	d.Date = date
	d.Time = ""
	d.TableNumber = 0
	d.Tables = nil
	d.TimeSlots = nil

	if date != "" {
		slots, err := s.backend.TimeSlots(ctx, date)
		if err != nil {
			return d, err
		}
		d.TimeSlots = slots
	}
	return d, s.wizards.Set(ctx, sessionID, d)
}

// SelectTime fetches the free tables for date+time and resets the chosen
// table.
func (s *ReservationService) SelectTime(ctx context.Context, sessionID, timeOfDay string) (*domain.ReservationDraft, error) {
	d, err := s.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	d.Time = timeOfDay
	d.TableNumber = 0
	d.Tables = nil

	if d.Date != "" && timeOfDay != "" {
		tables, err := s.backend.AvailableTables(ctx, d.Date, timeOfDay)
		if err != nil {
			return d, err
		}
		d.Tables = tables
	}
	return d, s.wizards.Set(ctx, sessionID, d)
}

func (s *ReservationService) SetPartySize(ctx context.Context, sessionID string, n int) (*domain.ReservationDraft, error) {
	d, err := s.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	d.NumPeople = n
	return d, s.wizards.Set(ctx, sessionID, d)
}

func (s *ReservationService) SelectTable(ctx context.Context, sessionID string, table int) (*domain.ReservationDraft, error) {
	d, err := s.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	d.TableNumber = table
	return d, s.wizards.Set(ctx, sessionID, d)
}

// Next advances one step, gated on the current step's selections: step one
// needs a date, a time, and a sane party size; step two needs a table.
func (s *ReservationService) Next(ctx context.Context, sessionID string) (*domain.ReservationDraft, error) {
	d, err := s.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch d.Step {
	case domain.StepDateTime:
		if d.Date == "" || d.Time == "" || d.NumPeople < 1 || d.NumPeople > 20 {
			return d, domain.ErrInvalidStep
		}
		d.Step = domain.StepTable
	case domain.StepTable:
		if d.TableNumber == 0 {
			return d, domain.ErrInvalidStep
		}
		d.Step = domain.StepConfirm
	default:
		return d, domain.ErrInvalidStep
	}
	return d, s.wizards.Set(ctx, sessionID, d)
}

// Back steps backwards without discarding later-step selections.
func (s *ReservationService) Back(ctx context.Context, sessionID string) (*domain.ReservationDraft, error) {
	d, err := s.Draft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if d.Step > domain.StepDateTime {
		d.Step--
	}
	return d, s.wizards.Set(ctx, sessionID, d)
}

// Confirm submits the composite reservation. Unreachable without a confirmed
// table; on success the wizard draft is discarded.
func (s *ReservationService) Confirm(ctx context.Context, sessionID string, customerID int) (domain.Reservation, error) {
	d, err := s.Draft(ctx, sessionID)
	if err != nil {
		return domain.Reservation{}, err
	}
	if d.Step != domain.StepConfirm || d.TableNumber == 0 {
		return domain.Reservation{}, domain.ErrInvalidStep
	}

	res, err := s.backend.CreateReservation(ctx, ports.ReservationInput{
		ReservationDateTime: d.Date + "T" + d.Time + ":00",
		NumPeople:           d.NumPeople,
		TableNumber:         d.TableNumber,
		CustomerID:          customerID,
	})
	if err != nil {
		return domain.Reservation{}, err
	}

	if err := s.wizards.Clear(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Msg("wizard clear failed after confirm")
	}
	s.log.Info().Int("reservation_id", res.ReservationID).Int("table", d.TableNumber).Msg("reservation confirmed")
	return res, nil
}

func (s *ReservationService) Mine(ctx context.Context) ([]domain.Reservation, error) {
	return s.backend.MyReservations(ctx)
}

func (s *ReservationService) Cancel(ctx context.Context, id int) error {
	return s.backend.CancelReservation(ctx, id)
}
