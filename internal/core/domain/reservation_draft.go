package domain

// WizardStep is the reservation wizard's position. Steps only ever advance
// one at a time and every forward move is guarded by the previous step's
// selections.
type WizardStep int

const (
	StepDateTime WizardStep = iota + 1
	StepTable
	StepConfirm
)

// ReservationDraft is the wizard's in-progress state, session-scoped like the
// cart. Fetched slot/table lists ride along so a re-render needs no refetch.
type ReservationDraft struct {
	Step        WizardStep `json:"step"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Time        string     `json:"time"` // HH:MM
	NumPeople   int        `json:"numPeople"`
	TableNumber int        `json:"tableNumber"` // 0 = none chosen

	TimeSlots []string `json:"timeSlots"`
	Tables    []int    `json:"tables"`
}

// NewReservationDraft starts the wizard at step one with the default party.
func NewReservationDraft() *ReservationDraft {
	return &ReservationDraft{Step: StepDateTime, NumPeople: 2}
}
