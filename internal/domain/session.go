package domain

import "time"

// ActiveSession records that the engine currently owns overrides on Slot.
type ActiveSession struct {
	Slot           int
	Record         string
	ScaleSessionID string
	IsPrimaryActor bool
	AppliedAt      time.Time
}

func (s ActiveSession) HasScaleSession() bool {
	return s.ScaleSessionID != ""
}
