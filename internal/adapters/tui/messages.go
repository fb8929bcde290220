package tui

import "go.trai.ch/mesha/internal/core/domain"

// MsgChanges carries the host changes that triggered a round.
type MsgChanges struct {
	Events []domain.ChangeEvent
}

// MsgReport carries a completed round.
type MsgReport struct {
	Report domain.Report
}

// MsgError carries a failed round.
type MsgError struct {
	Err error
}
