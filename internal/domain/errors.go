package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrCampaignClosed     = errors.New("campaign is no longer accepting donations")
	ErrAlreadyStopped     = errors.New("campaign is already stopped")
	ErrDuplicateOperation = errors.New("duplicate operation")
	ErrEmailTaken         = errors.New("email already registered")
)
