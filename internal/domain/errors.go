package domain

import "errors"

var (
	ErrInvalidMonth = errors.New("month must be formatted YYYY-MM")
	ErrInvalidDate  = errors.New("date must be formatted YYYY-MM-DD")
	ErrEmptyCode    = errors.New("project code is required")
	ErrInvalidHours = errors.New("hours must be a finite number")
	ErrInvalidEmail = errors.New("email is required")
)
