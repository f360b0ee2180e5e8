package domain

import "errors"

var (
	ErrMuseumNotFound       = errors.New("museum not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrDraftNotFound        = errors.New("quotation draft not found")
	ErrGroupNotFound        = errors.New("discount group not found")
	ErrDiscountNotAvailable = errors.New("discount not available for the selected museum")
	ErrIncompleteQuotation  = errors.New("appointment date, hours, a museum and at least one person are required")
	ErrEmptyQuotationID     = errors.New("quotation id must not be empty")
	ErrQuotationNotFound    = errors.New("quotation not found")
	ErrWeatherUnavailable   = errors.New("no weather data for this location")
)
