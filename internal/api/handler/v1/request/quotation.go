package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	dateLayout       = "2006-01-02"
	hourRegexPattern = `^(?:[01]\d|2[0-3]):[0-5]\d$`
)

var (
	hourExp = regexp2.MustCompile(hourRegexPattern, regexp2.None)

	errInvalidHour       = errors.New("must be a time in HH:mm format")
	errEndBeforeStart    = errors.New("end_hour must be after start_hour")
	errConflictingChange = errors.New("discount_id and clear_discount cannot be used together")
)

func validHour(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	ok, err := hourExp.MatchString(s)
	if err != nil || !ok {
		return errInvalidHour
	}
	return nil
}

// ValidateID checks a draft or group id taken from the URL.
func ValidateID(id string) error {
	return validation.Validate(id, validation.Required, is.UUIDv4)
}

type CreateDraftRequest struct {
	MuseumID *int `json:"museum_id"`
}

func (req *CreateDraftRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MuseumID, validation.Min(-1)),
	)
}

type SelectMuseumRequest struct {
	MuseumID int `json:"museum_id"`
}

func (req *SelectMuseumRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MuseumID, validation.Required, validation.Min(-1)),
	)
}

type ScheduleRequest struct {
	AppointmentDate string `json:"appointment_date"`
	StartHour       string `json:"start_hour"`
	EndHour         string `json:"end_hour"`
}

// Validate accepts blank values so a schedule can be filled in step by
// step; completeness is enforced on submit.
func (req *ScheduleRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.AppointmentDate, validation.Date(dateLayout)),
		validation.Field(&req.StartHour, validation.By(validHour)),
		validation.Field(&req.EndHour, validation.By(validHour)),
	)
	if err != nil {
		return err
	}

	// HH:mm strings order the same way as the times they hold.
	if req.StartHour != "" && req.EndHour != "" && req.EndHour <= req.StartHour {
		return errEndBeforeStart
	}

	return nil
}

type CountsRequest struct {
	General string `json:"general"`
	Infants string `json:"infants"`
}

func (req *CountsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.General, validation.Length(0, 9)),
		validation.Field(&req.Infants, validation.Length(0, 9)),
	)
}

type UpdateGroupRequest struct {
	Count         *string `json:"count"`
	DiscountID    *int    `json:"discount_id"`
	ClearDiscount bool    `json:"clear_discount"`
}

func (req *UpdateGroupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Count, validation.Length(0, 9)),
		validation.Field(&req.DiscountID, validation.Min(1)),
	)
	if err != nil {
		return err
	}

	if req.DiscountID != nil && req.ClearDiscount {
		return errConflictingChange
	}

	return nil
}

type HistoryQuery struct {
	Limit int `form:"limit"`
}

func (q *HistoryQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Limit, validation.Min(0), validation.Max(100)),
	)
}
