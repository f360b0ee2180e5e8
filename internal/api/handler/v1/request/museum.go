package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type MuseumListQuery struct {
	CategoryID *int `form:"category_id"`
}

func (q *MuseumListQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.CategoryID, validation.Min(1)),
	)
}

type WeatherQuery struct {
	Location string `form:"q"`
}

func (q *WeatherQuery) Validate() error {
	return validation.ValidateStruct(
		q,
		validation.Field(&q.Location, validation.Length(0, 100)),
	)
}
