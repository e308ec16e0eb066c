package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type editRequest struct {
	Rating       *float64 `json:"rating" validate:"required"`
	ReadingState *string  `json:"reading_state" validate:"omitempty,oneof=0 1 2 3"`
	InitialDate  *string  `json:"initial_date" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateStruct(t *testing.T) {
	rating := 3.0
	state := "7"
	date := "01/02/2024"
	okDate := "2024-01-02"

	t.Run("valid", func(t *testing.T) {
		assert.Empty(t, ValidateStruct(editRequest{Rating: &rating, InitialDate: &okDate}))
	})

	t.Run("invalid", func(t *testing.T) {
		details := ValidateStruct(editRequest{ReadingState: &state, InitialDate: &date})

		assert.ElementsMatch(t, []ErrorDetail{
			{Field: "rating", Message: "rating is required"},
			{Field: "reading_state", Message: "reading_state must be one of 0 1 2 3"},
			{Field: "initial_date", Message: "initial_date must be a date formatted as YYYY-MM-DD"},
		}, details)
	})
}
