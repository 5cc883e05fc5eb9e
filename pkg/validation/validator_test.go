package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type rangeQuery struct {
	FechaInicio string `form:"fechaInicio" binding:"omitempty,isodate" validate:"omitempty,isodate"`
	FechaFin    string `form:"fechaFin" validate:"omitempty,isodate"`
}

type reasonBody struct {
	ID     string `json:"idUsuarioDigital" validate:"required"`
	Motivo string `json:"motivo" validate:"required,max=5"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestIsoDate(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Struct(rangeQuery{}))
	assert.NoError(t, v.Struct(rangeQuery{FechaInicio: "2024-02-29", FechaFin: "2024-03-01"}))

	err := v.Struct(rangeQuery{FechaInicio: "29/02/2024", FechaFin: "2024-13-01"})
	details := ToDetails(err)
	assert.Equal(t, map[string]string{
		"fechaInicio": "must be a date in YYYY-MM-DD format",
		"fechaFin":    "must be a date in YYYY-MM-DD format",
	}, details)
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	err := newValidator().Struct(reasonBody{Motivo: "too long text"})
	assert.Equal(t, map[string]string{
		"idUsuarioDigital": "is required",
		"motivo":           "must be at most 5 characters",
	}, ToDetails(err))
}

func TestToDetailsInvalidJSON(t *testing.T) {
	var out map[string]any
	err := json.Unmarshal([]byte("{"), &out)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}
