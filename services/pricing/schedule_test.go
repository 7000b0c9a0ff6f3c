package pricing

import (
	"testing"

	"roomservice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalize(t *testing.T) {
	window := Schedule{Value: models.PriceSchedule{ActiveFrom: "09:00", ActiveTo: "18:00"}, Present: true}

	tests := []struct {
		name string
		raw  any
		want Schedule
	}{
		{"nil", nil, Absent},
		{"empty string", "", Absent},
		{"blank string", "   \n", Absent},
		{"json null", "null", Absent},
		{"malformed json", `{"activeFrom": "09:00"`, Absent},
		{"json without fields", `{"foo": 1}`, Absent},
		{"json string", ` {"activeFrom":"09:00","activeTo":"18:00"} `, window},
		{"json bytes", []byte(`{"activeFrom":"09:00","activeTo":"18:00"}`), window},
		{"one-sided json", `{"activeFrom":"09:00"}`, Absent},
		{"one-sided struct", models.PriceSchedule{ActiveFrom: "09:00"}, Absent},
		{"zero struct", models.PriceSchedule{}, Absent},
		{"struct", models.PriceSchedule{ActiveFrom: "09:00", ActiveTo: "18:00"}, window},
		{"struct pointer", &models.PriceSchedule{ActiveFrom: "09:00", ActiveTo: "18:00"}, window},
		{"nil struct pointer", (*models.PriceSchedule)(nil), Absent},
		{"map", map[string]any{"activeFrom": "09:00", "activeTo": "18:00"}, window},
		{"bson.M", bson.M{"activeFrom": "09:00", "activeTo": "18:00"}, window},
		{"bson.D", bson.D{{Key: "activeFrom", Value: "09:00"}, {Key: "activeTo", Value: "18:00"}}, window},
		{"empty bson.D", bson.D{}, Absent},
		{"null fields", map[string]any{"activeFrom": nil, "activeTo": nil}, Absent},
		{"unrelated type", 42, Absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []any{
		nil,
		"garbage",
		`{"activeFrom":"22:00","activeTo":"02:00"}`,
		models.PriceSchedule{ActiveFrom: "22:00"},
		bson.M{"activeFrom": "07:30", "activeTo": "11:00"},
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
		assert.Equal(t, once, Normalize(&once))
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := map[string]any{"activeFrom": " 09:00 ", "activeTo": "18:00", "extra": true}
	_ = Normalize(raw)

	assert.Equal(t, map[string]any{"activeFrom": " 09:00 ", "activeTo": "18:00", "extra": true}, raw)
}

func TestNormalizeCorruptValueIsAbsent(t *testing.T) {
	require.NotPanics(t, func() {
		assert.Equal(t, Absent, Normalize(corruptSchedule{}))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    models.PriceSchedule
		wantErr error
	}{
		{"absent", nil, models.PriceSchedule{}, nil},
		{"both empty", models.PriceSchedule{}, models.PriceSchedule{}, nil},
		{"both empty json", `{"activeFrom":"","activeTo":""}`, models.PriceSchedule{}, nil},
		{"valid", `{"activeFrom":"22:00","activeTo":"02:00"}`, models.PriceSchedule{ActiveFrom: "22:00", ActiveTo: "02:00"}, nil},
		{"trimmed", models.PriceSchedule{ActiveFrom: " 09:00", ActiveTo: "18:00 "}, models.PriceSchedule{ActiveFrom: "09:00", ActiveTo: "18:00"}, nil},
		{"one-sided", models.PriceSchedule{ActiveFrom: "09:00"}, models.PriceSchedule{}, ErrIncompleteSchedule},
		{"single digit hour", models.PriceSchedule{ActiveFrom: "9:00", ActiveTo: "18:00"}, models.PriceSchedule{}, ErrInvalidTimeOfDay},
		{"hour out of range", models.PriceSchedule{ActiveFrom: "24:00", ActiveTo: "18:00"}, models.PriceSchedule{}, ErrInvalidTimeOfDay},
		{"minute out of range", models.PriceSchedule{ActiveFrom: "09:60", ActiveTo: "18:00"}, models.PriceSchedule{}, ErrInvalidTimeOfDay},
		{"malformed json", `{"activeFrom":`, models.PriceSchedule{}, ErrInvalidSchedule},
		{"value that panics when read", corruptSchedule{}, models.PriceSchedule{}, ErrInvalidSchedule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, models.PriceSchedule{ActiveFrom: "", ActiveTo: ""}, Canonical(Absent))
	assert.Equal(t, models.PriceSchedule{}, Canonical(Schedule{Value: models.PriceSchedule{ActiveFrom: "09:00"}, Present: true}))

	window := models.PriceSchedule{ActiveFrom: "09:00", ActiveTo: "18:00"}
	assert.Equal(t, window, Canonical(Normalize(window)))
}
