package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validService() *Service {
	return &Service{
		SalonID:         1,
		Name:            "Haircut",
		DurationMinutes: 30,
		PriceUnits:      1500,
	}
}

func TestServiceValidate(t *testing.T) {
	t.Run("valid service", func(t *testing.T) {
		assert.NoError(t, validService().Validate())
	})

	t.Run("empty name", func(t *testing.T) {
		svc := validService()
		svc.Name = ""
		assert.ErrorIs(t, svc.Validate(), ErrInvalidServiceName)
	})

	t.Run("name too long", func(t *testing.T) {
		svc := validService()
		svc.Name = strings.Repeat("x", MaxServiceNameLength+1)
		assert.ErrorIs(t, svc.Validate(), ErrInvalidServiceName)
	})

	t.Run("duration not a multiple of step", func(t *testing.T) {
		svc := validService()
		svc.DurationMinutes = 40
		assert.ErrorIs(t, svc.Validate(), ErrInvalidDuration)
	})

	t.Run("duration below minimum", func(t *testing.T) {
		svc := validService()
		svc.DurationMinutes = 0
		assert.ErrorIs(t, svc.Validate(), ErrInvalidDuration)
	})

	t.Run("duration above maximum", func(t *testing.T) {
		svc := validService()
		svc.DurationMinutes = MaxServiceDurationMinutes + ServiceDurationStep
		assert.ErrorIs(t, svc.Validate(), ErrInvalidDuration)
	})

	t.Run("price out of range", func(t *testing.T) {
		svc := validService()
		svc.PriceUnits = 0
		assert.ErrorIs(t, svc.Validate(), ErrInvalidPrice)

		svc.PriceUnits = MaxServicePriceUnits + 1
		assert.ErrorIs(t, svc.Validate(), ErrInvalidPrice)
	})
}

func TestServiceMakeSnapshot(t *testing.T) {
	svc := validService()
	snap := svc.MakeSnapshot()

	require.Equal(t, "Haircut", snap.Name)
	require.Equal(t, 30, snap.DurationMinutes)
	require.Equal(t, int64(1500), snap.PriceUnits)

	// Снапшот - копия значений, правка услуги его не трогает
	svc.Name = "Renamed"
	svc.PriceUnits = 9999
	assert.Equal(t, "Haircut", snap.Name)
	assert.Equal(t, int64(1500), snap.PriceUnits)
}
