package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	serviceRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/service"
	whRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/workinghours"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	intervals []domain.Interval
	err       error
	calls     int
}

func (f *fakeBookingRepo) OccupiedIntervals(_ context.Context, _ int64, _, _ time.Time) ([]domain.Interval, error) {
	f.calls++
	return f.intervals, f.err
}

type fakeWorkingHoursRepo struct {
	windows map[time.Weekday]domain.Window
}

func (f *fakeWorkingHoursRepo) Window(_ context.Context, _ int64, weekday time.Weekday) (domain.Window, error) {
	w, ok := f.windows[weekday]
	if !ok {
		return domain.Window{}, whRepo.ErrWindowNotFound
	}
	return w, nil
}

type fakeSalonRepo struct {
	salons map[int64]*domain.Salon
}

func (f *fakeSalonRepo) GetByID(_ context.Context, id int64) (*domain.Salon, error) {
	s, ok := f.salons[id]
	if !ok {
		return nil, salonRepo.ErrSalonNotFound
	}
	return s, nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64, activeOnly bool) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	if activeOnly && s.Lifecycle.IsDeleted() {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	hours    *fakeWorkingHoursRepo
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	salons := &fakeSalonRepo{salons: map[int64]*domain.Salon{
		1: {ID: 1, OwnerID: 10, Name: "Studio One", Timezone: "UTC"},
	}}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		100: {
			ID:              100,
			SalonID:         1,
			Name:            "Haircut",
			DurationMinutes: 30,
			PriceUnits:      1500,
			Lifecycle:       domain.ActiveLifecycle(),
		},
		200: {
			ID:              200,
			SalonID:         2,
			Name:            "Other salon service",
			DurationMinutes: 30,
			PriceUnits:      1000,
			Lifecycle:       domain.ActiveLifecycle(),
		},
	}}
	hours := &fakeWorkingHoursRepo{windows: map[time.Weekday]domain.Window{
		time.Monday: {Open: types.TimeString("09:00"), Close: types.TimeString("17:00")},
	}}
	bookings := &fakeBookingRepo{}

	uc := NewUseCase(bookings, hours, salons, services, nil, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &testEnv{uc: uc, bookings: bookings, hours: hours}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 7, h, m, 0, 0, time.UTC)
	}

	t.Run("OpenDayWithOneBooking", func(t *testing.T) {
		env := newTestEnv(t, now)
		env.bookings.intervals = []domain.Interval{
			{Start: at(10, 0), End: at(10, 30)},
		}

		resp, err := env.uc.Execute(ctx, &Request{SalonID: 1, ServiceID: 100, Date: monday})
		require.NoError(t, err)

		starts := make(map[string]bool, len(resp.Slots))
		for _, s := range resp.Slots {
			starts[s.StartTime.String()] = true
			assert.Equal(t, 30, s.DurationMinutes)
		}

		assert.True(t, starts["09:00"])
		assert.True(t, starts["09:30"])
		assert.False(t, starts["09:45"])
		assert.False(t, starts["10:00"])
		assert.False(t, starts["10:15"])
		assert.True(t, starts["10:30"])
		assert.True(t, starts["16:30"])
		assert.False(t, starts["16:45"])

		// 31 candidates minus 3 blocked starts
		assert.Len(t, resp.Slots, 28)
	})

	t.Run("SlotsAreOrderedAndDeterministic", func(t *testing.T) {
		env := newTestEnv(t, now)
		env.bookings.intervals = []domain.Interval{
			{Start: at(12, 0), End: at(13, 0)},
		}

		first, err := env.uc.Execute(ctx, &Request{SalonID: 1, ServiceID: 100, Date: monday})
		require.NoError(t, err)
		second, err := env.uc.Execute(ctx, &Request{SalonID: 1, ServiceID: 100, Date: monday})
		require.NoError(t, err)

		assert.Equal(t, first, second)
		for i := 1; i < len(first.Slots); i++ {
			assert.True(t, first.Slots[i-1].StartsAt.Before(first.Slots[i].StartsAt))
		}
	})

	t.Run("ClosedDayGivesEmptyList", func(t *testing.T) {
		env := newTestEnv(t, now)
		sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

		resp, err := env.uc.Execute(ctx, &Request{SalonID: 1, ServiceID: 100, Date: sunday})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("PastDateGivesEmptyList", func(t *testing.T) {
		env := newTestEnv(t, now)
		pastMonday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		resp, err := env.uc.Execute(ctx, &Request{SalonID: 1, ServiceID: 100, Date: pastMonday})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
		assert.Zero(t, env.bookings.calls)
	})

	t.Run("SameDayFiltersElapsedSlots", func(t *testing.T) {
		env := newTestEnv(t, at(11, 0))

		resp, err := env.uc.Execute(ctx, &Request{SalonID: 1, ServiceID: 100, Date: monday})
		require.NoError(t, err)

		require.NotEmpty(t, resp.Slots)
		// First remaining slot starts exactly at the current time
		assert.Equal(t, types.TimeString("11:00"), resp.Slots[0].StartTime)
	})

	t.Run("SalonNotFound", func(t *testing.T) {
		env := newTestEnv(t, now)

		_, err := env.uc.Execute(ctx, &Request{SalonID: 99, ServiceID: 100, Date: monday})
		assert.ErrorIs(t, err, ErrSalonNotFound)
	})

	t.Run("ServiceNotFound", func(t *testing.T) {
		env := newTestEnv(t, now)

		_, err := env.uc.Execute(ctx, &Request{SalonID: 1, ServiceID: 999, Date: monday})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("ServiceFromAnotherSalon", func(t *testing.T) {
		env := newTestEnv(t, now)

		_, err := env.uc.Execute(ctx, &Request{SalonID: 1, ServiceID: 200, Date: monday})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		env := newTestEnv(t, now)

		_, err := env.uc.Execute(ctx, &Request{SalonID: 0, ServiceID: 100, Date: monday})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = env.uc.Execute(ctx, &Request{SalonID: 1, ServiceID: 100})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
