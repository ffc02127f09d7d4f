package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
)

// Фейки

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByClientID(_ context.Context, clientID int64, includeDeleted bool) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.ClientID == nil || *b.ClientID != clientID {
			continue
		}
		if !includeDeleted && b.Lifecycle.IsDeleted() {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetBySalonWithFilter(_ context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.SalonID != filter.SalonID {
			continue
		}
		if !filter.IncludeDeleted && b.Lifecycle.IsDeleted() {
			continue
		}
		if filter.Type != nil && b.Type != *filter.Type {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeBookingRepo) SoftDelete(_ context.Context, id int64, actorID int64) error {
	b, ok := f.bookings[id]
	if !ok || b.Lifecycle.IsDeleted() {
		return bookingRepo.ErrBookingNotFound
	}
	b.Lifecycle = domain.DeletedLifecycle(time.Now(), actorID)
	return nil
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

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) Invalidate(_ context.Context, salonID int64, date string) error {
	f.invalidated = append(f.invalidated, date)
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Окружение

type testEnv struct {
	svc      *Service
	bookings *fakeBookingRepo
	cache    *fakeCache
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// 2 июня 2025, понедельник, 12:00 UTC
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	salons := &fakeSalonRepo{salons: map[int64]*domain.Salon{
		1: {ID: 1, OwnerID: 10, Name: "Shear Genius", Timezone: "Europe/Moscow"},
	}}

	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		// Предстоящее ONLINE бронирование клиента 42
		1: {
			ID: 1, SalonID: 1, Type: domain.TypeOnline,
			ServiceID: ptr.Ptr(int64(100)), ClientID: ptr.Ptr(int64(42)),
			StartsAt: now.Add(2 * time.Hour), EndsAt: now.Add(2*time.Hour + 30*time.Minute),
			Snapshot:  domain.ServiceSnapshot{Name: "Haircut", DurationMinutes: 30, PriceUnits: 1500},
			Lifecycle: domain.ActiveLifecycle(),
		},
		// Завершённое бронирование клиента 42
		2: {
			ID: 2, SalonID: 1, Type: domain.TypeOnline,
			ServiceID: ptr.Ptr(int64(100)), ClientID: ptr.Ptr(int64(42)),
			StartsAt: now.Add(-3 * time.Hour), EndsAt: now.Add(-2 * time.Hour),
			Lifecycle: domain.ActiveLifecycle(),
		},
		// MANUAL блок владельца
		3: {
			ID: 3, SalonID: 1, Type: domain.TypeManual,
			StartsAt: now.Add(4 * time.Hour), EndsAt: now.Add(5 * time.Hour),
			Lifecycle: domain.ActiveLifecycle(),
		},
	}}

	cache := &fakeCache{}

	svc := NewService(bookings, salons, cache, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}

	return &testEnv{svc: svc, bookings: bookings, cache: cache, now: now}
}

// Тесты

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("client sees own booking", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.GetByID(ctx, 1, 42, domain.RoleUser)
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "upcoming", resp.Status)
		assert.Equal(t, "Haircut", resp.ServiceName)
	})

	t.Run("owner sees salon booking", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.GetByID(ctx, 1, 10, domain.RoleOwner)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("foreign client denied", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetByID(ctx, 1, 99, domain.RoleUser)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("foreign owner denied", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetByID(ctx, 3, 11, domain.RoleOwner)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetByID(ctx, 777, 42, domain.RoleUser)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("completed status derived", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.GetByID(ctx, 2, 42, domain.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
	})
}

func TestGetUserBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("returns client bookings", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{ClientID: 42})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("cancelled excluded by default", func(t *testing.T) {
		env := newTestEnv(t)

		require.NoError(t, env.svc.Cancel(ctx, 1, 42, domain.RoleUser))

		resp, err := env.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{ClientID: 42})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)

		resp, err = env.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{ClientID: 42, IncludeDeleted: true})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})

	t.Run("invalid client id", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{ClientID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetSalonBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("owner gets bookings with type filter", func(t *testing.T) {
		env := newTestEnv(t)

		manual := "MANUAL"
		resp, err := env.svc.GetSalonBookings(ctx, &models.GetSalonBookingsRequest{
			SalonID: 1, Type: &manual, ActorID: 10, ActorRole: domain.RoleOwner,
		})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, "MANUAL", resp.Bookings[0].Type)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetSalonBookings(ctx, &models.GetSalonBookingsRequest{
			SalonID: 1, ActorID: 42, ActorRole: domain.RoleUser,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		env := newTestEnv(t)

		bad := "PHONE"
		_, err := env.svc.GetSalonBookings(ctx, &models.GetSalonBookingsRequest{
			SalonID: 1, Type: &bad, ActorID: 10, ActorRole: domain.RoleOwner,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted period rejected", func(t *testing.T) {
		env := newTestEnv(t)

		from := env.now.Add(24 * time.Hour)
		to := env.now
		_, err := env.svc.GetSalonBookings(ctx, &models.GetSalonBookingsRequest{
			SalonID: 1, From: &from, To: &to, ActorID: 10, ActorRole: domain.RoleOwner,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown salon", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetSalonBookings(ctx, &models.GetSalonBookingsRequest{
			SalonID: 999, ActorID: 10, ActorRole: domain.RoleOwner,
		})
		assert.ErrorIs(t, err, ErrSalonNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("client cancels own upcoming booking", func(t *testing.T) {
		env := newTestEnv(t)

		require.NoError(t, env.svc.Cancel(ctx, 1, 42, domain.RoleUser))

		stored := env.bookings.bookings[1]
		assert.True(t, stored.Lifecycle.IsDeleted())
		assert.Equal(t, int64(42), *stored.Lifecycle.DeletedBy)

		// Кеш слотов сброшен на дату бронирования в зоне салона
		require.Len(t, env.cache.invalidated, 1)
		assert.Equal(t, "2025-06-02", env.cache.invalidated[0])
	})

	t.Run("owner cancels manual block", func(t *testing.T) {
		env := newTestEnv(t)

		require.NoError(t, env.svc.Cancel(ctx, 3, 10, domain.RoleOwner))
		assert.True(t, env.bookings.bookings[3].Lifecycle.IsDeleted())
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.Cancel(ctx, 2, 42, domain.RoleUser)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("double cancel rejected", func(t *testing.T) {
		env := newTestEnv(t)

		require.NoError(t, env.svc.Cancel(ctx, 1, 42, domain.RoleUser))
		err := env.svc.Cancel(ctx, 1, 42, domain.RoleUser)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("foreign client denied", func(t *testing.T) {
		env := newTestEnv(t)

		err := env.svc.Cancel(ctx, 1, 99, domain.RoleUser)
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.False(t, env.bookings.bookings[1].Lifecycle.IsDeleted())
	})
}
