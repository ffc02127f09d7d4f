package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error

	gotReq *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(uc GetAvailableSlotsUseCase) *mux.Router {
	r := mux.NewRouter()
	h := NewHandler(uc, nopLogger{})
	r.HandleFunc("/api/v1/salons/{salonId}/slots", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
		uc := &fakeUseCase{resp: &getAvailableSlots.Response{
			Date:      date,
			SalonID:   1,
			ServiceID: 100,
			Slots: []getAvailableSlots.Slot{
				{StartsAt: time.Date(2025, 6, 2, 6, 0, 0, 0, time.UTC), StartTime: "09:00", DurationMinutes: 30},
				{StartsAt: time.Date(2025, 6, 2, 6, 30, 0, 0, time.UTC), StartTime: "09:30", DurationMinutes: 30},
			},
		}}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/slots?serviceId=100&date=2025-06-02", nil)
		rec := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body AvailableSlotsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "2025-06-02", body.Date)
		assert.Equal(t, int64(1), body.SalonID)
		assert.Equal(t, int64(100), body.ServiceID)
		require.Len(t, body.Slots, 2)
		assert.Equal(t, "09:00", body.Slots[0].StartTime)
		assert.Equal(t, 30, body.Slots[0].DurationMinutes)

		// Запрос use case собран из пути и query-параметров
		require.NotNil(t, uc.gotReq)
		assert.Equal(t, int64(1), uc.gotReq.SalonID)
		assert.Equal(t, int64(100), uc.gotReq.ServiceID)
		assert.Equal(t, date, uc.gotReq.Date)
	})

	t.Run("missing service id", func(t *testing.T) {
		uc := &fakeUseCase{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/slots?date=2025-06-02", nil)
		rec := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, uc.gotReq)
	})

	t.Run("bad date format", func(t *testing.T) {
		uc := &fakeUseCase{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/slots?serviceId=100&date=02.06.2025", nil)
		rec := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad salon id", func(t *testing.T) {
		uc := &fakeUseCase{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/abc/slots?serviceId=100&date=2025-06-02", nil)
		rec := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("salon not found maps to 404", func(t *testing.T) {
		uc := &fakeUseCase{err: getAvailableSlots.ErrSalonNotFound}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/slots?serviceId=100&date=2025-06-02", nil)
		rec := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("service not found maps to 404", func(t *testing.T) {
		uc := &fakeUseCase{err: getAvailableSlots.ErrServiceNotFound}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/slots?serviceId=100&date=2025-06-02", nil)
		rec := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("internal error maps to 500", func(t *testing.T) {
		uc := &fakeUseCase{err: getAvailableSlots.ErrInternal}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/slots?serviceId=100&date=2025-06-02", nil)
		rec := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
