package approve_reschedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	approveReschedule "github.com/m04kA/SMC-DetailingBooking/internal/usecase/approve_reschedule"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
)

type stubUseCase struct {
	err error
}

func (s *stubUseCase) Execute(_ context.Context, _ *approveReschedule.Request) (*approveReschedule.Response, error) {
	return nil, s.err
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: approveReschedule.ErrRequestNotFound, wantStatus: http.StatusNotFound},
		{name: "expired", err: approveReschedule.ErrRequestExpired, wantStatus: http.StatusConflict},
		{name: "not pending", err: approveReschedule.ErrRequestNotPending, wantStatus: http.StatusConflict},
		{name: "stale", err: approveReschedule.ErrStaleRequest, wantStatus: http.StatusConflict},
		{name: "slot full", err: approveReschedule.ErrSlotUnavailable, wantStatus: http.StatusConflict},
		{name: "slot missing", err: approveReschedule.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: approveReschedule.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.NewRouter()
			r.HandleFunc("/reschedule-requests/{requestId}/approve",
				NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()).Handle).Methods(http.MethodPost)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reschedule-requests/9/approve", strings.NewReader(`{"adminNotes":"ok"}`)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
