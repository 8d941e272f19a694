package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-app-state-sync/internal/service"
	"github.com/MKhiriev/go-app-state-sync/models"
)

func TestRegisterDevice(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(th *testHandler)
		wantStatus int
		wantHeader string
	}{
		{
			name: "token in Authorization header",
			body: `{"device_id":"phone"}`,
			setup: func(th *testHandler) {
				th.auth.EXPECT().RegisterDevice(gomock.Any(), "phone").
					Return(models.Token{SignedString: "signed", DeviceID: "phone"}, nil)
			},
			wantStatus: http.StatusOK,
			wantHeader: "Bearer signed",
		},
		{
			name:       "invalid JSON",
			body:       `{"device_id":`,
			setup:      func(th *testHandler) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "empty device id",
			body: `{"device_id":""}`,
			setup: func(th *testHandler) {
				th.auth.EXPECT().RegisterDevice(gomock.Any(), "").
					Return(models.Token{}, service.ErrEmptyDeviceID)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "token creation failed",
			body: `{"device_id":"phone"}`,
			setup: func(th *testHandler) {
				th.auth.EXPECT().RegisterDevice(gomock.Any(), "phone").
					Return(models.Token{}, fmt.Errorf("%w: no key", service.ErrTokenCreationFailed))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler(t, "")
			tt.setup(th)

			req := httptest.NewRequest(http.MethodPost, "/api/devices", strings.NewReader(tt.body))
			rr := th.serve(req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantHeader, rr.Header().Get("Authorization"))
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, tt.body, rr.Body.String())
			}
		})
	}
}
