package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-app-state-sync/internal/app"
	"github.com/MKhiriev/go-app-state-sync/internal/service"
)

type errorStatus struct {
	code    codes.Code
	message string
}

var errorStatuses = map[error]errorStatus{
	service.ErrInvalidQuery:            {codes.InvalidArgument, app.MsgInvalidQuery},
	service.ErrUnknownNamespace:        {codes.InvalidArgument, app.MsgUnknownNamespace},
	service.ErrEmptyDeviceID:           {codes.InvalidArgument, app.MsgEmptyDeviceID},
	service.ErrTokenIsExpired:          {codes.Unauthenticated, app.MsgTokenIsExpired},
	service.ErrTokenIsExpiredOrInvalid: {codes.Unauthenticated, app.MsgTokenIsExpiredOrInvalid},
	service.ErrBlobNotFound:            {codes.NotFound, app.MsgBlobNotFound},
	service.ErrTokenCreationFailed:     {codes.Internal, app.MsgTokenCreationFailed},
}

// statusFromError maps a service error to the gRPC status the client
// adapter understands.
func statusFromError(err error) error {
	for target, st := range errorStatuses {
		if errors.Is(err, target) {
			return status.Error(st.code, st.message)
		}
	}
	return status.Error(codes.Internal, app.MsgInternalServerError)
}
