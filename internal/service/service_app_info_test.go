package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-app-state-sync/internal/config"
	"github.com/MKhiriev/go-app-state-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppInfoService(t *testing.T) {
	cases := []struct {
		name    string
		version string
		want    string
		wantErr error
	}{
		{name: "release", version: "1.4.0", want: "1.4.0"},
		{name: "prerelease with build meta", version: "v2.0.0-rc.1+g1a2b3c", want: "v2.0.0-rc.1+g1a2b3c"},
		{name: "padded", version: "  1.0.1\n", want: "1.0.1"},
		{name: "missing", version: "", wantErr: ErrVersionIsNotSpecified},
		{name: "blank", version: " \t", wantErr: ErrVersionIsNotSpecified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.ServerApp{Version: tc.version}, logger.Nop())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)

			// контекст не используется, отменённый тоже подходит
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			assert.Equal(t, tc.want, svc.GetAppVersion(ctx))
		})
	}
}
