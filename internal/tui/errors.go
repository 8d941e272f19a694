// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-app-state-sync/internal/service"
)

// humanizeSyncError turns the failures a pull usually hits into a short
// status line.
func humanizeSyncError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, service.ErrNoAppStateKey) {
		return "Нет ключа синхронизации, дождитесь его от основного устройства"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или сервер недоступен"
	}

	return err.Error()
}
