// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is installed as the router's MethodNotAllowed handler. A
// request whose method the matched route does not serve gets 404 instead of
// chi's 405, so probing with wrong methods tells nothing about the routes.
// Parameterised patterns such as /api/sync/{namespace} are matched too.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		router.ServeHTTP(w, r)
	}
}
