// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Logging

WithLogging wraps a handler with structured request logging via slog.
Each request is tagged with a random request id so start/completion
lines correlate under concurrent load:

	mux.HandleFunc("POST /register", middleware.WithLogging(h.Register))

# JSON Helpers

JSONResponse and ErrorResponse write JSON bodies with the right
Content-Type; ParseJSONBody decodes a request body:

	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

ErrorResponse bodies carry only the status text and a short message;
store and driver detail stays in the server logs.

# CORS

CORS wraps the whole mux so browser games on other origins can call
the API. Applied once in main:

	server := http.Server{Handler: middleware.CORS(mux)}
*/
package middleware
