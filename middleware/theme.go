package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrEthical07/goConsole/preference"
)

// Theme API routes served by [ThemeHandler].
const (
	ThemePath       = "/admin/api/theme"
	ThemeTogglePath = "/admin/api/theme/toggle"
)

const maxThemeBody = 1 << 10

// ThemeService is satisfied by *goConsole.Console.
type ThemeService interface {
	Theme(ctx context.Context) preference.Theme
	SetTheme(ctx context.Context, t preference.Theme) error
	ToggleTheme(ctx context.Context) (preference.Theme, error)
}

type themeBody struct {
	Theme string `json:"theme"`
}

type errorBody struct {
	Error string `json:"error"`
	Theme string `json:"theme,omitempty"`
}

// ThemeHandler serves the theme preference:
//
//	GET  /admin/api/theme         -> {"theme":"light"}
//	PUT  /admin/api/theme         <- {"theme":"dark"}
//	POST /admin/api/theme/toggle  -> {"theme":"dark"}
//
// An unknown theme is 400. A storage failure is 503 and the body carries the
// unchanged current theme.
func ThemeHandler(svc ThemeService) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+ThemePath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, themeBody{Theme: svc.Theme(r.Context()).String()})
	})

	mux.HandleFunc("PUT "+ThemePath, func(w http.ResponseWriter, r *http.Request) {
		var body themeBody
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxThemeBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
			return
		}
		t, err := preference.ParseTheme(body.Theme)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		if err := svc.SetTheme(r.Context(), t); err != nil {
			writeThemeError(w, r, svc, err)
			return
		}
		writeJSON(w, http.StatusOK, themeBody{Theme: t.String()})
	})

	mux.HandleFunc("POST "+ThemeTogglePath, func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.ToggleTheme(r.Context())
		if err != nil {
			writeThemeError(w, r, svc, err)
			return
		}
		writeJSON(w, http.StatusOK, themeBody{Theme: t.String()})
	})

	return mux
}

func writeThemeError(w http.ResponseWriter, r *http.Request, svc ThemeService, err error) {
	switch {
	case errors.Is(err, preference.ErrInvalidTheme):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, preference.ErrStorageUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{
			Error: "theme storage unavailable",
			Theme: svc.Theme(r.Context()).String(),
		})
	default:
		slog.ErrorContext(r.Context(), "theme update failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write json response", "error", err)
	}
}
