package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"lensfit-service/internal/catalog"
	"lensfit-service/internal/fileio"
	"lensfit-service/internal/lens/optics"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary
	validate = validator.New(validator.WithRequiredStructEnabled())
)

var errBadRequest = errors.New("bad request")

// readJSON декодирует тело и проверяет теги validate.
func readJSON(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("write json")
	}
}

// writeError сопоставляет ошибку со статусом ответа.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, catalog.ErrInvalidFrame):
		status = http.StatusBadRequest
	case errors.Is(err, fileio.ErrUnsupportedFile):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, optics.ErrUnknownMaterial):
		status = http.StatusUnprocessableEntity
	}

	ev := zerolog.Ctx(r.Context()).Warn()
	if status == http.StatusInternalServerError {
		ev = zerolog.Ctx(r.Context()).Error()
	}
	ev.Err(err).Int("status", status).Msg("request failed")

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal"
	}
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s=%q is not a number", errBadRequest, key, s)
	}
	return f, nil
}
