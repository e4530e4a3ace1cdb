package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"crm-backend/internal/auth"
	"crm-backend/internal/middleware"
	"crm-backend/internal/repository"
	"crm-backend/internal/utils"
)

// requireIdentity fetches the identity attached by the auth middleware and
// writes a 401 if it is missing
func requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "user not authenticated")
		return auth.Identity{}, false
	}
	return identity, true
}

// parsePage reads page and limit query parameters. Non-positive values fall
// back to the defaults; non-numeric values are rejected.
func parsePage(r *http.Request) (repository.Page, error) {
	page, err := queryInt(r, "page")
	if err != nil {
		return repository.Page{}, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return repository.Page{}, err
	}
	return repository.NewPage(page, limit), nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidParam(key)
	}
	return value, nil
}

func errInvalidParam(key string) error {
	return fmt.Errorf("invalid %s parameter", key)
}

// parseDate accepts dates as YYYY-MM-DD or full RFC3339 timestamps
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
}

// writeRepoError maps repository failures to HTTP responses. Not-found stays
// not-found whether the row is missing or owned by someone else; anything
// unexpected is logged and reported as a sanitized 500.
func writeRepoError(w http.ResponseWriter, logger *zap.Logger, err error, notFoundMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusNotFound, notFoundMsg)
		return
	}
	logger.Error("storage failure", zap.Error(err))
	utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error")
}
