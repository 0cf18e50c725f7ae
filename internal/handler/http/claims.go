package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

var errMissingClaim = errors.New("required claim missing from token")

// companyIDFromRequest extracts the tenant id from the verified JWT. The
// services take it as an explicit argument, never from ambient state.
func companyIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", errMissingClaim
	}
	return companyID, nil
}

func userIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errMissingClaim
	}
	return userID, nil
}

// uuidParam reads a path parameter and rejects anything that does not parse
// as a UUID before it reaches the database layer, where it would otherwise
// surface as a query error.
func uuidParam(r *http.Request, name string) (string, bool) {
	v := chi.URLParam(r, name)
	if _, err := uuid.Parse(v); err != nil {
		return "", false
	}
	return v, true
}
