package api

import (
	"database/sql"
	"errors"
	"net/http"

	"launchboard/internal/domain/identity"
	"launchboard/internal/domain/product"
	"launchboard/internal/domain/user"
	"launchboard/internal/domain/vote"
	"launchboard/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		slogLogger.Error("request failed", "error", appErr.Error(), "cause", appErr.Unwrap())
	}
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("not_found", "resource not found", err)
	case errors.Is(err, identity.ErrNotSignedIn):
		return apperr.Unauthorized("not_signed_in", "you must be signed in to vote", err)
	case errors.Is(err, identity.ErrNoOrganization):
		return apperr.Unauthorized("no_organization", "you must be a member of an organization to vote", err)
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "invalid credentials", err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.BadRequest("email_taken", "email already taken", err)
	case errors.Is(err, product.ErrNotFound):
		return apperr.NotFound("product_not_found", "product not found", err)
	case errors.Is(err, product.ErrSlugTaken):
		return apperr.Conflict("slug_taken", "slug already taken", err)
	case errors.Is(err, product.ErrInvalidStatus):
		return apperr.BadRequest("invalid_status", "invalid product status", err)
	case errors.Is(err, product.ErrValidation):
		return apperr.BadRequest("invalid_input", err.Error(), err)
	case errors.Is(err, vote.ErrProductNotFound):
		return apperr.NotFound("product_not_found", "product not found", err)
	case errors.Is(err, vote.ErrInvalidDirection):
		return apperr.BadRequest("invalid_direction", "direction must be \"up\" or \"down\"", err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
