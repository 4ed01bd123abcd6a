package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/plannora/appointments-api/internal/domain/schedule"
)

// FromDomain maps the typed scheduling errors onto HTTP responses so every
// handler reports failures the same way. Unknown errors become a 500 with a
// generic code so internals never leak to clients.
func FromDomain(c *gin.Context, err error) {
	var verr *schedule.ValidationError
	if errors.As(err, &verr) {
		BadRequest(c, "validation_failed", verr.Error())
		return
	}

	var rerr *schedule.ReferenceError
	if errors.As(err, &rerr) {
		if rerr.Reason == "not found" {
			NotFound(c, rerr.Entity+"_not_found", rerr.Error())
			return
		}
		BadRequest(c, "invalid_"+rerr.Entity, rerr.Error())
		return
	}

	var cerr *schedule.ConflictError
	if errors.As(err, &cerr) {
		Conflict(c, "slot_unavailable", cerr.Error(), cerr.Result)
		return
	}

	var serr *schedule.StateTransitionError
	if errors.As(err, &serr) {
		BadRequest(c, "invalid_state", serr.Error())
		return
	}

	var xerr *schedule.ExhaustionError
	if errors.As(err, &xerr) {
		Internal(c, "hash_exhausted", xerr.Error())
		return
	}

	if errors.Is(err, schedule.ErrNotFound) {
		NotFound(c, "not_found", "Record not found.")
		return
	}

	Internal(c, "internal_error", "Unexpected error.")
}
