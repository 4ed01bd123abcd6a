package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/httperr"
	"github.com/plannora/appointments-api/internal/httpresp"
	ucBlockedPeriod "github.com/plannora/appointments-api/internal/usecase/blockedperiod"
)

type BlockedPeriodHandler struct {
	repo     schedule.BlockedPeriodRepository
	saveUC   *ucBlockedPeriod.SaveBlockedPeriod
	deleteUC *ucBlockedPeriod.DeleteBlockedPeriod
}

func NewBlockedPeriodHandler(
	repo schedule.BlockedPeriodRepository,
	saveUC *ucBlockedPeriod.SaveBlockedPeriod,
	deleteUC *ucBlockedPeriod.DeleteBlockedPeriod,
) *BlockedPeriodHandler {
	return &BlockedPeriodHandler{
		repo:     repo,
		saveUC:   saveUC,
		deleteUC: deleteUC,
	}
}

type BlockedPeriodRequest struct {
	Name  string    `json:"name" binding:"required"`
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
	Notes string    `json:"notes"`
}

func (h *BlockedPeriodHandler) List(c *gin.Context) {
	periods, err := h.repo.ListBlockedPeriods(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "list_failed", "Failed to list blocked periods.")
		return
	}
	httpresp.List(c, periods)
}

func (h *BlockedPeriodHandler) Create(c *gin.Context) {
	var req BlockedPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	bp, err := h.saveUC.Execute(c.Request.Context(), ucBlockedPeriod.SaveInput{
		Name:  req.Name,
		Start: req.Start,
		End:   req.End,
		Notes: req.Notes,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.Created(c, bp)
}

func (h *BlockedPeriodHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid blocked period id.")
		return
	}

	var req BlockedPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	bp, err := h.saveUC.Execute(c.Request.Context(), ucBlockedPeriod.SaveInput{
		ID:    id,
		Name:  req.Name,
		Start: req.Start,
		End:   req.End,
		Notes: req.Notes,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, bp)
}

func (h *BlockedPeriodHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid blocked period id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.Status(204)
}

// Days reports, for each calendar day in [from, to], whether it is touched
// by a blocked period and whether it is fully blocked. Calendars use this to
// shade days without fetching every period.
func (h *BlockedPeriodHandler) Days(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		httperr.BadRequest(c, "missing_from", "Query parameter 'from' is required.")
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		httperr.BadRequest(c, "missing_to", "Query parameter 'to' is required.")
		return
	}
	if to.Before(from) {
		httperr.BadRequest(c, "invalid_range", "'to' must not be before 'from'.")
		return
	}

	type dayStatus struct {
		Date         string `json:"date"`
		Touched      bool   `json:"touched"`
		FullyBlocked bool   `json:"fully_blocked"`
	}

	index := schedule.NewBlockedPeriodIndex(h.repo)

	var days []dayStatus
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		touched, err := index.IsDateTouched(c.Request.Context(), day)
		if err != nil {
			httperr.Internal(c, "days_failed", "Failed to inspect blocked days.")
			return
		}
		full := false
		if touched {
			full, err = index.IsDateFullyBlocked(c.Request.Context(), day)
			if err != nil {
				httperr.Internal(c, "days_failed", "Failed to inspect blocked days.")
				return
			}
		}
		days = append(days, dayStatus{
			Date:         day.Format("2006-01-02"),
			Touched:      touched,
			FullyBlocked: full,
		})
	}

	httpresp.List(c, days)
}
