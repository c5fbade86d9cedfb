package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	releaseUsecases "github.com/folio-inc/folio/internal/application/release/usecases"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/utils"
)

type ReleaseHandler struct {
	scheduleReleaseUC      scheduleReleaseUseCase
	scheduleReleaseBatchUC scheduleReleaseBatchUseCase
	sweepUC                releaseSweepUseCase
	getScheduledUC         getScheduledContentUseCase
	logger                 logger.Interface
}

func NewReleaseHandler(
	scheduleReleaseUC *releaseUsecases.ScheduleReleaseUseCase,
	scheduleReleaseBatchUC *releaseUsecases.ScheduleReleaseBatchUseCase,
	sweepUC *releaseUsecases.ProcessDueReleasesUseCase,
	getScheduledUC *releaseUsecases.GetScheduledContentUseCase,
	logger logger.Interface,
) *ReleaseHandler {
	return &ReleaseHandler{
		scheduleReleaseUC:      scheduleReleaseUC,
		scheduleReleaseBatchUC: scheduleReleaseBatchUC,
		sweepUC:                sweepUC,
		getScheduledUC:         getScheduledUC,
		logger:                 logger,
	}
}

type ScheduleReleaseRequest struct {
	ReleaseDate time.Time `json:"release_date" binding:"required"`
}

type ScheduleReleaseBatchRequest struct {
	ContentIDs  []string  `json:"content_ids" binding:"required,min=1"`
	ReleaseDate time.Time `json:"release_date" binding:"required"`
}

type ScheduledContentQuery struct {
	Limit int `form:"limit" json:"limit" binding:"omitempty,min=1"`
}

func (h *ReleaseHandler) ScheduleRelease(c *gin.Context) {
	var uri ContentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ScheduleReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for schedule release", "content_id", uri.ID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.scheduleReleaseUC.Execute(c.Request.Context(), releaseUsecases.ScheduleReleaseCommand{
		ContentID:   uri.ID,
		ReleaseDate: req.ReleaseDate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Release scheduled", result)
}

func (h *ReleaseHandler) ScheduleReleaseBatch(c *gin.Context) {
	var req ScheduleReleaseBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for batch schedule release", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.scheduleReleaseBatchUC.Execute(c.Request.Context(), releaseUsecases.ScheduleReleaseBatchCommand{
		ContentIDs:  req.ContentIDs,
		ReleaseDate: req.ReleaseDate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RunSweep triggers the same sweep the scheduler runs.
func (h *ReleaseHandler) RunSweep(c *gin.Context) {
	result, err := h.sweepUC.Run(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ReleaseHandler) GetScheduled(c *gin.Context) {
	var query ScheduledContentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getScheduledUC.Execute(c.Request.Context(), query.Limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
