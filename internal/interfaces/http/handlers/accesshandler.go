package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accessUsecases "github.com/folio-inc/folio/internal/application/access/usecases"
	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/interfaces/http/middleware"
	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/utils"
)

type AccessHandler struct {
	checkAccessUC        checkAccessUseCase
	checkAccessBulkUC    checkAccessBulkUseCase
	getPreviewUC         getPreviewUseCase
	getRecommendationsUC getRecommendationsUseCase
	logger               logger.Interface
}

func NewAccessHandler(
	checkAccessUC *accessUsecases.CheckAccessUseCase,
	checkAccessBulkUC *accessUsecases.CheckAccessBulkUseCase,
	getPreviewUC *accessUsecases.GetPreviewUseCase,
	getRecommendationsUC *accessUsecases.GetRecommendationsUseCase,
	logger logger.Interface,
) *AccessHandler {
	return &AccessHandler{
		checkAccessUC:        checkAccessUC,
		checkAccessBulkUC:    checkAccessBulkUC,
		getPreviewUC:         getPreviewUC,
		getRecommendationsUC: getRecommendationsUC,
		logger:               logger,
	}
}

// ContentURI binds the :id segment of content routes.
type ContentURI struct {
	ID string `uri:"id" json:"id" binding:"required,contentid"`
}

type CheckAccessBulkRequest struct {
	ContentIDs []string `json:"content_ids" binding:"required,min=1"`
}

type RecommendationsQuery struct {
	Limit int      `form:"limit" json:"limit" binding:"omitempty,min=1"`
	Zones []string `form:"zone" json:"zone" binding:"omitempty,dive,zone"`
}

func (h *AccessHandler) CheckAccess(c *gin.Context) {
	var uri ContentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.checkAccessUC.Execute(c.Request.Context(), accessUsecases.CheckAccessQuery{
		ViewerID:  middleware.ViewerID(c),
		ContentID: uri.ID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CheckAccessBulk answers 200 even when individual ids fail; each entry
// carries either a decision or an error.
func (h *AccessHandler) CheckAccessBulk(c *gin.Context) {
	var req CheckAccessBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for bulk access check", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.checkAccessBulkUC.Execute(c.Request.Context(), accessUsecases.CheckAccessBulkQuery{
		ViewerID:   middleware.ViewerID(c),
		ContentIDs: req.ContentIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AccessHandler) GetPreview(c *gin.Context) {
	var uri ContentURI
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPreviewUC.Execute(c.Request.Context(), accessUsecases.GetPreviewQuery{
		ViewerID:  middleware.ViewerID(c),
		ContentID: uri.ID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AccessHandler) GetRecommendations(c *gin.Context) {
	var query RecommendationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	zones, err := vo.ParseZones(query.Zones)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid zone", err.Error()))
		return
	}

	result, err := h.getRecommendationsUC.Execute(c.Request.Context(), accessUsecases.GetRecommendationsQuery{
		ViewerID: middleware.ViewerID(c),
		Limit:    query.Limit,
		Zones:    zones,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
