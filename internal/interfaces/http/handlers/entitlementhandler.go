package handlers

import (
	"github.com/gin-gonic/gin"

	accessUsecases "github.com/folio-inc/folio/internal/application/access/usecases"
	"github.com/folio-inc/folio/internal/shared/id"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/utils"
)

// EntitlementHandler lets billing integrations drop a viewer's cached
// subscription after a plan change.
type EntitlementHandler struct {
	refreshUC refreshEntitlementUseCase
	logger    logger.Interface
}

func NewEntitlementHandler(refreshUC *accessUsecases.RefreshEntitlementUseCase, logger logger.Interface) *EntitlementHandler {
	return &EntitlementHandler{
		refreshUC: refreshUC,
		logger:    logger,
	}
}

func (h *EntitlementHandler) Refresh(c *gin.Context) {
	viewerID, err := utils.ParseSIDParam(c, "id", id.PrefixViewer, "viewer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.refreshUC.Execute(c.Request.Context(), viewerID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
