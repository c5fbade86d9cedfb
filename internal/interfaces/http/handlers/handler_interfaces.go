package handlers

import (
	"context"

	accessdto "github.com/folio-inc/folio/internal/application/access/dto"
	accessUsecases "github.com/folio-inc/folio/internal/application/access/usecases"
	releasedto "github.com/folio-inc/folio/internal/application/release/dto"
	releaseUsecases "github.com/folio-inc/folio/internal/application/release/usecases"
)

// Use case interfaces for AccessHandler

type checkAccessUseCase interface {
	Execute(ctx context.Context, query accessUsecases.CheckAccessQuery) (*accessdto.AccessDecisionDTO, error)
}

type checkAccessBulkUseCase interface {
	Execute(ctx context.Context, query accessUsecases.CheckAccessBulkQuery) ([]accessdto.BulkAccessResultDTO, error)
}

type getPreviewUseCase interface {
	Execute(ctx context.Context, query accessUsecases.GetPreviewQuery) (*accessdto.PreviewDTO, error)
}

type getRecommendationsUseCase interface {
	Execute(ctx context.Context, query accessUsecases.GetRecommendationsQuery) ([]accessdto.RecommendationDTO, error)
}

type refreshEntitlementUseCase interface {
	Execute(ctx context.Context, viewerID string) error
}

// Use case interfaces for ReleaseHandler

type scheduleReleaseUseCase interface {
	Execute(ctx context.Context, cmd releaseUsecases.ScheduleReleaseCommand) (*releasedto.ScheduleResultDTO, error)
}

type scheduleReleaseBatchUseCase interface {
	Execute(ctx context.Context, cmd releaseUsecases.ScheduleReleaseBatchCommand) (*releasedto.ScheduleBatchResultDTO, error)
}

type releaseSweepUseCase interface {
	Run(ctx context.Context) (*releasedto.SweepResultDTO, error)
}

type getScheduledContentUseCase interface {
	Execute(ctx context.Context, limit int) ([]releasedto.ScheduledContentDTO, error)
}
