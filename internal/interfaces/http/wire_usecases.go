package http

import (
	accessUsecases "github.com/folio-inc/folio/internal/application/access/usecases"
	releaseUsecases "github.com/folio-inc/folio/internal/application/release/usecases"
	"github.com/folio-inc/folio/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Access
	checkAccessUC        *accessUsecases.CheckAccessUseCase
	checkAccessBulkUC    *accessUsecases.CheckAccessBulkUseCase
	getPreviewUC         *accessUsecases.GetPreviewUseCase
	getRecommendationsUC *accessUsecases.GetRecommendationsUseCase
	refreshEntitlementUC *accessUsecases.RefreshEntitlementUseCase

	// Release
	scheduleReleaseUC      *releaseUsecases.ScheduleReleaseUseCase
	scheduleReleaseBatchUC *releaseUsecases.ScheduleReleaseBatchUseCase
	processDueReleasesUC   *releaseUsecases.ProcessDueReleasesUseCase
	getScheduledContentUC  *releaseUsecases.GetScheduledContentUseCase
}

func (c *Container) initUseCases() {
	cfg := c.cfg
	log := c.log
	repos := c.repos

	// a nil *ZoneInterestStore must not become a non-nil interface
	var interest accessUsecases.InterestStore
	if c.interestStore != nil {
		interest = c.interestStore
	}

	ucs := &allUseCases{}

	ucs.checkAccessUC = accessUsecases.NewCheckAccessUseCase(
		repos.contentRepo, c.resolver, c.evaluator, c.clock, log,
	)
	ucs.checkAccessBulkUC = accessUsecases.NewCheckAccessBulkUseCase(
		repos.contentRepo, c.resolver, c.evaluator, c.clock, cfg.Access.BulkLimit, log,
	)
	ucs.getPreviewUC = accessUsecases.NewGetPreviewUseCase(
		repos.contentRepo, c.resolver, c.evaluator, markdown.NewMarkdownService(), interest, c.clock, log,
	)
	ucs.getRecommendationsUC = accessUsecases.NewGetRecommendationsUseCase(
		repos.contentRepo, c.resolver, c.evaluator, interest, c.clock, log,
	)
	ucs.refreshEntitlementUC = accessUsecases.NewRefreshEntitlementUseCase(c.resolver, log)

	ucs.scheduleReleaseUC = releaseUsecases.NewScheduleReleaseUseCase(repos.contentRepo, c.clock, log)
	ucs.scheduleReleaseBatchUC = releaseUsecases.NewScheduleReleaseBatchUseCase(
		ucs.scheduleReleaseUC, cfg.Release.BatchScheduleLimit, log,
	)
	ucs.processDueReleasesUC = releaseUsecases.NewProcessDueReleasesUseCase(
		repos.contentRepo, c.clock, cfg.Release.BatchSize, cfg.Release.Concurrency, log,
	)
	ucs.getScheduledContentUC = releaseUsecases.NewGetScheduledContentUseCase(repos.contentRepo, c.clock, log)

	c.ucs = ucs
}
