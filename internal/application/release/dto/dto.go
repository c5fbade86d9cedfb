package dto

import (
	"time"

	"github.com/folio-inc/folio/internal/domain/content"
	"github.com/folio-inc/folio/internal/shared/biztime"
)

type ScheduleResultDTO struct {
	ContentID   string    `json:"content_id"`
	ReleaseDate time.Time `json:"release_date"`
}

// ScheduleBatchResultDTO reports how many items were scheduled and which ids
// were not.
type ScheduleBatchResultDTO struct {
	Successful int      `json:"successful"`
	Failed     []string `json:"failed"`
}

type ReleaseErrorDTO struct {
	ContentID string `json:"content_id"`
	Error     string `json:"error"`
}

type SweepResultDTO struct {
	ReleasedCount int               `json:"released_count"`
	Errors        []ReleaseErrorDTO `json:"errors"`
}

type ScheduledContentDTO struct {
	ContentID        string    `json:"content_id"`
	Title            string    `json:"title"`
	ReleaseDate      time.Time `json:"release_date"`
	DaysUntilRelease int       `json:"days_until_release"`
}

func ToScheduledContentDTO(item *content.ContentItem, now time.Time) ScheduledContentDTO {
	result := ScheduledContentDTO{
		ContentID: item.SID(),
		Title:     item.Title(),
	}
	if rd := item.ReleaseDate(); rd != nil {
		result.ReleaseDate = *rd
		result.DaysUntilRelease = biztime.DaysUntil(now, *rd)
	}
	return result
}
