package dto

import (
	"time"

	"github.com/folio-inc/folio/internal/domain/access"
	"github.com/folio-inc/folio/internal/shared/errors"
)

type AccessDecisionDTO struct {
	HasAccess       bool       `json:"has_access"`
	Code            string     `json:"code"`
	Reason          string     `json:"reason"`
	RequiresUpgrade bool       `json:"requires_upgrade"`
	PreviewLength   int        `json:"preview_length,omitempty"`
	UpgradeURL      string     `json:"upgrade_url,omitempty"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
}

// ItemErrorDTO is a per-item failure inside a bulk response.
type ItemErrorDTO struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// BulkAccessResultDTO carries exactly one of Decision or Error.
type BulkAccessResultDTO struct {
	ContentID string             `json:"content_id"`
	Decision  *AccessDecisionDTO `json:"decision,omitempty"`
	Error     *ItemErrorDTO      `json:"error,omitempty"`
}

type PreviewDTO struct {
	ContentID string             `json:"content_id"`
	Title     string             `json:"title"`
	Access    *AccessDecisionDTO `json:"access"`
	// HTML is set when the viewer may read the full item, Text otherwise.
	HTML      string `json:"html,omitempty"`
	Text      string `json:"text,omitempty"`
	Truncated bool   `json:"truncated"`
}

type RecommendationDTO struct {
	ContentID   string     `json:"content_id"`
	Title       string     `json:"title"`
	Zones       []string   `json:"zones"`
	Score       float64    `json:"score"`
	Reason      string     `json:"reason"`
	UpgradeURL  string     `json:"upgrade_url"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
}

func ToAccessDecisionDTO(d access.Decision) *AccessDecisionDTO {
	return &AccessDecisionDTO{
		HasAccess:       d.HasAccess,
		Code:            string(d.Code),
		Reason:          d.Reason,
		RequiresUpgrade: d.RequiresUpgrade,
		PreviewLength:   d.PreviewLength,
		UpgradeURL:      d.UpgradeURL,
		ReleaseDate:     d.ReleaseDate,
	}
}

// ToItemErrorDTO hides non AppError details behind a generic message.
func ToItemErrorDTO(err error) *ItemErrorDTO {
	if appErr := errors.GetAppError(err); appErr != nil {
		return &ItemErrorDTO{Type: string(appErr.Type), Message: appErr.Message}
	}
	return &ItemErrorDTO{Type: string(errors.ErrorTypeInternal), Message: "failed to evaluate access"}
}
