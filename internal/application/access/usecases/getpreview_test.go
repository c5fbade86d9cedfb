package usecases

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/shared/biztime"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/services/markdown"
)

func TestGetPreviewUseCase_DeniedIsTruncated(t *testing.T) {
	body := "# Market outlook\n\n" + strings.Repeat("Ünïcödé analysis paragraph. ", 40)
	item := newItem(t, 1, "ct_gated", premium(), inZone(vo.ZoneAnalysis, true), withPreview(50), withBody(body))

	repo := new(mockContentRepo)
	resolver := new(mockResolver)
	interest := new(mockInterestStore)
	repo.On("GetBySID", mock.Anything, "ct_gated").Return(item, nil)
	resolver.On("Resolve", mock.Anything, "vw_reader").Return(nil, nil)
	interest.On("Record", mock.Anything, "vw_reader", []vo.Zone{vo.ZoneAnalysis}).Return(nil).Once()

	uc := NewGetPreviewUseCase(repo, resolver, newEvaluator(), markdown.NewMarkdownService(), interest,
		biztime.NewFixedClock(testNow), logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), GetPreviewQuery{ViewerID: "vw_reader", ContentID: "ct_gated"})
	require.NoError(t, err)
	assert.False(t, result.Access.HasAccess)
	assert.Empty(t, result.HTML)
	assert.True(t, result.Truncated)
	assert.LessOrEqual(t, utf8.RuneCountInString(result.Text), 50)
	assert.True(t, strings.HasPrefix(result.Text, "Market outlook"))
	assert.NotContains(t, result.Text, "#")
	interest.AssertExpectations(t)
}

func TestGetPreviewUseCase_GrantedReturnsSanitizedHTML(t *testing.T) {
	body := "Hello **world**\n\n<script>alert(1)</script>"
	item := newItem(t, 1, "ct_free", withBody(body))

	repo := new(mockContentRepo)
	repo.On("GetBySID", mock.Anything, "ct_free").Return(item, nil)

	uc := NewGetPreviewUseCase(repo, new(mockResolver), newEvaluator(), markdown.NewMarkdownService(), nil,
		biztime.NewFixedClock(testNow), logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), GetPreviewQuery{ContentID: "ct_free"})
	require.NoError(t, err)
	assert.True(t, result.Access.HasAccess)
	assert.Contains(t, result.HTML, "<strong>world</strong>")
	assert.NotContains(t, result.HTML, "<script>")
	assert.Empty(t, result.Text)
	assert.False(t, result.Truncated)
}

func TestGetPreviewUseCase_RecordsInterestForAccessiblePreview(t *testing.T) {
	item := newItem(t, 1, "ct_news", inZone(vo.ZoneNews, false), withBody("Morning briefing"))

	repo := new(mockContentRepo)
	interest := new(mockInterestStore)
	repo.On("GetBySID", mock.Anything, "ct_news").Return(item, nil)
	interest.On("Record", mock.Anything, "vw_reader", []vo.Zone{vo.ZoneNews}).Return(nil).Once()

	uc := NewGetPreviewUseCase(repo, new(mockResolver), newEvaluator(), markdown.NewMarkdownService(), interest,
		biztime.NewFixedClock(testNow), logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), GetPreviewQuery{ViewerID: "vw_reader", ContentID: "ct_news"})
	require.NoError(t, err)
	assert.True(t, result.Access.HasAccess)
	interest.AssertExpectations(t)
}

func TestGetPreviewUseCase_ShortBodyNotTruncated(t *testing.T) {
	item := newItem(t, 1, "ct_gated", premium(), withBody("Short teaser"))

	repo := new(mockContentRepo)
	resolver := new(mockResolver)
	interest := new(mockInterestStore)
	repo.On("GetBySID", mock.Anything, "ct_gated").Return(item, nil)
	resolver.On("Resolve", mock.Anything, "vw_reader").Return(nil, assert.AnError)
	interest.On("Record", mock.Anything, "vw_reader", mock.Anything).Return(assert.AnError)

	uc := NewGetPreviewUseCase(repo, resolver, newEvaluator(), markdown.NewMarkdownService(), interest,
		biztime.NewFixedClock(testNow), logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), GetPreviewQuery{ViewerID: "vw_reader", ContentID: "ct_gated"})
	require.NoError(t, err, "interest and resolver failures are not surfaced")
	assert.False(t, result.Access.HasAccess)
	assert.Equal(t, "Short teaser", result.Text)
	assert.False(t, result.Truncated)
}
