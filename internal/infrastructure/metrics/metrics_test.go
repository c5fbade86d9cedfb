package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorsRegistered(t *testing.T) {
	before := testutil.ToFloat64(Releases.WithLabelValues(OutcomeReleased))
	Releases.WithLabelValues(OutcomeReleased).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Releases.WithLabelValues(OutcomeReleased)))

	AccessDecisions.WithLabelValues("free_content").Inc()
	assert.GreaterOrEqual(t, testutil.CollectAndCount(AccessDecisions), 1)
}
