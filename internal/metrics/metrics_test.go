package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestScoreSubmissionsCounter(t *testing.T) {
	before := testutil.ToFloat64(ScoreSubmissionsTotal.WithLabelValues(OutcomeRecorded))
	ScoreSubmissionsTotal.WithLabelValues(OutcomeRecorded).Inc()
	after := testutil.ToFloat64(ScoreSubmissionsTotal.WithLabelValues(OutcomeRecorded))
	assert.InDelta(t, before+1, after, 0.0001)
}

func TestMetricsAreRegistered(t *testing.T) {
	LoginsTotal.WithLabelValues(ResultSuccess).Add(0)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(LoginsTotal), 1)
}
