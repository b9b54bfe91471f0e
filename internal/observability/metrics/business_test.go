package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCacheLookup(t *testing.T) {
	before := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("hit"))
	RecordCacheLookup("hit")
	after := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("hit"))
	assert.Equal(t, before+1, after)
}

func TestRecordFetchCycle(t *testing.T) {
	beforeOK := testutil.ToFloat64(FetchCyclesTotal.WithLabelValues("success"))
	beforeFail := testutil.ToFloat64(FetchCyclesTotal.WithLabelValues("failure"))

	RecordFetchCycle(true)
	RecordFetchCycle(false)

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(FetchCyclesTotal.WithLabelValues("success")))
	assert.Equal(t, beforeFail+1, testutil.ToFloat64(FetchCyclesTotal.WithLabelValues("failure")))
}

func TestRecordSourceFetch(t *testing.T) {
	before := testutil.ToFloat64(ArticlesFetchedTotal.WithLabelValues("test-source"))
	RecordSourceFetch("test-source", 150*time.Millisecond, 3)
	assert.Equal(t, before+3, testutil.ToFloat64(ArticlesFetchedTotal.WithLabelValues("test-source")))

	// Histogram observation count is visible through the collected metric.
	var metric dto.Metric
	hist, err := SourceFetchDuration.GetMetricWithLabelValues("test-source")
	require.NoError(t, err)
	require.NoError(t, hist.(interface{ Write(*dto.Metric) error }).Write(&metric))
	assert.GreaterOrEqual(t, metric.GetHistogram().GetSampleCount(), uint64(1))
}

func TestRecordSourceFetchError(t *testing.T) {
	before := testutil.ToFloat64(SourceFetchErrorsTotal.WithLabelValues("s1", "transport"))
	RecordSourceFetchError("s1", "transport")
	assert.Equal(t, before+1, testutil.ToFloat64(SourceFetchErrorsTotal.WithLabelValues("s1", "transport")))
}

func TestUpdateArticlesServed(t *testing.T) {
	UpdateArticlesServed(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(ArticlesServed))
}
