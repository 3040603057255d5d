package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSync(t *testing.T) {
	before := testutil.ToFloat64(SyncTotal.WithLabelValues("success"))
	RecordSync("success", 0.25)
	assert.Equal(t, before+1, testutil.ToFloat64(SyncTotal.WithLabelValues("success")))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))
	RecordHTTPRequest("GET", "/health", 200)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")))
}

func TestRecordTokenRefresh(t *testing.T) {
	before := testutil.ToFloat64(TokenRefreshTotal.WithLabelValues("failure"))
	RecordTokenRefresh("failure")
	assert.Equal(t, before+1, testutil.ToFloat64(TokenRefreshTotal.WithLabelValues("failure")))
}
