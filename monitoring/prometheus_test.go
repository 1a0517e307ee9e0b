package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAction(t *testing.T) {
	InitMetrics()
	InitMetrics()

	counter := walletMetrics.actionCount.With(prometheus.Labels{"action": "sign", "outcome": "success"})
	before := testutil.ToFloat64(counter)
	RecordAction(ActionSign, OutcomeSuccess, 10*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(metrics().verificationFailure)
	IncreaseVerificationFailure()
	assert.Equal(t, before+1, testutil.ToFloat64(walletMetrics.verificationFailure))

	lamports := testutil.ToFloat64(walletMetrics.lamportsTransferred)
	AddLamportsTransferred(1_500)
	assert.Equal(t, lamports+1_500, testutil.ToFloat64(walletMetrics.lamportsTransferred))
}

func TestRegisterMetrics(t *testing.T) {
	InitMetrics()
	RecordTimeToConfirmation(time.Second)

	mux := http.NewServeMux()
	RegisterMetrics(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "orion_time_to_confirmation_seconds")
}
