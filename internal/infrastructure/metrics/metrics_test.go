package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bakery-erp/internal/infrastructure/metrics"
)

func TestCollector_CuentaEventos(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)

	c.CacheHit("balances")
	c.CacheHit("balances")
	c.CacheMiss("balances")
	c.FetchError("batches")
	c.ObserveRequest("GET", "/inventory/stocks", 200, 120*time.Millisecond)

	n, err := testutil.GatherAndCount(reg,
		"bakery_erp_inventory_cache_lookups_total",
		"bakery_erp_inventory_cache_fetch_errors_total",
		"bakery_erp_api_requests_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, n, "series: hit, miss, error, request")
}

func TestNew_RegistroDuplicadoFalla(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)
	_, err = metrics.New(reg)
	assert.Error(t, err)
}
