package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments exported by the API.
type Metrics struct {
	registry *prometheus.Registry

	DonationsRecorded *prometheus.CounterVec
	DonationAmount    *prometheus.CounterVec
	DonationsRejected *prometheus.CounterVec
	CampaignsCreated  prometheus.Counter
	CampaignsStopped  prometheus.Counter
	HTTPRequests      *prometheus.CounterVec
}

// NewMetrics builds a registry with the service collectors plus the
// standard Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DonationsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "donations_recorded_total",
			Help: "Donations successfully recorded, by payment method.",
		}, []string{"method"}),
		DonationAmount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "donations_amount_total",
			Help: "Total donated amount in whole currency units, by payment method.",
		}, []string{"method"}),
		DonationsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "donations_rejected_total",
			Help: "Donation attempts rejected before recording, by reason.",
		}, []string{"reason"}),
		CampaignsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "campaigns_created_total",
			Help: "Campaigns created.",
		}),
		CampaignsStopped: factory.NewCounter(prometheus.CounterOpts{
			Name: "campaigns_stopped_total",
			Help: "Campaigns stopped by an administrator.",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by method and status class.",
		}, []string{"method", "status"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
