package catalog

import "github.com/prometheus/client_golang/prometheus"

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	products prometheus.Gauge
	uploads  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		products: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Products currently in the catalog",
		}),
		uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_image_uploads_total",
				Help: "Image uploads by outcome",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.products, m.uploads)
	return m
}

func (m *Metrics) setProducts(n int) {
	if m == nil {
		return
	}
	m.products.Set(float64(n))
}

func (m *Metrics) upload(result string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(result).Inc()
}
