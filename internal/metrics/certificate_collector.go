package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"certbook/internal/certs"
	"certbook/internal/store"
)

const expirySoonWindowDays int = 30

var (
	certificatesLastFetchDesc = prometheus.NewDesc("certbook_certificates_last_fetch_timestamp_seconds", "Timestamp of last successful certificates fetch", nil, nil)
	certificatesTotalDesc     = prometheus.NewDesc("certbook_certificates_total", "Total certificates grouped by status", []string{"status"}, nil)
	expiredCountDesc          = prometheus.NewDesc("certbook_certificates_expired_count", "Number of expired certificates", nil, nil)
	expiresInDesc             = prometheus.NewDesc("certbook_certificate_expires_in_seconds", "Seconds until certificate expiration (zero when expired)", []string{"id", "domain"}, nil)
	expiresSoonCountDesc      = prometheus.NewDesc("certbook_certificates_expires_soon_count", "Number of certificates expiring soon within threshold window", nil, nil)
	expiryTimestampDesc       = prometheus.NewDesc("certbook_certificate_expiry_timestamp_seconds", "Certificate expiration timestamp in seconds since epoch", []string{"id", "domain"}, nil)
	lastScrapeSuccessDesc     = prometheus.NewDesc("certbook_certificate_exporter_last_scrape_success", "Whether the last scrape succeeded (1) or failed (0)", nil, nil)
	storeConnectedDesc        = prometheus.NewDesc("certbook_store_connected", "Document store connection status (1=connected,0=disconnected)", nil, nil)
)

type certificateCollector struct {
	store            store.Store
	expirySoonWindow time.Duration
	now              func() time.Time
}

// NewCertificateCollector returns a Prometheus collector exposing certificate inventory and expiry status.
func NewCertificateCollector(st store.Store) prometheus.Collector {
	return &certificateCollector{
		store:            st,
		expirySoonWindow: time.Duration(expirySoonWindowDays) * 24 * time.Hour,
		now:              time.Now,
	}
}

func (collector *certificateCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- certificatesLastFetchDesc
	ch <- certificatesTotalDesc
	ch <- expiredCountDesc
	ch <- expiresInDesc
	ch <- expiresSoonCountDesc
	ch <- expiryTimestampDesc
	ch <- lastScrapeSuccessDesc
	ch <- storeConnectedDesc
}

func (collector *certificateCollector) Collect(ch chan<- prometheus.Metric) {
	certificates, err := collector.store.CertificateStore().List(context.Background())
	if err != nil {
		ch <- prometheus.MustNewConstMetric(lastScrapeSuccessDesc, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(lastScrapeSuccessDesc, prometheus.GaugeValue, 1)
	now := collector.now()

	storeConnected := 1.0
	if err := collector.store.CheckConnection(context.Background()); err != nil {
		storeConnected = 0.0
	}

	expiredCount := collector.countExpired(certificates, now)
	expiresSoonCount := collector.countExpiresSoon(certificates, now)

	ch <- prometheus.MustNewConstMetric(certificatesLastFetchDesc, prometheus.GaugeValue, float64(now.Unix()))
	ch <- prometheus.MustNewConstMetric(certificatesTotalDesc, prometheus.GaugeValue, float64(len(certificates)-expiredCount), "valid")
	ch <- prometheus.MustNewConstMetric(certificatesTotalDesc, prometheus.GaugeValue, float64(expiredCount), "expired")
	ch <- prometheus.MustNewConstMetric(expiredCountDesc, prometheus.GaugeValue, float64(expiredCount))
	ch <- prometheus.MustNewConstMetric(expiresSoonCountDesc, prometheus.GaugeValue, float64(expiresSoonCount))
	ch <- prometheus.MustNewConstMetric(storeConnectedDesc, prometheus.GaugeValue, storeConnected)
	collector.emitCertificateMetrics(ch, certificates, now)
}

func (collector *certificateCollector) countExpired(certificates []certs.Certificate, now time.Time) int {
	count := 0
	for _, certificate := range certificates {
		if certificate.Expired(now) {
			count++
		}
	}
	return count
}

func (collector *certificateCollector) countExpiresSoon(certificates []certs.Certificate, now time.Time) int {
	count := 0
	for _, certificate := range certificates {
		if collector.expiresSoon(certificate, now) {
			count++
		}
	}
	return count
}

func (collector *certificateCollector) emitCertificateMetrics(ch chan<- prometheus.Metric, certificates []certs.Certificate, now time.Time) {
	for _, certificate := range certificates {
		expiryTimestamp := float64(certificate.ExpiryDate.Unix())
		secondsToExpiry := certificate.ExpiryDate.Sub(now).Seconds()
		if secondsToExpiry < 0 {
			secondsToExpiry = 0
		}
		ch <- prometheus.MustNewConstMetric(expiryTimestampDesc, prometheus.GaugeValue, expiryTimestamp, certificate.ID, certificate.Domain)
		ch <- prometheus.MustNewConstMetric(expiresInDesc, prometheus.GaugeValue, secondsToExpiry, certificate.ID, certificate.Domain)
	}
}

func (collector *certificateCollector) expiresSoon(certificate certs.Certificate, now time.Time) bool {
	if certificate.Expired(now) {
		return false
	}
	return certificate.ExpiryDate.Sub(now) <= collector.expirySoonWindow
}
