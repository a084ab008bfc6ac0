package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records notification, mail relay and media activity.
// A nil *Metrics or one built without a registerer is a no-op.
type Metrics struct {
	notifications *prometheus.CounterVec
	mailAttempts  *prometheus.CounterVec
	media         *prometheus.CounterVec
}

// New registers the application counters on the provided registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Notification deliveries by kind and result.",
	}, []string{"kind", "result"})
	mailAttempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_send_attempts_total",
		Help: "SMTP send attempts by result.",
	}, []string{"result"})
	media := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "media_operations_total",
		Help: "Media host operations by operation and result.",
	}, []string{"op", "result"})
	reg.MustRegister(notifications, mailAttempts, media)
	return &Metrics{
		notifications: notifications,
		mailAttempts:  mailAttempts,
		media:         media,
	}
}

// IncNotification counts one delivery of the named notification kind.
func (m *Metrics) IncNotification(kind string, ok bool) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(kind), result(ok)).Inc()
}

// IncMailAttempt counts a single SMTP attempt.
func (m *Metrics) IncMailAttempt(ok bool) {
	if m == nil || m.mailAttempts == nil {
		return
	}
	m.mailAttempts.WithLabelValues(result(ok)).Inc()
}

// IncMedia counts one upload, delete or sign operation.
func (m *Metrics) IncMedia(op string, ok bool) {
	if m == nil || m.media == nil {
		return
	}
	m.media.WithLabelValues(normalizeLabel(op), result(ok)).Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failed"
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
