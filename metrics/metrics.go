package metrics

import (
	"LeadBot/model"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "leadbot"

// Metrics records conversation and delivery counters.
type Metrics struct {
	sessionsStarted   prometheus.Counter
	sessionsRestarted prometheus.Counter
	sessionsCompleted prometheus.Counter
	sessionsDropped   prometheus.Counter
	stepsEntered      *prometheus.CounterVec
	deliveries        *prometheus.CounterVec
	duplicateUpdates  prometheus.Counter
}

// New registers the collectors on reg. activeSessions backs the active sessions gauge.
func New(reg prometheus.Registerer, activeSessions func() int) *Metrics {
	m := &Metrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Sessions created by /start or /menu.",
		}),
		sessionsRestarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_restarted_total",
			Help:      "Sessions discarded and started over.",
		}),
		sessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_completed_total",
			Help:      "Sessions that reached consent and were dispatched.",
		}),
		sessionsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_dropped_total",
			Help:      "Sessions dropped because they reached an unknown state.",
		}),
		stepsEntered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_entered_total",
			Help:      "Step transitions by target step.",
		}, []string{"step"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Outbound deliveries by sink and result.",
		}, []string{"sink", "result"}),
		duplicateUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_updates_total",
			Help:      "Telegram updates ignored because they were already handled.",
		}),
	}

	reg.MustRegister(
		m.sessionsStarted,
		m.sessionsRestarted,
		m.sessionsCompleted,
		m.sessionsDropped,
		m.stepsEntered,
		m.deliveries,
		m.duplicateUpdates,
	)
	if activeSessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}, func() float64 { return float64(activeSessions()) }))
	}
	return m
}

func (m *Metrics) SessionStarted()   { m.sessionsStarted.Inc() }
func (m *Metrics) SessionRestarted() { m.sessionsRestarted.Inc() }
func (m *Metrics) SessionCompleted() { m.sessionsCompleted.Inc() }
func (m *Metrics) SessionDropped()   { m.sessionsDropped.Inc() }
func (m *Metrics) DuplicateUpdate()  { m.duplicateUpdates.Inc() }

func (m *Metrics) StepEntered(step model.Step) {
	m.stepsEntered.WithLabelValues(string(step)).Inc()
}

func (m *Metrics) Delivery(sink string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.deliveries.WithLabelValues(sink, result).Inc()
}
