package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the quiz collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	answersRecorded   prometheus.Counter
	answersRejected   *prometheus.CounterVec
	sessionsCompleted prometheus.Counter
	sessionsExhausted prometheus.Counter
	openSessions      prometheus.Gauge
	answersCleared    prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		answersRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "answers_recorded_total",
			Help:      "Answers persisted to the answer store.",
		}),
		answersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "answers_rejected_total",
			Help:      "Answer submissions that were not recorded, by reason.",
		}, []string{"reason"}),
		sessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "sessions_completed_total",
			Help:      "Sessions that reached the question quota.",
		}),
		sessionsExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "sessions_exhausted_total",
			Help:      "Sessions that ran out of questions before the quota.",
		}),
		openSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quiz",
			Name:      "open_sessions",
			Help:      "Sessions currently held in memory.",
		}),
		answersCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "answer_store_clears_total",
			Help:      "Times the answer store was cleared.",
		}),
	}
	reg.MustRegister(
		m.answersRecorded,
		m.answersRejected,
		m.sessionsCompleted,
		m.sessionsExhausted,
		m.openSessions,
		m.answersCleared,
	)
	return m
}

func (m *Metrics) AnswerRecorded() {
	if m == nil {
		return
	}
	m.answersRecorded.Inc()
}

func (m *Metrics) AnswerRejected(reason string) {
	if m == nil {
		return
	}
	m.answersRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) SessionCompleted() {
	if m == nil {
		return
	}
	m.sessionsCompleted.Inc()
}

func (m *Metrics) SessionExhausted() {
	if m == nil {
		return
	}
	m.sessionsExhausted.Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.openSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.openSessions.Dec()
}

func (m *Metrics) AnswersCleared() {
	if m == nil {
		return
	}
	m.answersCleared.Inc()
}
