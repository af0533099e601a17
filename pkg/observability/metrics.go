package observability

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/portrait/pkg/domain"
)

// Metrics counts questionnaire activity.
type Metrics struct {
	QuestionsShown *prometheus.CounterVec
	Answers        *prometheus.CounterVec
	Results        *prometheus.CounterVec
	Errors         *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		QuestionsShown: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portrait_questions_shown_total",
				Help: "Total number of questions shown",
			},
			[]string{"branch"},
		),
		Answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portrait_answers_total",
				Help: "Total number of recorded answers",
			},
			[]string{"branch"},
		),
		Results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portrait_results_total",
				Help: "Total number of results delivered, by dominant portrait",
			},
			[]string{"portrait"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portrait_errors_total",
				Help: "Total number of navigation errors, by kind",
			},
			[]string{"kind"},
		),
	}

	for _, c := range []prometheus.Collector{m.QuestionsShown, m.Answers, m.Results, m.Errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks records every lifecycle event in the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuestion: func(_ context.Context, e *domain.QuestionEvent) {
			m.QuestionsShown.WithLabelValues(strconv.Itoa(e.Branch)).Inc()
		},
		OnAnswer: func(_ context.Context, e *domain.AnswerEvent) {
			m.Answers.WithLabelValues(strconv.Itoa(e.Branch)).Inc()
		},
		OnFinish: func(_ context.Context, e *domain.FinishEvent) {
			m.Results.WithLabelValues(e.Portrait).Inc()
		},
		OnError: func(_ context.Context, e *domain.ErrorEvent) {
			m.Errors.WithLabelValues(string(e.Err.Kind)).Inc()
		},
	}
}
