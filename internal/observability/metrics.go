package observability

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Metrics is a small Prometheus text-format registry. All methods are nil-safe
// so callers can use Current() without checking whether metrics are enabled.
type Metrics struct {
	apiRequests   *CounterVec
	apiLatency    *HistogramVec
	apiInflight   *Gauge
	llmRequests   *CounterVec
	llmLatency    *HistogramVec
	llmTokens     *CounterVec
	rateLimited   *CounterVec
	schedules     *CounterVec
	scheduleCache *CounterVec
}

var (
	initMu   sync.Mutex
	instance *Metrics
)

func Current() *Metrics {
	initMu.Lock()
	defer initMu.Unlock()
	return instance
}

// Init installs the process-wide registry; a disabled config leaves Current() nil.
func Init(enabled bool) *Metrics {
	initMu.Lock()
	defer initMu.Unlock()
	if !enabled {
		instance = nil
		return nil
	}
	if instance == nil {
		instance = NewMetrics()
	}
	return instance
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("sp_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"sp_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		),
		apiInflight: NewGauge("sp_api_inflight_requests", "In-flight API requests."),
		llmRequests: NewCounterVec("sp_llm_requests_total", "LLM requests by model/status.", []string{"model", "status"}),
		llmLatency: NewHistogramVec(
			"sp_llm_request_duration_seconds",
			"LLM request latency in seconds by model.",
			[]string{"model"},
			[]float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		),
		llmTokens:     NewCounterVec("sp_llm_tokens_total", "LLM tokens by model/kind.", []string{"model", "kind"}),
		rateLimited:   NewCounterVec("sp_rate_limited_total", "Calls denied by the per-user limiter.", []string{"scope"}),
		schedules:     NewCounterVec("sp_schedules_generated_total", "Weekly schedules generated by source.", []string{"source"}),
		scheduleCache: NewCounterVec("sp_schedule_cache_total", "Schedule cache lookups by result.", []string{"result"}),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.llmRequests, m.llmLatency, m.llmTokens,
		m.rateLimited, m.schedules, m.scheduleCache,
	}
	for _, wr := range writers {
		if err := wr.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveLLMRequest(model, status string, dur time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.llmRequests.Inc(model, status)
	if dur > 0 {
		m.llmLatency.Observe(dur.Seconds(), model)
	}
	if inputTokens > 0 {
		m.llmTokens.Add(float64(inputTokens), model, "input")
	}
	if outputTokens > 0 {
		m.llmTokens.Add(float64(outputTokens), model, "output")
	}
}

func (m *Metrics) IncRateLimited(scope string) {
	if m == nil {
		return
	}
	m.rateLimited.Inc(scope)
}

// IncScheduleGenerated counts a fresh generation; source is "llm" or "fallback".
func (m *Metrics) IncScheduleGenerated(source string) {
	if m == nil {
		return
	}
	m.schedules.Inc(source)
}

// IncScheduleCache counts a lookup; result is "hit", "miss" or "error".
func (m *Metrics) IncScheduleCache(result string) {
	if m == nil {
		return
	}
	m.scheduleCache.Inc(result)
}

func (m *Metrics) ScheduleGenerated(source string) float64 {
	if m == nil {
		return 0
	}
	return m.schedules.Value(source)
}
