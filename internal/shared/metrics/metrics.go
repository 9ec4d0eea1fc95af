package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// LLM operations with a pre-registered latency series.
const (
	OperationOptimize   = "optimize"
	OperationAnalyzeJob = "analyze_job"
)

var llmBuckets = []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000}

var (
	optimizationTotal         atomic.Uint64
	optimizationDegradedTotal atomic.Uint64
	jobAnalysisTotal          atomic.Uint64
	jobAnalysisDegradedTotal  atomic.Uint64

	llmDuration = newHistogramVec("operation", llmBuckets, OperationOptimize, OperationAnalyzeJob)
)

// IncOptimization counts one optimization request and whether it degraded.
func IncOptimization(degraded bool) {
	optimizationTotal.Add(1)
	if degraded {
		optimizationDegradedTotal.Add(1)
	}
}

// IncJobAnalysis counts one job description analysis and whether it degraded.
func IncJobAnalysis(degraded bool) {
	jobAnalysisTotal.Add(1)
	if degraded {
		jobAnalysisDegradedTotal.Add(1)
	}
}

// ObserveLLMDuration records a provider round trip for operation in milliseconds.
func ObserveLLMDuration(operation string, d time.Duration) {
	ms := float64(d.Microseconds()) / 1000.0
	if ms < 0 {
		ms = 0
	}
	llmDuration.with(operation).observe(ms)
}

// Handler serves Render as Prometheus text exposition.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; version=0.0.4; charset=utf-8", []byte(Render()))
	}
}

// Render writes every counter and histogram in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	counter(&buf, "optimization_total", "Total resume optimizations", optimizationTotal.Load())
	counter(&buf, "optimization_degraded_total", "Optimizations answered with the fallback result", optimizationDegradedTotal.Load())
	counter(&buf, "job_analysis_total", "Total job description analyses", jobAnalysisTotal.Load())
	counter(&buf, "job_analysis_degraded_total", "Job analyses answered with the fallback result", jobAnalysisDegradedTotal.Load())
	llmDuration.write(&buf, "llm_duration_ms", "LLM provider call duration in milliseconds")
	return buf.String()
}

func counter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", name, help, name, name, value)
}

// histogram keeps per-bucket (non-cumulative) counts; write accumulates them.
type histogram struct {
	mu     sync.Mutex
	bounds []float64
	counts []uint64
	sum    float64
	total  uint64
}

func newHistogram(bounds []float64) *histogram {
	return &histogram{bounds: bounds, counts: make([]uint64, len(bounds))}
}

func (h *histogram) observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.total++
	h.sum += value
	if i := sort.SearchFloat64s(h.bounds, value); i < len(h.bounds) {
		h.counts[i]++
	}
}

func (h *histogram) snapshot() (counts []uint64, sum float64, total uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]uint64(nil), h.counts...), h.sum, h.total
}

// histogramVec is a histogram family split by one label.
type histogramVec struct {
	mu     sync.Mutex
	label  string
	bounds []float64
	series map[string]*histogram
}

func newHistogramVec(label string, bounds []float64, preset ...string) *histogramVec {
	v := &histogramVec{label: label, bounds: bounds, series: make(map[string]*histogram)}
	for _, value := range preset {
		v.with(value)
	}
	return v
}

func (v *histogramVec) with(value string) *histogram {
	v.mu.Lock()
	defer v.mu.Unlock()
	h, ok := v.series[value]
	if !ok {
		h = newHistogram(v.bounds)
		v.series[value] = h
	}
	return h
}

func (v *histogramVec) write(buf *bytes.Buffer, name, help string) {
	v.mu.Lock()
	values := make([]string, 0, len(v.series))
	for value := range v.series {
		values = append(values, value)
	}
	v.mu.Unlock()
	sort.Strings(values)

	fmt.Fprintf(buf, "# HELP %s %s\n# TYPE %s histogram\n", name, help, name)
	for _, value := range values {
		counts, sum, total := v.with(value).snapshot()
		labels := fmt.Sprintf("%s=%q", v.label, value)
		var cumulative uint64
		for i, bound := range v.bounds {
			cumulative += counts[i]
			fmt.Fprintf(buf, "%s_bucket{%s,le=\"%s\"} %d\n", name, labels, formatFloat(bound), cumulative)
		}
		fmt.Fprintf(buf, "%s_bucket{%s,le=\"+Inf\"} %d\n", name, labels, total)
		fmt.Fprintf(buf, "%s_sum{%s} %s\n", name, labels, formatFloat(sum))
		fmt.Fprintf(buf, "%s_count{%s} %d\n", name, labels, total)
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
