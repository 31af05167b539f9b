package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	jobsExtractTotal         atomic.Uint64
	jobsExtractFallbackTotal atomic.Uint64
	emailsGeneratedTotal     atomic.Uint64
	emailsComposeFallback    atomic.Uint64
	portfolioMatchFallback   atomic.Uint64
	pageCacheHitsTotal       atomic.Uint64
	panicsRecoveredTotal     atomic.Uint64

	pipelineDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncJobsExtract counts an extraction request.
func IncJobsExtract() {
	jobsExtractTotal.Add(1)
}

// IncJobsExtractFallback counts an extraction that returned the mock catalog.
func IncJobsExtractFallback() {
	jobsExtractFallbackTotal.Add(1)
}

// IncEmailsGenerated counts a generated draft.
func IncEmailsGenerated() {
	emailsGeneratedTotal.Add(1)
}

// IncEmailsComposeFallback counts a draft built from the fallback template.
func IncEmailsComposeFallback() {
	emailsComposeFallback.Add(1)
}

// IncPortfolioMatchFallback counts a match that returned the default links.
func IncPortfolioMatchFallback() {
	portfolioMatchFallback.Add(1)
}

// IncPageCacheHit counts a page served from the cache.
func IncPageCacheHit() {
	pageCacheHitsTotal.Add(1)
}

// IncPanicRecovered counts a request whose handler panicked.
func IncPanicRecovered() {
	panicsRecoveredTotal.Add(1)
}

// ObservePipelineDurationMs records an end-to-end pipeline duration in milliseconds.
func ObservePipelineDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	pipelineDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "jobs_extract_total", "Total job extraction requests", jobsExtractTotal.Load())
	writeCounter(&buf, "jobs_extract_fallback_total", "Extractions answered from the mock catalog", jobsExtractFallbackTotal.Load())
	writeCounter(&buf, "emails_generated_total", "Total email drafts generated", emailsGeneratedTotal.Load())
	writeCounter(&buf, "emails_compose_fallback_total", "Drafts built from the fallback template", emailsComposeFallback.Load())
	writeCounter(&buf, "portfolio_match_fallback_total", "Matches answered with default portfolio links", portfolioMatchFallback.Load())
	writeCounter(&buf, "page_cache_hits_total", "Career pages served from cache", pageCacheHitsTotal.Load())
	writeCounter(&buf, "http_panics_recovered_total", "Requests that panicked and were answered with 500", panicsRecoveredTotal.Load())
	writeHistogram(&buf, "pipeline_duration_ms", "Outreach pipeline duration in milliseconds", pipelineDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
