package utils

import (
	"sync"
	"time"
)

// Retained latency samples per operation; older samples are dropped.
const maxLatencySamples = 512

// Tracks performance metrics across the system
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name to list of latencies in nanoseconds
	operationTimes map[string][]int64

	systemStartTime time.Time
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string][]int64),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	samples := append(mc.operationTimes[operationName], duration.Nanoseconds())
	if len(samples) > maxLatencySamples {
		samples = samples[len(samples)-maxLatencySamples:]
	}
	mc.operationTimes[operationName] = samples
}

// OperationAverages returns the mean latency per operation over the retained
// sample window.
func (mc *MetricsCollector) OperationAverages() map[string]time.Duration {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	averages := make(map[string]time.Duration, len(mc.operationTimes))
	for name, samples := range mc.operationTimes {
		if len(samples) == 0 {
			continue
		}
		var total int64
		for _, sample := range samples {
			total += sample
		}
		averages[name] = time.Duration(total / int64(len(samples)))
	}
	return averages
}

// Snapshot returns the request/error counters and uptime, for the health
// endpoint and the poller CLI's summary output.
func (mc *MetricsCollector) Snapshot() (requests, errors uint64, uptime time.Duration) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.requestCount, mc.errorCount, time.Since(mc.systemStartTime)
}
