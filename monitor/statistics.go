package monitor

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks monitor activity. It is always collected:
// observability of the synchronization core is not optional, even when
// Prometheus metrics are disabled.
type Statistics struct {
	// Atomic counters for thread-safe updates
	writes         int64
	reads          int64
	producerBlocks int64
	consumerBlocks int64

	// Protected by mutex
	mu               sync.RWMutex
	startTime        time.Time
	currentOccupied  int64
	maxOccupied      int64
	producerWaitTime time.Duration
	consumerWaitTime time.Duration
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// RecordWrite records a successful produce and the resulting occupancy.
func (s *Statistics) RecordWrite(occupied int) {
	atomic.AddInt64(&s.writes, 1)
	s.updateOccupied(occupied)
}

// RecordRead records a successful consume and the resulting occupancy.
func (s *Statistics) RecordRead(occupied int) {
	atomic.AddInt64(&s.reads, 1)
	s.updateOccupied(occupied)
}

// RecordBlocked records that a worker of the given role started waiting
// on a condition variable.
func (s *Statistics) RecordBlocked(role string) {
	if role == RoleProducer {
		atomic.AddInt64(&s.producerBlocks, 1)
	} else {
		atomic.AddInt64(&s.consumerBlocks, 1)
	}
}

// RecordWait records how long a worker of the given role spent blocked.
func (s *Statistics) RecordWait(role string, d time.Duration) {
	s.mu.Lock()
	if role == RoleProducer {
		s.producerWaitTime += d
	} else {
		s.consumerWaitTime += d
	}
	s.mu.Unlock()
}

func (s *Statistics) updateOccupied(occupied int) {
	s.mu.Lock()
	s.currentOccupied = int64(occupied)
	if s.currentOccupied > s.maxOccupied {
		s.maxOccupied = s.currentOccupied
	}
	s.mu.Unlock()
}

// Writes returns the total number of successful produce operations.
func (s *Statistics) Writes() int64 {
	return atomic.LoadInt64(&s.writes)
}

// Reads returns the total number of successful consume operations.
func (s *Statistics) Reads() int64 {
	return atomic.LoadInt64(&s.reads)
}

// ProducerBlocks returns how many times a producer went to sleep on the
// space-available condition.
func (s *Statistics) ProducerBlocks() int64 {
	return atomic.LoadInt64(&s.producerBlocks)
}

// ConsumerBlocks returns how many times a consumer went to sleep on the
// item-available condition.
func (s *Statistics) ConsumerBlocks() int64 {
	return atomic.LoadInt64(&s.consumerBlocks)
}

// CurrentOccupied returns the occupancy recorded by the latest operation.
func (s *Statistics) CurrentOccupied() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentOccupied
}

// MaxOccupied returns the highest occupancy ever recorded.
func (s *Statistics) MaxOccupied() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxOccupied
}

// ProducerWaitTime returns the cumulative time producers spent blocked.
func (s *Statistics) ProducerWaitTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.producerWaitTime
}

// ConsumerWaitTime returns the cumulative time consumers spent blocked.
func (s *Statistics) ConsumerWaitTime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.consumerWaitTime
}

// Uptime returns how long the monitor has existed.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// StatsSummary is a point-in-time snapshot of all statistics.
type StatsSummary struct {
	Writes           int64         `json:"writes"`
	Reads            int64         `json:"reads"`
	ProducerBlocks   int64         `json:"producer_blocks"`
	ConsumerBlocks   int64         `json:"consumer_blocks"`
	CurrentOccupied  int64         `json:"current_occupied"`
	MaxOccupied      int64         `json:"max_occupied"`
	ProducerWaitTime time.Duration `json:"producer_wait_time"`
	ConsumerWaitTime time.Duration `json:"consumer_wait_time"`
	Uptime           time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Writes:           s.Writes(),
		Reads:            s.Reads(),
		ProducerBlocks:   s.ProducerBlocks(),
		ConsumerBlocks:   s.ConsumerBlocks(),
		CurrentOccupied:  s.CurrentOccupied(),
		MaxOccupied:      s.MaxOccupied(),
		ProducerWaitTime: s.ProducerWaitTime(),
		ConsumerWaitTime: s.ConsumerWaitTime(),
		Uptime:           s.Uptime(),
	}
}
