// Package topk tracks per-client request counts in a sliding top-k sketch
// and reports clients that consume an outsized share of traffic. It backs
// the abuse guard in front of the mail-sending endpoints.
package topk

import (
	"sync"
	"time"

	"github.com/keilerkonzept/topk/sliding"
)

// SketchParams configures a sketch instance.
type SketchParams struct {
	K          int // number of top items tracked
	WindowSize int // sliding window length in ticks
	Width      int // sketch width
	Depth      int // sketch depth

	// TickSize is how many requests trigger a sketch tick and top-k check.
	TickSize uint64

	// MaxSharePercent is the share of the window capacity a single client
	// may hold before it is reported.
	MaxSharePercent uint64

	// ActivationRPS is the minimum observed request rate before reporting
	// activates. Below it no client is reported no matter its share, so
	// quiet-period traffic never trips the guard.
	ActivationRPS uint64
}

// TopKSketch provides thread-safe access to a sliding sketch and manages
// ticking.
type TopKSketch struct {
	mu              sync.Mutex
	sketch          *sliding.Sketch
	tickSize        uint64
	tickReq         uint64 // requests since the last tick
	maxSharePercent uint64
	activationRPS   uint64
	threshold       uint32 // precomputed request count above which a client is reported
	lastTick        time.Time
}

// New creates a thread-safe sketch from the given parameters.
func New(params SketchParams) *TopKSketch {
	if params.TickSize == 0 {
		params.TickSize = 1000
	}
	if params.MaxSharePercent == 0 {
		params.MaxSharePercent = 80
	}

	instance := sliding.New(params.K, params.WindowSize,
		sliding.WithWidth(params.Width), sliding.WithDepth(params.Depth))

	windowCapacity := uint64(params.WindowSize) * params.TickSize
	threshold := uint32((windowCapacity * params.MaxSharePercent) / 100)

	return &TopKSketch{
		sketch:          instance,
		tickSize:        params.TickSize,
		maxSharePercent: params.MaxSharePercent,
		activationRPS:   params.ActivationRPS,
		threshold:       threshold,
		lastTick:        time.Now(),
	}
}

// SizeBytes reports the sketch memory footprint.
func (cs *TopKSketch) SizeBytes() int {
	return cs.sketch.SizeBytes()
}

// ProcessTick counts a request from ip. Every tickSize calls the top-k
// items are checked and the window then advances; clients holding more
// than the threshold share while the request rate is above activationRPS
// are returned for blocking. Most calls return nil.
func (cs *TopKSketch) ProcessTick(ip string) []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.sketch.Incr(ip)
	cs.tickReq++

	if cs.tickReq < cs.tickSize {
		return nil
	}
	cs.tickReq = 0

	now := time.Now()
	elapsed := now.Sub(cs.lastTick)
	cs.lastTick = now

	// The check runs before Tick so the bucket just filled still counts
	// toward the window; ticking first would cap any client at
	// (WindowSize-1)*TickSize, below a full-share threshold.
	var offenders []string
	active := true
	// A zero-duration tick means the rate is effectively unbounded, so the
	// gate is considered passed. Guards the division below.
	if elapsed > 0 {
		rps := uint64(float64(cs.tickSize) / elapsed.Seconds())
		active = rps >= cs.activationRPS
	}
	if active {
		for _, item := range cs.sketch.SortedSlice() {
			if item.Count <= cs.threshold {
				break // sorted descending, nothing further can exceed
			}
			offenders = append(offenders, item.Item)
		}
	}

	// The window always advances, reported or not.
	cs.sketch.Tick()

	return offenders
}
