package observability

import "sync"

type observe struct {
	Kind          string
	Method, Route string
	Status        int
	Dur           float64
	OK            bool
}

// Inmem keeps the last max observations plus running totals. Handy for tests
// and debugging; not a real metrics backend.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals struct {
		reads, writes        int
		flushOK, flushFailed int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{max: max}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max <= 0 {
		m.last = []*observe{}
		return
	}
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Method: method, Route: route, Status: status, Dur: durMs})
}

func (m *Inmem) ObserveFlush(durMs float64, ok bool) {
	m.push(&observe{Kind: "flush", Dur: durMs, OK: ok})
	m.mu.Lock()
	if ok {
		m.totals.flushOK++
	} else {
		m.totals.flushFailed++
	}
	m.mu.Unlock()
}

func (m *Inmem) IncRead() {
	m.mu.Lock()
	m.totals.reads++
	m.mu.Unlock()
}

func (m *Inmem) IncWrite() {
	m.mu.Lock()
	m.totals.writes++
	m.mu.Unlock()
}

// FlushTotals returns how many flushes succeeded and failed so far.
func (m *Inmem) FlushTotals() (ok, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.flushOK, m.totals.flushFailed
}
