package observability

// Metrics receives operational events from the store and the HTTP layer.
type Metrics interface {
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveFlush(durMs float64, ok bool)
	IncRead()
	IncWrite()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveFlush(float64, bool)               {}
func (Noop) IncRead()                                 {}
func (Noop) IncWrite()                                {}
