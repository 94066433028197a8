package explain

// Explain receives counters and phase timings. Implementations must be safe for
// concurrent use.
type Explain interface {
	KV(key string, value any)
	Timer(name string) func()
}

type nop struct{}

func (nop) KV(string, any)      {}
func (nop) Timer(string) func() { return func() {} }

// OrNop returns e, or an Explain that drops everything when e is nil.
func OrNop(e Explain) Explain {
	if e == nil {
		return nop{}
	}
	return e
}
