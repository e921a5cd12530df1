package session

import "github.com/katalvlaran/gridpath/search"

// Observer receives every event of a session in emission order.
type Observer interface {
	OnEvent(search.Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(search.Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e search.Event) { f(e) }

// Finisher is implemented by observers that also want the final Result.
// OnFinish is called exactly once per session, including cancelled ones.
type Finisher interface {
	OnFinish(Result)
}
