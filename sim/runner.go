package sim

import (
	"sync"
)

// StartRunner runs one simulation on its own goroutine and emits its events on
// the returned channel, which is closed after the DoneEvent (or on error).
// stop makes the runner drop remaining events so the run finishes without a
// reader; wait blocks for the run's result.
//
// The simulation must not be used by anyone else until wait returns.
func StartRunner(s *Simulation, rounds int) (events <-chan Event, stop func(), wait func() (Stats, error)) {
	ch := make(chan Event, 256)
	stopCh := make(chan struct{})
	var stopOnce sync.Once
	stop = func() { stopOnce.Do(func() { close(stopCh) }) }

	var (
		wg     sync.WaitGroup
		result Stats
		runErr error
	)
	forward := ObserverFunc(func(ev Event) {
		select {
		case <-stopCh:
			return
		default:
		}
		select {
		case ch <- ev:
		case <-stopCh:
		}
	})
	detach := s.Observe(forward)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(ch)
		defer detach()
		result, runErr = s.Run(rounds)
	}()

	wait = func() (Stats, error) {
		wg.Wait()
		return result, runErr
	}
	return ch, stop, wait
}
