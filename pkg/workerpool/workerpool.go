// Package workerpool provides simple concurrent processing utilities.
package workerpool

import "sync"

// Run processes items on a bounded pool of workers, invoking process for
// each. The first error stops dispatching further work; in-flight items
// finish and that first error is returned.
func Run[T any](workers int, items []T, process func(T) error) error {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}
	if workers == 0 {
		return nil
	}

	tasks := make(chan T)
	errs := make(chan error, 1)
	stop := make(chan struct{})
	var stopOnce sync.Once

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				select {
				case <-stop:
					// Drain without processing once a failure was seen.
					continue
				default:
				}
				if err := process(item); err != nil {
					select {
					case errs <- err:
					default:
					}
					stopOnce.Do(func() { close(stop) })
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, item := range items {
			select {
			case <-stop:
				return
			case tasks <- item:
			}
		}
	}()

	wg.Wait()
	close(errs)
	return <-errs
}
