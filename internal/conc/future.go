package conc

// Future is the eventual result of a submitted task.
type Future[T any] struct {
	ch    chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{ch: make(chan struct{})}
}

// Await blocks until the task finishes.
func (f *Future[T]) Await() (T, error) {
	<-f.ch
	return f.value, f.err
}
