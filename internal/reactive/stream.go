package reactive

import "context"

// Map derives a stream of fn(value) from src, skipping consecutive repeats.
// Like Subscribe, a slow reader only sees the newest value. The result
// closes when src closes or ctx is done.
func Map[S any, T comparable](ctx context.Context, src <-chan S, fn func(S) T) <-chan T {
	out := make(chan T, 1)

	go func() {
		defer close(out)

		var (
			last T
			seen bool
		)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-src:
				if !ok {
					return
				}
				mapped := fn(v)
				if seen && mapped == last {
					continue
				}
				last, seen = mapped, true

				select {
				case <-out:
				default:
				}
				out <- mapped
			}
		}
	}()

	return out
}
