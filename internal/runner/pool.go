package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// forEach invokes fn for each index in [0, items) using at most workers
// goroutines. Workers own disjoint result slots, so fn needs no locking.
// A panicking unit is logged and contained like any other failed unit.
func forEach(ctx context.Context, workers, items int, fn func(ctx context.Context, i int)) {
	if items == 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > items {
		workers = items
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				runOne(ctx, i, fn)
			}
		}()
	}

	for i := 0; i < items; i++ {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
}

func runOne(ctx context.Context, i int, fn func(ctx context.Context, i int)) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("worker panic recovered",
				slog.Int("unit", i),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	fn(ctx, i)
}
