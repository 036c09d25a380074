package noisemap

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// fillRows calls fill once for every row in [0, height). Rows are handed to
// workers over a channel; each row is written by exactly one worker.
func fillRows(ctx context.Context, height, workers int, fill func(y int)) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > height {
		workers = height
	}

	if workers == 1 {
		for y := 0; y < height; y++ {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("build cancelled at row %d: %w", y, err)
			}
			fill(y)
		}
		return nil
	}

	rowCh := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rowCh {
				fill(y)
			}
		}()
	}

	var cancelErr error
feed:
	for y := 0; y < height; y++ {
		if err := ctx.Err(); err != nil {
			cancelErr = fmt.Errorf("build cancelled at row %d: %w", y, err)
			break
		}
		select {
		case rowCh <- y:
		case <-ctx.Done():
			cancelErr = fmt.Errorf("build cancelled at row %d: %w", y, ctx.Err())
			break feed
		}
	}
	close(rowCh)
	wg.Wait()

	return cancelErr
}
