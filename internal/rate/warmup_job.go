package rate

import (
	"context"
	"currencyconverter/internal/domain"
	"currencyconverter/internal/platform/correlation"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const numWorkers = 5
const perBaseTimeout = 30 * time.Second

// LatestRatesFetcher is the part of the provider the warm-up job needs.
type LatestRatesFetcher interface {
	RefreshLatestRates(ctx context.Context, base string) (domain.Result[domain.RateSnapshot], error)
}

// WarmUpLatestRates refreshes latest rates for every base in parallel so that
// the first user request for them is served from cache. It returns how many
// bases were refreshed successfully.
func WarmUpLatestRates(ctx context.Context, execID string, fetcher LatestRatesFetcher, bases []string) int {
	if len(bases) == 0 {
		return 0
	}

	workQueue := make(chan string, len(bases))
	for _, base := range bases {
		workQueue <- base
	}
	close(workQueue)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		refreshed int
	)
	for i := 0; i < min(numWorkers, len(bases)); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case base, ok := <-workQueue:
					if !ok {
						return
					}
					if warmUpBase(ctx, execID, workerID, fetcher, base) {
						mu.Lock()
						refreshed++
						mu.Unlock()
					}
				}
			}
		}(i)
	}
	wg.Wait()

	logrus.Infof("%d of %d bases warmed up; execID: %s", refreshed, len(bases), execID)
	return refreshed
}

func warmUpBase(ctx context.Context, execID string, workerID int, fetcher LatestRatesFetcher, base string) bool {
	reqCtx, cancel := context.WithTimeout(ctx, perBaseTimeout)
	defer cancel()

	res, err := fetcher.RefreshLatestRates(correlation.WithID(reqCtx, execID), base)
	if err != nil {
		logrus.Warnf("Base '%s' wasn't warmed up by worker %d: %s", base, workerID, err)
		return false
	}
	if !res.Success {
		logrus.Warnf("Base '%s' wasn't warmed up by worker %d: %s", base, workerID, res.Message)
		return false
	}
	return true
}
