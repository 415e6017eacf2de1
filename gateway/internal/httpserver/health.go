package httpserver

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// HealthChecker fans a health probe out to every backend service.
type HealthChecker struct {
	client  *resty.Client
	targets map[string]string
}

func NewHealthChecker(targets map[string]string) *HealthChecker {
	client := resty.New().
		SetTimeout(3 * time.Second).
		SetRetryCount(0)
	return &HealthChecker{client: client, targets: targets}
}

// Check probes every backend concurrently and returns per-service
// up/down plus whether every service is up.
func (hc *HealthChecker) Check(ctx context.Context) (map[string]string, bool) {
	statuses := make(map[string]string, len(hc.targets))
	allUp := true

	var mu sync.Mutex
	var wg sync.WaitGroup
	for name, base := range hc.targets {
		wg.Add(1)
		go func(name, base string) {
			defer wg.Done()
			resp, err := hc.client.R().SetContext(ctx).Get(base + "/health")
			up := err == nil && resp.StatusCode() == 200

			mu.Lock()
			defer mu.Unlock()
			if up {
				statuses[name] = "up"
			} else {
				statuses[name] = "down"
				allUp = false
			}
		}(name, base)
	}
	wg.Wait()

	return statuses, allUp
}
