package scraper

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"finance-assistant-api/internal/config"
)

func newTestFetcher(agents []string) *Fetcher {
	return NewFetcher(&config.ScraperConfig{UserAgents: agents})
}

func TestNextUserAgentRotates(t *testing.T) {
	f := newTestFetcher([]string{"ua-a", "ua-b", "ua-c"})

	assert.Equal(t, "ua-a", f.nextUserAgent())
	assert.Equal(t, "ua-b", f.nextUserAgent())
	assert.Equal(t, "ua-c", f.nextUserAgent())
	assert.Equal(t, "ua-a", f.nextUserAgent())
}

func TestNextUserAgentConcurrent(t *testing.T) {
	agents := []string{"ua-a", "ua-b", "ua-c"}
	f := newTestFetcher(agents)

	const goroutines = 15
	const perGoroutine = 100

	var mu sync.Mutex
	counts := make(map[string]int)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ua := f.nextUserAgent()
				mu.Lock()
				counts[ua]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	total := 0
	for _, ua := range agents {
		total += counts[ua]
	}
	assert.Equal(t, goroutines*perGoroutine, total)
	// 总数能被代理数整除，轮换应完全均匀
	for _, ua := range agents {
		assert.Equal(t, goroutines*perGoroutine/len(agents), counts[ua], "agent %s", ua)
	}
}

func TestNewFetcherDefaultUserAgent(t *testing.T) {
	f := newTestFetcher(nil)
	assert.NotEmpty(t, f.nextUserAgent())
}
