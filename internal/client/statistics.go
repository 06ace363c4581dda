package client

import (
	"context"
	"sync"
)

// Statistics is the process-wide aggregate shown in the archive footer.
// Fields left zero/empty indicate a fetch that failed or an empty archive;
// consumers render those as an empty state, never as fallback text.
type Statistics struct {
	VideoCount   int64
	CommentCount int64
	ReplyCount   int64
	LastUpdated  string
}

// StatisticsCache populates the aggregate once per lifetime and hands the
// same snapshot to every caller. It is constructed and injected explicitly;
// there is no ambient instance and no refresh trigger.
type StatisticsCache struct {
	api   *Client
	once  sync.Once
	stats Statistics
}

// NewStatisticsCache constructs a cache over the given API client.
func NewStatisticsCache(api *Client) *StatisticsCache {
	return &StatisticsCache{api: api}
}

// Load returns the cached statistics, fetching the four aggregates in
// parallel on first use. Individual failures leave their field zero and do
// not disturb the others.
func (c *StatisticsCache) Load(ctx context.Context) Statistics {
	c.once.Do(func() {
		var wg sync.WaitGroup
		wg.Add(4)

		go func() {
			defer wg.Done()
			if count, err := c.api.VideoCount(ctx); err == nil {
				c.stats.VideoCount = count
			}
		}()
		go func() {
			defer wg.Done()
			if count, err := c.api.CommentCount(ctx, CommentScope{}); err == nil {
				c.stats.CommentCount = count
			}
		}()
		go func() {
			defer wg.Done()
			if count, err := c.api.ReplyCount(ctx); err == nil {
				c.stats.ReplyCount = count
			}
		}()
		go func() {
			defer wg.Done()
			if updated, err := c.api.LastUpdated(ctx); err == nil {
				c.stats.LastUpdated = updated
			}
		}()

		wg.Wait()
	})
	return c.stats
}
