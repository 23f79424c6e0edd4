package logger

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Publisher sends a digest batch to a topic. *kafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
}

type CollectorConfig struct {
	Interval       time.Duration // flush period; zero disables the ticker
	MaxEntries     int           // distinct entries that force an early flush
	Topic          string
	Publisher      Publisher
	PublishTimeout time.Duration
	// OnError receives publish failures. It must not log through a logger
	// attached to this collector.
	OnError func(error)
}

// DigestEntry counts repeats of one level and message between flushes.
type DigestEntry struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	LastError string    `json:"lastError,omitempty"`
	Count     int       `json:"count"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Collector aggregates repeated warnings and errors and publishes them as
// one batch per flush.
type Collector struct {
	cfg     CollectorConfig
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]*DigestEntry
	stop    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

func NewCollector(cfg CollectorConfig) *Collector {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 100
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 10 * time.Second
	}
	c := &Collector{
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[string]*DigestEntry),
		stop:    make(chan struct{}),
	}
	if cfg.Interval > 0 {
		c.wg.Add(1)
		go c.loop()
	}
	return c
}

// Add records one occurrence. Reaching MaxEntries distinct entries flushes
// in the background.
func (c *Collector) Add(level, message, errText string) {
	now := c.now()
	key := level + "\x00" + message

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &DigestEntry{Level: level, Message: message, FirstSeen: now}
		c.entries[key] = e
	}
	e.Count++
	e.LastSeen = now
	if errText != "" {
		e.LastError = errText
	}
	var batch []DigestEntry
	if len(c.entries) >= c.cfg.MaxEntries {
		batch = c.drainLocked()
	}
	c.mu.Unlock()

	if batch != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.publish(batch)
		}()
	}
}

// Flush publishes whatever is pending.
func (c *Collector) Flush() {
	c.mu.Lock()
	batch := c.drainLocked()
	c.mu.Unlock()
	if len(batch) > 0 {
		c.publish(batch)
	}
}

// Close stops the ticker, waits for in-flight publishes and flushes the rest.
func (c *Collector) Close() {
	c.once.Do(func() { close(c.stop) })
	c.wg.Wait()
	c.Flush()
}

func (c *Collector) loop() {
	defer c.wg.Done()
	t := time.NewTicker(c.cfg.Interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.Flush()
		case <-c.stop:
			return
		}
	}
}

// drainLocked empties the map and returns its entries oldest first.
func (c *Collector) drainLocked() []DigestEntry {
	if len(c.entries) == 0 {
		return nil
	}
	batch := make([]DigestEntry, 0, len(c.entries))
	for _, e := range c.entries {
		batch = append(batch, *e)
	}
	c.entries = make(map[string]*DigestEntry)
	sort.Slice(batch, func(i, j int) bool {
		if batch[i].FirstSeen.Equal(batch[j].FirstSeen) {
			return batch[i].Message < batch[j].Message
		}
		return batch[i].FirstSeen.Before(batch[j].FirstSeen)
	})
	return batch
}

func (c *Collector) publish(batch []DigestEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.PublishTimeout)
	defer cancel()
	if err := c.cfg.Publisher.Publish(ctx, c.cfg.Topic, nil, batch); err != nil && c.cfg.OnError != nil {
		c.cfg.OnError(err)
	}
}
