package checker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/primitivehl/whitelist-checker/metrics"
	"github.com/primitivehl/whitelist-checker/whitelist"
)

// DefaultMinimumCheckDuration keeps the checking state visible for a perceptible moment.
const DefaultMinimumCheckDuration = 800 * time.Millisecond

var ErrClosed = errors.New("checker closed")

// Recorder receives every result that reached a terminal state.
type Recorder interface {
	RecordCheck(res Result, startedAt time.Time)
}

type Config struct {
	Logger               log.Logger
	Loader               whitelist.ListLoader
	MinimumCheckDuration time.Duration
	Recorder             Recorder
}

// attempt is one submission. Only the latest attempt may publish.
type attempt struct {
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

func (a *attempt) finish() {
	a.closeOnce.Do(func() { close(a.done) })
}

// Checker runs membership checks for a single caller. Submitting a new
// candidate supersedes any check still in flight.
type Checker struct {
	logger      log.Logger
	loader      whitelist.ListLoader
	minDuration time.Duration
	recorder    Recorder

	mu          sync.Mutex
	current     *attempt
	result      Result
	subscribers map[chan Result]struct{}
	closed      bool
}

func New(cfg Config) *Checker {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New()
	}
	return &Checker{
		logger:      logger,
		loader:      cfg.Loader,
		minDuration: cfg.MinimumCheckDuration,
		recorder:    cfg.Recorder,
		result:      idleResult(),
		subscribers: make(map[chan Result]struct{}),
	}
}

// Submit starts a check of candidate and returns immediately. An empty
// candidate resets the checker to Idle.
func (c *Checker) Submit(candidate string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.current != nil {
		c.current.cancel()
		c.current.finish()
		c.current = nil
	}

	addr := whitelist.Canonical(candidate)
	if addr == "" {
		c.setLocked(idleResult())
		c.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &attempt{cancel: cancel, done: make(chan struct{})}
	c.current = a
	c.setLocked(inProgress(addr, StatusValidating))
	c.mu.Unlock()

	go func() {
		defer cancel()
		defer a.finish()
		startedAt := Now()
		res := c.evaluate(ctx, addr, func(r Result) { c.publish(a, r) })
		if c.publish(a, res) {
			c.record(res, startedAt)
		}
	}()
}

// State returns the result of the latest submission.
func (c *Checker) State() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Wait blocks until the latest submission reaches a terminal state or the
// checker is idle.
func (c *Checker) Wait(ctx context.Context) (Result, error) {
	for {
		c.mu.Lock()
		res := c.result
		current := c.current
		closed := c.closed
		c.mu.Unlock()

		if res.Status.IsTerminal() || res.Status == StatusIdle {
			return res, nil
		}
		if closed || current == nil {
			return res, ErrClosed
		}
		select {
		case <-current.done:
		case <-ctx.Done():
			return res, ctx.Err()
		}
	}
}

// Subscribe streams state transitions, starting with the current state.
// A subscriber that falls behind loses its oldest pending states, never the
// latest one, and never blocks the checker.
func (c *Checker) Subscribe() (<-chan Result, func()) {
	ch := make(chan Result, 16)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	c.subscribers[ch] = struct{}{}
	ch <- c.result
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subscribers[ch]; ok {
				delete(c.subscribers, ch)
				close(ch)
			}
		})
	}
}

// Check runs a one-off check without touching the checker state.
func (c *Checker) Check(ctx context.Context, candidate string) Result {
	startedAt := Now()
	res := c.evaluate(ctx, whitelist.Canonical(candidate), func(Result) {})
	if res.Status.IsTerminal() {
		c.record(res, startedAt)
	}
	return res
}

// Close cancels any check in flight and ends all subscriptions.
func (c *Checker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.current != nil {
		c.current.cancel()
		c.current.finish()
		c.current = nil
	}
	for ch := range c.subscribers {
		delete(c.subscribers, ch)
		close(ch)
	}
}

func (c *Checker) evaluate(ctx context.Context, addr string, emit func(Result)) (res Result) {
	if addr == "" {
		return idleResult()
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("[Checker] Unexpected failure", "address", addr, "panic", fmt.Sprint(r))
			res = terminal(addr, StatusLoadFailure, false, MsgCheckFailed)
		}
	}()

	if !whitelist.IsValidAddress(addr) {
		return terminal(addr, StatusInvalid, false, MsgInvalidFormat)
	}

	emit(inProgress(addr, StatusLoading))
	addrs, err := c.loader.LoadEligibleAddresses(ctx)
	if err != nil {
		c.logger.Error("[Checker] Error checking whitelist", "address", addr, "error", err)
		return terminal(addr, StatusLoadFailure, false, MsgCheckFailed)
	}

	if err := sleep(ctx, c.minDuration); err != nil {
		return terminal(addr, StatusLoadFailure, false, MsgCheckFailed)
	}

	isMember := whitelist.NewSet(addrs).Contains(addr)
	c.logger.Info("[Checker] Address check result", "address", addr, "isWhitelisted", isMember, "listSize", len(addrs))
	if isMember {
		return terminal(addr, StatusMember, true, "")
	}
	return terminal(addr, StatusNotMember, false, "")
}

// publish applies res if a is still the latest attempt.
func (c *Checker) publish(a *attempt, res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != a {
		metrics.IncStaleResultDiscarded()
		c.logger.Debug("[Checker] Discarding stale result", "address", res.Address, "status", res.Status)
		return false
	}
	c.setLocked(res)
	return true
}

func (c *Checker) setLocked(res Result) {
	c.result = res
	for ch := range c.subscribers {
		select {
		case ch <- res:
		default:
			// full: drop the oldest pending state. Only setLocked sends and it
			// holds c.mu, so a slot is free afterwards.
			select {
			case <-ch:
			default:
			}
			ch <- res
		}
	}
}

func (c *Checker) record(res Result, startedAt time.Time) {
	metrics.IncCheckStatus(res.Status.String())
	if c.recorder != nil {
		c.recorder.RecordCheck(res, startedAt)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var Now = time.Now // used to mock time in tests
