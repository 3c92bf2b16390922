package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/EvZhi/homework-bot/internal/homework"
)

// API is the minimal interface the poller needs to fetch status updates.
// practicum.Client implements this (method: Statuses).
type API interface {
	Statuses(ctx context.Context, fromDate int64) (any, error)
}

// Sender is the minimal interface the poller needs to deliver a text message.
// telegram.Notifier implements this (method: Notify). Delivery failures are
// the sender's concern; Notify never reports them back.
type Sender interface {
	Notify(text string)
}

const failurePrefix = "Сбой в работе программы: "

// Poller periodically fetches homework statuses and relays changes.
// It owns the timestamp cursor bounding the next query window.
type Poller struct {
	api      API
	sender   Sender
	log      *zap.Logger
	interval time.Duration

	cursor  int64
	lastErr string // previous failure notification, for dedup across cycles
}

// New creates a Poller. The cursor starts at `start` (unix seconds) and
// advances to the API's current_date after each successful poll.
func New(api API, sender Sender, log *zap.Logger, interval time.Duration, start int64) *Poller {
	return &Poller{
		api:      api,
		sender:   sender,
		log:      log,
		interval: interval,
		cursor:   start,
	}
}

// Run polls immediately, then once per interval until ctx is canceled.
// The wait between cycles happens regardless of cycle outcome.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			p.log.Info("poller stopping")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick performs one cycle: fetch, validate, parse, notify. Every failure is
// absorbed here; a cycle never terminates the loop. An error identical to
// the previous cycle's is logged but not re-notified.
func (p *Poller) tick(ctx context.Context) {
	text, next, err := p.poll(ctx)
	if err != nil {
		p.log.Error("poll cycle failed", zap.Error(err), zap.Int64("cursor", p.cursor))
		msg := failurePrefix + err.Error()
		if msg != p.lastErr {
			p.lastErr = msg
			p.sender.Notify(msg)
		}
		return
	}
	p.lastErr = ""
	p.cursor = next

	if text == "" {
		p.log.Debug("no homework updates", zap.Int64("cursor", p.cursor))
		return
	}
	p.sender.Notify(text)
}

// poll fetches the current window and returns the notification text for the
// most recent homework (empty when there are no updates) and the next cursor.
func (p *Poller) poll(ctx context.Context) (string, int64, error) {
	payload, err := p.api.Statuses(ctx, p.cursor)
	if err != nil {
		return "", 0, err
	}
	if err := homework.CheckResponse(payload); err != nil {
		return "", 0, err
	}

	next := p.cursor
	if cd, ok := homework.CurrentDate(payload); ok {
		next = cd
	}

	homeworks := homework.Homeworks(payload)
	if len(homeworks) == 0 {
		return "", next, nil
	}

	text, err := homework.ParseStatus(homeworks[0])
	if err != nil {
		return "", 0, err
	}
	return text, next, nil
}
