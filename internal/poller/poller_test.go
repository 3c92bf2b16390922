package poller

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

// step is one scripted API reply.
type step struct {
	payload string
	err     error
}

// fakeAPI replays scripted replies and records the cursors it was asked for.
type fakeAPI struct {
	steps []step
	calls int
	from  []int64
}

func (f *fakeAPI) Statuses(_ context.Context, fromDate int64) (any, error) {
	if f.calls >= len(f.steps) {
		panic("fakeAPI: no scripted reply left")
	}
	s := f.steps[f.calls]
	f.calls++
	f.from = append(f.from, fromDate)
	if s.err != nil {
		return nil, s.err
	}
	var v any
	if err := json.Unmarshal([]byte(s.payload), &v); err != nil {
		panic("fakeAPI: bad scripted payload: " + err.Error())
	}
	return v, nil
}

type fakeSender struct {
	sent []string
}

func (f *fakeSender) Notify(text string) { f.sent = append(f.sent, text) }

func newTestPoller(api *fakeAPI, sender *fakeSender, start int64) *Poller {
	return New(api, sender, zap.NewNop(), time.Minute, start)
}

func TestTick_TransportFailureNotifiesExactlyOnce(t *testing.T) {
	api := &fakeAPI{steps: []step{
		{err: errors.New("connection refused")},
		{err: errors.New("connection refused")},
	}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, 100)

	p.tick(context.Background())
	if len(sender.sent) != 1 {
		t.Fatalf("want exactly 1 notification, got %d", len(sender.sent))
	}
	if !strings.HasPrefix(sender.sent[0], failurePrefix) {
		t.Fatalf("notification missing failure prefix: %q", sender.sent[0])
	}

	// identical failure next cycle: logged, not re-notified
	p.tick(context.Background())
	if len(sender.sent) != 1 {
		t.Fatalf("duplicate failure re-notified: got %d notifications", len(sender.sent))
	}
	if p.cursor != 100 {
		t.Fatalf("cursor moved on failure: %d", p.cursor)
	}
}

func TestTick_DedupResetsAfterSuccess(t *testing.T) {
	api := &fakeAPI{steps: []step{
		{err: errors.New("boom")},
		{payload: `{"homeworks": [], "current_date": 200}`},
		{err: errors.New("boom")},
	}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, 100)

	p.tick(context.Background())
	p.tick(context.Background())
	p.tick(context.Background())

	// failure, quiet success, then the same failure again → two notifications
	if len(sender.sent) != 2 {
		t.Fatalf("want 2 notifications, got %d: %v", len(sender.sent), sender.sent)
	}
}

func TestTick_DistinctFailuresBothNotified(t *testing.T) {
	api := &fakeAPI{steps: []step{
		{err: errors.New("boom")},
		{err: errors.New("other boom")},
	}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, 100)

	p.tick(context.Background())
	p.tick(context.Background())
	if len(sender.sent) != 2 {
		t.Fatalf("want 2 notifications, got %d", len(sender.sent))
	}
}

func TestTick_EmptyHomeworksAdvancesCursorQuietly(t *testing.T) {
	api := &fakeAPI{steps: []step{
		{payload: `{"homeworks": [], "current_date": 1700000000}`},
	}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, 100)

	p.tick(context.Background())
	if len(sender.sent) != 0 {
		t.Fatalf("empty poll should not notify, got %v", sender.sent)
	}
	if p.cursor != 1700000000 {
		t.Fatalf("want cursor 1700000000, got %d", p.cursor)
	}
}

func TestTick_NotifiesMostRecentHomework(t *testing.T) {
	api := &fakeAPI{steps: []step{
		{payload: `{
			"homeworks": [
				{"homework_name": "fresh", "status": "approved"},
				{"homework_name": "stale", "status": "rejected"}
			],
			"current_date": 1700000000
		}`},
		{payload: `{"homeworks": [], "current_date": 1700000600}`},
	}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, 100)

	p.tick(context.Background())
	if len(sender.sent) != 1 {
		t.Fatalf("want 1 notification, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0], `"fresh"`) {
		t.Fatalf("want the most recent homework in %q", sender.sent[0])
	}

	// next cycle queries from the advanced cursor
	p.tick(context.Background())
	if got := api.from[1]; got != 1700000000 {
		t.Fatalf("want second poll from 1700000000, got %d", got)
	}
}

func TestTick_MalformedShapeNotifiesAndKeepsCursor(t *testing.T) {
	api := &fakeAPI{steps: []step{
		{payload: `{"current_date": 1700000000}`},
	}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, 100)

	p.tick(context.Background())
	if len(sender.sent) != 1 {
		t.Fatalf("want 1 notification, got %d", len(sender.sent))
	}
	if p.cursor != 100 {
		t.Fatalf("cursor moved on validation failure: %d", p.cursor)
	}
}

func TestTick_MissingCurrentDateKeepsCursor(t *testing.T) {
	api := &fakeAPI{steps: []step{
		{payload: `{"homeworks": []}`},
	}}
	sender := &fakeSender{}
	p := newTestPoller(api, sender, 100)

	p.tick(context.Background())
	if p.cursor != 100 {
		t.Fatalf("want cursor unchanged at 100, got %d", p.cursor)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	api := &fakeAPI{steps: []step{
		{payload: `{"homeworks": [], "current_date": 200}`},
	}}
	p := newTestPoller(api, &fakeSender{}, 100)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
	if api.calls != 1 {
		t.Fatalf("want exactly the immediate poll, got %d calls", api.calls)
	}
}
