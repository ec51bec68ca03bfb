// Package notify periodically scans the task collection for work due today or
// tomorrow and records a simulated reminder email for it. Nothing is sent
// anywhere; the "send" is the recorded notification plus a log trace.
package notify

import (
	"context"
	"log"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"

	"github.com/nissyi-gh/taskdeck/internal/digest"
	"github.com/nissyi-gh/taskdeck/internal/model"
)

const (
	DemoInterval       = 30 * time.Second
	ProductionInterval = 20 * time.Minute
	MaxNotifications   = 10
)

// TaskSource provides the full, unfiltered task collection.
type TaskSource interface {
	All() []model.Task
}

// Notifier is either armed (scanning on a schedule) or stopped.
type Notifier struct {
	src      TaskSource
	interval time.Duration
	now      func() time.Time
	cronLog  rcron.Logger

	mu        sync.Mutex
	recipient string
	onNotify  func(Notification)
	items     []Notification
	cron      *rcron.Cron
	stopCh    chan struct{}
	running   bool
	gen       uint64
}

// New returns a stopped Notifier. A non-positive interval selects
// ProductionInterval.
func New(src TaskSource, interval time.Duration) *Notifier {
	if interval <= 0 {
		interval = ProductionInterval
	}
	return &Notifier{
		src:      src,
		interval: interval,
		now:      time.Now,
		cronLog:  rcron.PrintfLogger(log.Default()),
	}
}

// SetHook sets the recipient named in the simulated email and the function
// called after each recorded notification. fn runs on the scheduler
// goroutine and may be nil.
func (n *Notifier) SetHook(recipient string, fn func(Notification)) {
	n.mu.Lock()
	n.recipient = recipient
	n.onNotify = fn
	n.mu.Unlock()
}

// Interval returns the scan period.
func (n *Notifier) Interval() time.Duration {
	return n.interval
}

// Running reports whether the notifier is armed.
func (n *Notifier) Running() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.running
}

// Start arms the notifier: it scans once immediately and then every interval
// until Stop is called or ctx is done. Starting an armed notifier does nothing.
func (n *Notifier) Start(ctx context.Context) {
	n.mu.Lock()
	if n.running {
		n.mu.Unlock()
		return
	}
	n.running = true
	n.gen++
	gen := n.gen
	stopCh := make(chan struct{})
	n.stopCh = stopCh
	c := rcron.New(rcron.WithLogger(n.cronLog))
	c.Schedule(rcron.Every(n.interval), rcron.FuncJob(func() { n.tick(gen) }))
	n.cron = c
	// Started under the lock so a concurrent Stop always finds it running.
	c.Start()
	n.mu.Unlock()

	n.tick(gen)
	log.Printf("[notify] started, checking every %s for tasks due soon", n.interval)

	go func() {
		select {
		case <-ctx.Done():
			n.Stop()
		case <-stopCh:
		}
	}()
}

// Stop disarms the notifier. Scheduled ticks that fire afterwards are
// dropped. Calling Stop on a stopped notifier is a no-op.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return
	}
	n.running = false
	n.gen++
	c := n.cron
	n.cron = nil
	close(n.stopCh)
	n.stopCh = nil
	n.mu.Unlock()

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		log.Printf("[notify] stop timeout waiting for running scan")
	}
	log.Printf("[notify] stopped")
}

func (n *Notifier) tick(gen uint64) {
	n.mu.Lock()
	live := n.running && gen == n.gen
	n.mu.Unlock()
	if !live {
		return
	}
	n.scan(gen)
}

// Scan performs one check outside the schedule. It reports whether a
// notification was produced.
func (n *Notifier) Scan() (Notification, bool) {
	return n.scan(0)
}

// scan records a notification unless gen is non-zero and no longer current.
func (n *Notifier) scan(gen uint64) (Notification, bool) {
	now := n.now()
	due := DueSoon(n.src.All(), now)
	if len(due) == 0 {
		return Notification{}, false
	}
	note := Compose(due, now)

	n.mu.Lock()
	if gen != 0 && (!n.running || gen != n.gen) {
		n.mu.Unlock()
		return Notification{}, false
	}
	n.items = append([]Notification{note}, n.items...)
	if len(n.items) > MaxNotifications {
		n.items = n.items[:MaxNotifications]
	}
	hook := n.onNotify
	n.mu.Unlock()

	log.Printf("[notify] mock email sent: %q (%d tasks)\n%s", note.Subject, len(note.Tasks), n.Digest(note))
	if hook != nil {
		hook(note)
	}
	return note, true
}

// Digest renders note as the text of the simulated email.
func (n *Notifier) Digest(note Notification) string {
	n.mu.Lock()
	to := n.recipient
	n.mu.Unlock()

	e := digest.Email{
		To:      to,
		Subject: note.Subject,
		Date:    note.Timestamp,
		Intro:   note.Message,
	}
	for _, t := range note.Tasks {
		e.Lines = append(e.Lines, digest.Line{Title: t.Title, DueDate: t.DueDate, Priority: string(t.Priority)})
	}
	return digest.Render(e)
}

// Notifications returns the retained notifications, newest first.
func (n *Notifier) Notifications() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Clear dismisses the notification with the given id.
func (n *Notifier) Clear(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.items {
		if n.items[i].ID == id {
			n.items = append(n.items[:i:i], n.items[i+1:]...)
			return
		}
	}
}

// ClearAll dismisses every notification.
func (n *Notifier) ClearAll() {
	n.mu.Lock()
	n.items = nil
	n.mu.Unlock()
}
