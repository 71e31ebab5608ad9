package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/talencee/careers/internal/metrics"
	"github.com/talencee/careers/pkg/logx"
)

const (
	KindStaff          = "staff"
	KindAcknowledgment = "acknowledgment"

	defaultTimeout = 10 * time.Second
)

// Dispatcher sends the staff notification and the applicant acknowledgment.
// Every send is converted into a Result; nothing escapes as an error or panic.
type Dispatcher struct {
	mailer  Mailer
	sender  Sender
	timeout time.Duration

	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a dispatcher. timeout bounds each detached dispatch.
func NewDispatcher(mailer Mailer, sender Sender, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{
		mailer:  mailer,
		sender:  sender,
		timeout: timeout,
	}
}

// NotifyStaff emails the hiring team about a submission
func (d *Dispatcher) NotifyStaff(ctx context.Context, a Applicant) Result {
	return d.send(ctx, KindStaff, StaffMessage(d.sender, a))
}

// AcknowledgeApplicant emails the applicant a confirmation
func (d *Dispatcher) AcknowledgeApplicant(ctx context.Context, a Applicant) Result {
	return d.send(ctx, KindAcknowledgment, AcknowledgmentMessage(d.sender, a))
}

// DispatchAsync runs both sends in the background and returns immediately.
// The two sends are independent: one failing does not skip the other.
// Outcomes only reach the log and metrics. After Shutdown the dispatch is
// dropped with a warning.
func (d *Dispatcher) DispatchAsync(a Applicant) {
	d.mu.Lock()
	if d.closing {
		d.mu.Unlock()
		logx.With("applicant_email", a.Email.String()).Warn("dispatcher shut down, notifications dropped")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()
	metrics.NotificationsInFlight.Inc()

	go func() {
		defer d.wg.Done()
		defer metrics.NotificationsInFlight.Dec()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		log := logx.With("applicant_email", a.Email.String())

		var inner sync.WaitGroup
		inner.Add(2)
		go func() {
			defer inner.Done()
			report(log.With("kind", KindStaff), d.NotifyStaff(ctx, a))
		}()
		go func() {
			defer inner.Done()
			report(log.With("kind", KindAcknowledgment), d.AcknowledgeApplicant(ctx, a))
		}()
		inner.Wait()
	}()
}

// Shutdown stops accepting dispatches and waits for the ones in flight until
// ctx ends.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closing = true
	d.mu.Unlock()
	return d.Wait(ctx)
}

// Wait blocks until every dispatch started so far has finished or ctx ends.
// Callers that race with DispatchAsync use Shutdown instead.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) send(ctx context.Context, kind string, msg *Message) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Success: false, Error: fmt.Sprintf("mailer panic: %v", r)}
		}
		status := "success"
		if !res.Success {
			status = "failure"
		}
		metrics.NotificationsTotal.WithLabelValues(kind, status).Inc()
	}()

	if msg.To == "" {
		return Result{Success: false, Error: ErrRecipientMissing().Error()}
	}

	id, err := d.mailer.Send(ctx, msg)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true, MessageID: id}
}

func report(log *logx.Logger, res Result) {
	if res.Success {
		log.With("message_id", res.MessageID).Info("notification sent")
		return
	}
	log.With("error", res.Error).Warn("notification failed")
}
