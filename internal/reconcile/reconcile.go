// Package reconcile performs a remote write and, only when it succeeds, applies the result to local state.
// Every store mutation goes through Run, parameterised by a retry policy and an error visibility.
package reconcile

import (
	"context"
	"errors"
	"time"

	"project-tracker/internal/entities"
	"project-tracker/internal/notify"

	"go.llib.dev/frameless/pkg/resilience"
	"go.uber.org/zap"
)

// Visibility decides what a caller observes when the remote write finally fails.
type Visibility int

const (
	// Silent logs the failure and swallows the error.
	Silent Visibility = iota
	// Raise logs the failure and returns the error.
	Raise
	// Notify logs the failure, emits the failure notification and returns the error.
	Notify
)

func (v Visibility) String() string {
	switch v {
	case Silent:
		return "silent"
	case Raise:
		return "raise"
	case Notify:
		return "notify"
	}
	return "unknown"
}

// RetryPolicy answers whether another attempt may be made after failureCount failed ones.
// It may block to wait out a backoff delay.
type RetryPolicy = resilience.RetryPolicy[resilience.FailureCount]

type once struct{}

func (once) ShouldTry(ctx context.Context, failureCount int) bool {
	return failureCount == 0 && ctx.Err() == nil
}

// None allows a single attempt.
func None() RetryPolicy { return once{} }

// Backoff allows 1+retries attempts, waiting initialDelay before the first retry and doubling after that.
func Backoff(retries int, initialDelay time.Duration) RetryPolicy {
	if retries <= 0 {
		return None()
	}
	// ExponentialBackoff waits 2^n * Delay before attempt n.
	delay := initialDelay / 2
	if delay <= 0 {
		delay = time.Nanosecond
	}
	return resilience.ExponentialBackoff{Delay: delay, Attempts: retries + 1}
}

// Policy configures one kind of reconciled mutation.
type Policy struct {
	// Operation names the mutation in logs.
	Operation  string
	Retry      RetryPolicy
	Visibility Visibility
	// Permanent reports errors that must not be retried.
	Permanent func(error) bool
	// Success is emitted after apply when set.
	Success *entities.Notification
	// Failure is emitted under Notify visibility. Its description defaults to the error text.
	Failure *entities.Notification
}

// Reconciler carries the collaborators shared by every Run.
type Reconciler struct {
	log      *zap.SugaredLogger
	notifier notify.Notifier
}

// New creates a Reconciler.
func New(log *zap.SugaredLogger, notifier notify.Notifier) *Reconciler {
	return &Reconciler{log: log.Named("reconcile"), notifier: notifier}
}

// Notifier exposes the notifier for messages raised outside Run.
func (r *Reconciler) Notifier() notify.Notifier { return r.notifier }

// Run performs remote under p.Retry. On success apply receives the result and the success notification is
// emitted. On failure apply is never called and the error is handled according to p.Visibility.
func Run[T any](ctx context.Context, r *Reconciler, p Policy, remote func(context.Context) (T, error), apply func(T)) (T, error) {
	var zero T

	retry := p.Retry
	if retry == nil {
		retry = None()
	}

	var lastErr error
	attempts := 0
	for failures := 0; retry.ShouldTry(ctx, failures); failures++ {
		attempts++
		res, err := remote(ctx)
		if err == nil {
			if apply != nil {
				apply(res)
			}
			if p.Success != nil {
				r.notifier.Notify(*p.Success)
			}
			return res, nil
		}

		lastErr = err
		r.log.Warnw("remote call failed", "operation", p.Operation, "attempt", attempts, "error", err)
		if p.Permanent != nil && p.Permanent(err) {
			break
		}
	}
	if lastErr == nil {
		lastErr = ctx.Err()
		if lastErr == nil {
			lastErr = errors.New("no attempt was made")
		}
	}

	r.log.Errorw("remote call gave up", "operation", p.Operation, "attempts", attempts,
		"visibility", p.Visibility.String(), "error", lastErr)

	switch p.Visibility {
	case Silent:
		return zero, nil
	case Notify:
		if p.Failure != nil {
			n := *p.Failure
			if n.Description == "" {
				n.Description = lastErr.Error()
			}
			r.notifier.Notify(n)
		}
	}
	return zero, lastErr
}
