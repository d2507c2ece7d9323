package transcription

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/gladiaflow/errors"
	"github.com/kbukum/gladiaflow/logger"
	"github.com/kbukum/gladiaflow/observability"
)

// SleepFunc suspends for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Orchestrator submits jobs to a Service and optionally polls them to a
// terminal status.
type Orchestrator struct {
	service Service
	now     func() time.Time
	sleep   SleepFunc
	log     *logger.Logger
	metrics *observability.JobMetrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock replaces time.Now for elapsed-time checks.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithSleep replaces the wait between status reads.
func WithSleep(sleep SleepFunc) Option {
	return func(o *Orchestrator) { o.sleep = sleep }
}

// WithLogger sets the logger. Defaults to the "transcription" component logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// WithMetrics records job outcomes and status reads on m.
func WithMetrics(m *observability.JobMetrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// NewOrchestrator creates an Orchestrator for service.
func NewOrchestrator(service Service, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		service: service,
		now:     time.Now,
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Get("transcription")
	}
	return o
}

// Service returns the backend the orchestrator drives.
func (o *Orchestrator) Service() Service {
	return o.service
}

// ResolveAudio returns the audio URL for ref, uploading UploadAudio first.
// Upload transport errors are returned unchanged.
func (o *Orchestrator) ResolveAudio(ctx context.Context, ref AudioReference) (string, error) {
	switch r := ref.(type) {
	case URLAudio:
		return r.URL, nil
	case UploadAudio:
		ctx, span := observability.StartSpan(ctx, observability.SpanUpload)
		defer span.End()

		o.log.WithContext(ctx).Debug("uploading audio", logger.Fields("file_name", r.FileName, "bytes", len(r.Data)))
		url, err := o.service.Upload(ctx, r)
		if err != nil {
			observability.SetSpanError(ctx, err)
			return "", err
		}
		return url, nil
	default:
		return "", errors.InvalidInput("audioSource", fmt.Sprintf("unsupported audio reference %T", ref))
	}
}

// SubmitAndMaybeWait submits payload once. Without wait it returns the
// submission response. With wait it polls the job every policy.Interval
// until the service reports done or error, or until policy.Timeout has
// elapsed. Elapsed time is checked before each sleep, so the total wait
// may exceed the timeout by up to one interval.
func (o *Orchestrator) SubmitAndMaybeWait(ctx context.Context, payload SubmissionPayload, wait bool, policy PollPolicy) (map[string]any, error) {
	start := o.now()
	log := o.log.WithContext(ctx)

	submitted, err := o.submit(ctx, payload)
	if err != nil {
		o.metrics.RecordJob(ctx, observability.OutcomeError, o.now().Sub(start))
		return nil, err
	}
	if !wait {
		o.metrics.RecordJob(ctx, observability.OutcomeSubmitted, o.now().Sub(start))
		return submitted, nil
	}

	handle := NewJobHandle(submitted)
	if !handle.Valid() {
		o.metrics.RecordJob(ctx, observability.OutcomeError, o.now().Sub(start))
		return nil, errors.MalformedSubmission()
	}

	result, outcome, err := o.wait(ctx, handle, policy)
	o.metrics.RecordJob(ctx, outcome, o.now().Sub(start))

	fields := logger.Fields(logger.FieldJobID, handle.ID, "outcome", outcome)
	switch {
	case err == nil:
		log.Info("transcription finished", fields)
	case outcome == observability.OutcomeFailed || outcome == observability.OutcomeTimeout:
		log.Warn("transcription did not finish", logger.MergeWithError(fields, err))
	}
	return result, err
}

func (o *Orchestrator) submit(ctx context.Context, payload SubmissionPayload) (map[string]any, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanSubmit)
	defer span.End()

	o.log.WithContext(ctx).Debug("submitting transcription job")
	resp, err := o.service.Submit(ctx, payload)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrJobID, stringField(resp, "id"))
	return resp, nil
}

// wait runs the poll loop against the target fixed at entry.
func (o *Orchestrator) wait(ctx context.Context, handle JobHandle, policy PollPolicy) (map[string]any, string, error) {
	target := handle.PollTarget()
	log := o.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldJobID, handle.ID,
		logger.FieldPollTarget, target,
	))

	start := o.now()
	for attempt := 1; o.now().Sub(start) < policy.Timeout; attempt++ {
		if err := o.sleep(ctx, policy.Interval); err != nil {
			return nil, observability.OutcomeError, err
		}

		outcome, err := o.poll(ctx, target, attempt)
		if err != nil {
			return nil, observability.OutcomeError, err
		}
		log.Debug("polled transcription", logger.Fields(logger.FieldAttempt, attempt, logger.FieldStatus, outcome.Status))

		switch outcome.State {
		case Done:
			return outcome.Payload, observability.OutcomeDone, nil
		case Failed:
			return nil, observability.OutcomeFailed, errors.TranscriptionFailed(outcome.Message)
		}
	}
	return nil, observability.OutcomeTimeout, errors.TranscriptionTimeout(policy.Timeout)
}

func (o *Orchestrator) poll(ctx context.Context, target string, attempt int) (PollOutcome, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanPoll)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrPollTarget, target)
	observability.SetSpanAttribute(ctx, observability.AttrAttempt, attempt)

	resp, err := o.service.Poll(ctx, target)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return PollOutcome{}, err
	}
	outcome := InterpretPoll(resp)
	observability.SetSpanAttribute(ctx, observability.AttrStatus, outcome.Status)
	o.metrics.RecordPoll(ctx, outcome.Status)
	return outcome, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
