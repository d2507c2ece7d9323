package transcription

import (
	"context"
	"time"

	"github.com/kbukum/gladiaflow/logger"
)

// fakeService records calls and replays scripted responses. The last
// poll response repeats once the script runs out.
type fakeService struct {
	submitFn  func(call int, p SubmissionPayload) (map[string]any, error)
	polls     []map[string]any
	pollErr   error
	uploadURL string
	uploadErr error

	submitted []SubmissionPayload
	targets   []string
	uploads   []UploadAudio
}

func (f *fakeService) Name() string                       { return "fake" }
func (f *fakeService) IsAvailable(_ context.Context) bool { return true }

func (f *fakeService) Submit(_ context.Context, p SubmissionPayload) (map[string]any, error) {
	call := len(f.submitted)
	f.submitted = append(f.submitted, p)
	if f.submitFn != nil {
		return f.submitFn(call, p)
	}
	return map[string]any{"id": "job-1"}, nil
}

func (f *fakeService) Poll(_ context.Context, target string) (map[string]any, error) {
	f.targets = append(f.targets, target)
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	if len(f.polls) == 0 {
		return map[string]any{"status": "processing"}, nil
	}
	i := min(len(f.targets)-1, len(f.polls)-1)
	return f.polls[i], nil
}

func (f *fakeService) Upload(_ context.Context, a UploadAudio) (string, error) {
	f.uploads = append(f.uploads, a)
	return f.uploadURL, f.uploadErr
}

// fakeClock advances only when Sleep is called.
type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestOrchestrator(svc Service, clock *fakeClock) *Orchestrator {
	return NewOrchestrator(svc,
		WithClock(clock.Now),
		WithSleep(clock.Sleep),
		WithLogger(logger.Nop()),
	)
}
