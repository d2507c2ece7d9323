package transcription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/gladiaflow/errors"
	"github.com/kbukum/gladiaflow/logger"
	"github.com/kbukum/gladiaflow/observability"
	"github.com/kbukum/gladiaflow/storage"
)

// ItemResult is the output of one batch item. PairedItem is set only on
// error results captured under continue-on-fail.
type ItemResult struct {
	JSON       map[string]any `json:"json"`
	PairedItem *PairedItem    `json:"pairedItem,omitempty"`
}

// PairedItem ties a result to its input index.
type PairedItem struct {
	Item int `json:"item"`
}

// Executor runs a batch of items through an Orchestrator, one at a time.
type Executor struct {
	orchestrator *Orchestrator
	binaries     storage.BinaryStore
	policy       PollPolicy
	log          *logger.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithDefaultPollPolicy sets the policy used for items that leave
// polling values unset.
func WithDefaultPollPolicy(p PollPolicy) ExecutorOption {
	return func(e *Executor) { e.policy = p }
}

// NewExecutor creates an Executor. binaries may be nil when no item uses
// binary audio.
func NewExecutor(o *Orchestrator, binaries storage.BinaryStore, opts ...ExecutorOption) *Executor {
	e := &Executor{
		orchestrator: o,
		binaries:     binaries,
		policy:       DefaultPollPolicy(),
		log:          o.log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute processes items in order. With continueOnFail an item error
// becomes an error result tagged with the item index and the batch goes
// on; otherwise the first error aborts the batch.
func (e *Executor) Execute(ctx context.Context, items []Params, continueOnFail bool) ([]ItemResult, error) {
	executionID := uuid.NewString()
	ctx = logger.ContextWithExecutionID(ctx, executionID)
	ctx, span := observability.StartSpan(ctx, observability.SpanExecute)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrExecutionID, executionID)

	log := e.log.WithContext(ctx)
	start := time.Now()
	log.Info("executing batch", logger.Fields("items", len(items), "continue_on_fail", continueOnFail))

	results := make([]ItemResult, 0, len(items))
	for i, params := range items {
		out, err := e.runItem(ctx, i, params)
		if err != nil {
			if !continueOnFail {
				observability.SetSpanError(ctx, err)
				log.Error("batch aborted", logger.MergeWithError(logger.Fields(logger.FieldItemIndex, i), err))
				return nil, err
			}
			log.Warn("item failed, continuing", logger.MergeWithError(logger.Fields(logger.FieldItemIndex, i), err))
			results = append(results, ErrorResult(i, err))
			continue
		}
		results = append(results, ItemResult{JSON: out})
	}

	log.Info("batch finished", logger.DurationFields("execute", time.Since(start)))
	return results, nil
}

func (e *Executor) runItem(ctx context.Context, index int, params Params) (map[string]any, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanItem)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrItemIndex, index)

	out, err := e.process(ctx, index, params)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return out, err
}

func (e *Executor) process(ctx context.Context, index int, params Params) (map[string]any, error) {
	params.ApplyDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ref, err := e.audioReference(ctx, index, params)
	if err != nil {
		return nil, err
	}
	audioURL, err := e.orchestrator.ResolveAudio(ctx, ref)
	if err != nil {
		return nil, err
	}

	payload := BuildPayload(audioURL, params.FeatureOptions())
	return e.orchestrator.SubmitAndMaybeWait(ctx, payload, *params.WaitForCompletion, params.PollPolicy(e.policy))
}

func (e *Executor) audioReference(ctx context.Context, index int, params Params) (AudioReference, error) {
	if params.AudioSource != AudioSourceBinary {
		return URLAudio{URL: params.AudioURL}, nil
	}
	if e.binaries == nil {
		return nil, storage.NotFound(index, params.BinaryPropertyName)
	}
	b, err := e.binaries.Binary(ctx, index, params.BinaryPropertyName)
	if err != nil {
		return nil, err
	}
	fileName := b.FileName
	if fileName == "" {
		fileName = storage.DefaultFileName
	}
	return UploadAudio{Data: b.Data, FileName: fileName, MimeType: b.MimeType}, nil
}

// ErrorResult converts an item error into its result form. AppErrors
// contribute their message; other errors their Error text.
func ErrorResult(index int, err error) ItemResult {
	msg := err.Error()
	if appErr, ok := errors.AsAppError(err); ok {
		msg = appErr.Message
	}
	return ItemResult{
		JSON:       map[string]any{"error": msg},
		PairedItem: &PairedItem{Item: index},
	}
}
