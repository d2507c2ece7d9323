package server

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/gladiaflow/errors"
	"github.com/kbukum/gladiaflow/storage"
	"github.com/kbukum/gladiaflow/transcription"
)

// ExecutionsPath is the batch execution route.
const ExecutionsPath = "/v1/executions"

// ExecutionRequest is the body of POST /v1/executions.
type ExecutionRequest struct {
	// ContinueOnFail overrides the configured default when set.
	ContinueOnFail *bool           `json:"continueOnFail"`
	Items          []ExecutionItem `json:"items" binding:"required,min=1"`
}

// ExecutionItem is one batch item: its parameters plus any binary
// attachments keyed by property name.
type ExecutionItem struct {
	Params transcription.Params      `json:"params"`
	Binary map[string]storage.Binary `json:"binary,omitempty"`
}

// ExecutionDefaults are the server-wide fallbacks for a batch.
type ExecutionDefaults struct {
	PollPolicy     transcription.PollPolicy
	ContinueOnFail bool
	// WaitForCompletion, when set, applies to items that leave it unset.
	WaitForCompletion *bool
}

// RegisterExecutions mounts the batch execution route.
func (s *Server) RegisterExecutions(o *transcription.Orchestrator, defaults ExecutionDefaults) {
	s.engine.POST(ExecutionsPath, Executions(o, defaults))
}

// Executions runs the posted batch through a fresh Executor and answers
// {"data":[results...]}. A batch aborted by an item error answers with that
// item's error envelope.
func Executions(o *transcription.Orchestrator, defaults ExecutionDefaults) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExecutionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondWithError(c, apperrors.InvalidInput("body", err.Error()))
			return
		}

		binaries := storage.NewMemoryStore()
		items := make([]transcription.Params, len(req.Items))
		for i, item := range req.Items {
			items[i] = item.Params
			if items[i].WaitForCompletion == nil && defaults.WaitForCompletion != nil {
				wait := *defaults.WaitForCompletion
				items[i].WaitForCompletion = &wait
			}
			for field, b := range item.Binary {
				binaries.Put(i, field, b)
			}
		}

		continueOnFail := defaults.ContinueOnFail
		if req.ContinueOnFail != nil {
			continueOnFail = *req.ContinueOnFail
		}

		exec := transcription.NewExecutor(o, binaries, transcription.WithDefaultPollPolicy(defaults.PollPolicy))
		results, err := exec.Execute(c.Request.Context(), items, continueOnFail)
		if err != nil {
			_ = c.Error(err)
			RespondWithError(c, err)
			return
		}
		RespondOK(c, results)
	}
}
