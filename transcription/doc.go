// Package transcription turns batch items into transcription jobs.
//
// BuildPayload maps FeatureOptions onto a SubmissionPayload. The
// Orchestrator resolves audio (uploading binaries when needed), submits the
// payload once and, when asked to wait, polls the job until the service
// reports done or error or the poll timeout elapses. The Executor runs a
// batch of Params through the Orchestrator in order, isolating item errors
// when continue-on-fail is set.
//
// Backends implement Service and register a factory in a Registry under
// their provider name; transcription/gladia is the Gladia v2 API.
// Component exposes a Service to the bootstrap lifecycle.
//
// # Usage
//
//	services := transcription.NewRegistry()
//	services.RegisterFactory(gladia.ProviderName, gladia.Factory(gladia.Config{APIKey: key}))
//	svc, _ := services.Create(gladia.ProviderName, nil)
//	orch := transcription.NewOrchestrator(svc)
//	exec := transcription.NewExecutor(orch, storage.NewMemoryStore())
//	results, err := exec.Execute(ctx, items, true)
package transcription
