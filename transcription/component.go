package transcription

import (
	"context"

	"github.com/kbukum/gladiaflow/component"
	"github.com/kbukum/gladiaflow/provider"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component exposes a Service to the component registry. Health runs the
// service's credential test when it has one, else IsAvailable.
type Component struct {
	svc Service
}

// NewComponent wraps svc.
func NewComponent(svc Service) *Component {
	return &Component{svc: svc}
}

// Service returns the wrapped service.
func (c *Component) Service() Service { return c.svc }

// Name returns the service name.
func (c *Component) Name() string { return c.svc.Name() }

// Start is a no-op; services are ready once constructed.
func (c *Component) Start(context.Context) error { return nil }

// Stop closes the service if it holds resources.
func (c *Component) Stop(ctx context.Context) error {
	if cl, ok := c.svc.(provider.Closeable); ok {
		return cl.Close(ctx)
	}
	return nil
}

// Health reports the credential test result.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.svc.Name(), Status: component.StatusHealthy}
	if checker, ok := c.svc.(CredentialChecker); ok {
		if err := checker.CheckCredentials(ctx); err != nil {
			h.Status = component.StatusUnhealthy
			h.Message = "credential test failed: " + err.Error()
		}
		return h
	}
	if !c.svc.IsAvailable(ctx) {
		h.Status = component.StatusUnhealthy
		h.Message = "service unavailable"
	}
	return h
}

// Describe returns the service's own description when it has one.
func (c *Component) Describe() component.Description {
	if d, ok := c.svc.(component.Describable); ok {
		return d.Describe()
	}
	return component.Description{Name: c.svc.Name(), Type: "transcription"}
}
