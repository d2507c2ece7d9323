package observability

import (
	"context"
	"fmt"

	"github.com/kbukum/gladiaflow/component"
)

const componentName = "telemetry"

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component installs the exporters on Start and flushes them on Stop.
type Component struct {
	cfg         Config
	service     string
	version     string
	environment string
	shutdown    ShutdownFunc
}

// NewComponent creates a telemetry component for the given service identity.
func NewComponent(cfg Config, service, version, environment string) *Component {
	return &Component{cfg: cfg, service: service, version: version, environment: environment}
}

// Name returns the component name.
func (c *Component) Name() string { return componentName }

// Start runs Setup.
func (c *Component) Start(ctx context.Context) error {
	shutdown, err := Setup(ctx, c.cfg, c.service, c.version, c.environment)
	if err != nil {
		return err
	}
	c.shutdown = shutdown
	return nil
}

// Stop flushes and shuts down the providers installed by Start.
func (c *Component) Stop(ctx context.Context) error {
	if c.shutdown == nil {
		return nil
	}
	err := c.shutdown(ctx)
	c.shutdown = nil
	return err
}

// Health reports healthy; export failures surface through the SDK's error handler.
func (c *Component) Health(context.Context) component.Health {
	h := component.Health{Name: componentName, Status: component.StatusHealthy}
	if !c.cfg.Enabled {
		h.Message = "export disabled"
	}
	return h
}

// Describe returns summary info for the startup display.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled {
		details = fmt.Sprintf("otlp/http %s sample=%g", c.cfg.Endpoint, c.cfg.SampleRate)
	}
	return component.Description{Name: "OpenTelemetry", Type: "telemetry", Details: details}
}
