package bootstrap

import (
	"fmt"
	"io"
	"time"

	"github.com/kbukum/gladiaflow/component"
)

// writeSummary prints the startup tree: described components with their
// health, then routes from any RouteProvider. health is aligned with comps.
func writeSummary(w io.Writer, name, version string, took time.Duration, comps []component.Component, health []component.Health) {
	fmt.Fprintf(w, "\n%s %s started in %.2fs\n", name, version, took.Seconds())

	type row struct {
		desc   component.Description
		status component.HealthStatus
	}
	var rows []row
	var routes []component.Route
	for i, c := range comps {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
			rows = append(rows, row{desc: desc, status: health[i].Status})
		}
		if rp, ok := c.(component.RouteProvider); ok {
			routes = append(routes, rp.Routes()...)
		}
	}

	if len(rows) > 0 {
		fmt.Fprintln(w, "\nComponents")
		for i, r := range rows {
			line := r.desc.Details
			if r.desc.Port > 0 {
				line = fmt.Sprintf("%s (:%d)", line, r.desc.Port)
			}
			fmt.Fprintf(w, "   %s %s %s [%s]: %s\n", treePrefix(i, len(rows)), statusMark(r.status), r.desc.Name, r.desc.Type, line)
		}
	}
	if len(routes) > 0 {
		fmt.Fprintln(w, "\nRoutes")
		for i, r := range routes {
			fmt.Fprintf(w, "   %s %-6s %s\n", treePrefix(i, len(routes)), r.Method, r.Path)
		}
	}
	fmt.Fprintln(w)
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func statusMark(s component.HealthStatus) string {
	switch s {
	case component.StatusHealthy:
		return "✓"
	case component.StatusDegraded:
		return "!"
	default:
		return "✗"
	}
}
