package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/labauth/component"
)

// Summary is the startup report printed once the application is ready.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration

	infrastructure []component.Description
	routes         []component.Route
	health         []component.Health
}

// NewSummary creates a summary for a service that took d to start.
func NewSummary(serviceName, version string, d time.Duration) *Summary {
	return &Summary{serviceName: serviceName, version: version, startupDuration: d}
}

// Collect reads descriptions, routes and live health from the registry.
func (s *Summary) Collect(ctx context.Context, registry *component.Registry) {
	s.infrastructure = registry.Descriptions()
	s.routes = registry.Routes()
	s.health = registry.HealthAll(ctx)
}

// Render writes the summary as a tree.
func (s *Summary) Render(w io.Writer) {
	version := s.version
	if version == "" {
		version = "dev"
	}
	fmt.Fprintf(w, "\n🚀 %s %s started in %.2fs\n", s.serviceName, version, s.startupDuration.Seconds())

	if len(s.infrastructure) > 0 {
		fmt.Fprintf(w, "\n📊 Infrastructure\n")
		for i, inf := range s.infrastructure {
			fmt.Fprintf(w, "   %s %s: %s\n", branch(i, len(s.infrastructure)), inf.Name, inf.Details)
		}
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(w, "\n🌐 Routes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(w, "   %s %-7s %s → %s\n", branch(i, len(s.routes)), r.Method, r.Path, r.Handler)
		}
	}

	if len(s.health) > 0 {
		fmt.Fprintf(w, "\n🏥 Health Check\n")
		healthy := 0
		for i, h := range s.health {
			msg := ""
			if h.Message != "" {
				msg = " (" + h.Message + ")"
			}
			if h.Status == component.StatusHealthy {
				healthy++
			}
			fmt.Fprintf(w, "   %s %s %s: %s%s\n", branch(i, len(s.health)), healthIcon(h.Status), h.Name,
				strings.ToLower(string(h.Status)), msg)
		}
		if healthy == len(s.health) {
			fmt.Fprintf(w, "\n✅ All components healthy (%d/%d)\n", healthy, len(s.health))
		} else {
			fmt.Fprintf(w, "\n⚠️  Some components have issues (%d/%d healthy)\n", healthy, len(s.health))
		}
	}
	fmt.Fprintln(w)
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
