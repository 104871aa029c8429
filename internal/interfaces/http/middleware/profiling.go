package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Profiling labels attached to samples taken while a request is served
const (
	ProfilingLabelRoute        = "route"
	ProfilingLabelMethod       = "method"
	ProfilingLabelOrganization = "organization_id"
)

// Profiling tags CPU samples with route, method and organization so Pyroscope can
// slice profiles per endpoint. Disabled, it passes requests through.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || skipPath(c.Request.URL.Path, []string{"/health"}, []string{"/swagger"}) {
			c.Next()
			return
		}

		labels := []string{ProfilingLabelRoute, route, ProfilingLabelMethod, c.Request.Method}
		if org, ok := GetOrganizationID(c); ok {
			labels = append(labels, ProfilingLabelOrganization, org.String())
		}

		pyroscope.TagWrapper(c.Request.Context(), pyroscope.Labels(labels...), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
