package api

import (
	"enrollment-dashboard/internal/api/handler"
	"enrollment-dashboard/pkg/router"

	_ "enrollment-dashboard/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterRoutes mounts the dashboard API on r. Wildcard routes are matched
// in registration order, so session sub-resources come before the generic
// session route.
func RegisterRoutes(r *router.Router, h *handler.DashboardHandler, swagger bool) {
	r.GET("/", h.Index)
	r.GET("/api/v1/years", h.ListYears)
	r.POST("/api/v1/sessions", h.CreateSession)
	r.GET("/api/v1/sessions", h.ListSessions)
	// More specific routes first
	r.POST("/api/v1/sessions/*/year", h.SelectYear)
	r.GET("/api/v1/sessions/*/brush/stream", h.BrushStream)
	r.POST("/api/v1/sessions/*/brush", h.Brush)
	r.DELETE("/api/v1/sessions/*/brush", h.ClearBrush)
	r.GET("/api/v1/sessions/*/charts/*", h.GetChart)
	r.GET("/api/v1/sessions/*/pie/slices", h.GetPieSlices)
	r.POST("/api/v1/sessions/*/pie/tooltip", h.PieTooltip)
	r.POST("/api/v1/sessions/*/highlight", h.Highlight)
	r.DELETE("/api/v1/sessions/*/highlight", h.Unhighlight)
	// Generic session route last
	r.GET("/api/v1/sessions/*", h.GetSession)
	r.DELETE("/api/v1/sessions/*", h.DeleteSession)

	if swagger {
		r.GET("/swagger/*", router.HandlerFunc(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}
}
