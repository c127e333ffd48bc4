package api

import (
	"net/http"

	"github.com/mwhitfield/placard/internal/config"
	"github.com/mwhitfield/placard/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	guard := domain.Users.Guard

	routes.Register(
		mux,
		domain.Users.Handler().Routes(),
		guardGroup(domain.Signatories.Handler().Routes(), guard),
		domain.Announcements.Handler(cfg.API.MaxUploadSizeBytes(), guard).Routes(),
	)
}

// guardGroup wraps every route in the group with the auth guard. Used for
// groups whose endpoints all require authentication; groups with public
// endpoints guard per route instead.
func guardGroup(
	g routes.Group,
	guard func(http.HandlerFunc) http.HandlerFunc,
) routes.Group {
	for i := range g.Routes {
		g.Routes[i].Handler = guard(g.Routes[i].Handler)
	}
	for i := range g.Children {
		g.Children[i] = guardGroup(g.Children[i], guard)
	}
	return g
}
