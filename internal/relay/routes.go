package relay

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the webhook endpoint on the given router.
func RegisterRoutes(r chi.Router, p *Pipeline) {
	r.Post("/events", p.HandleEvent)
}
