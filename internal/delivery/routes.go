package delivery

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, hResources *ResourceHandler) {
	r.Route("/resources", func(r chi.Router) {
		r.Get("/all", hResources.List)
		r.Get("/{id}", hResources.Get)
		r.Post("/add", hResources.Add)
		r.Put("/update/{id}", hResources.Update)
		r.Delete("/delete/{id}", hResources.Delete)
	})
}
