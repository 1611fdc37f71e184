package api

import (
	"net/http"

	"github.com/Tonn-hash/galeria-de-prompts/internal/favorites"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Session.Routes(),
		favorites.NewHandler(domain.Favorites, runtime.Catalog, runtime.Logger).Routes(),
		domain.Profiles.Handler().Routes(),
	)
	routes.Register(mux, domain.Gallery.Routes()...)
}
