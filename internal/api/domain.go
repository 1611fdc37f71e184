package api

import (
	"github.com/Tonn-hash/galeria-de-prompts/internal/favorites"
	"github.com/Tonn-hash/galeria-de-prompts/internal/gallery"
	"github.com/Tonn-hash/galeria-de-prompts/internal/profiles"
	"github.com/Tonn-hash/galeria-de-prompts/internal/session"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Session   *session.Handler
	Favorites *favorites.Set
	Profiles  profiles.System
	Gallery   *gallery.Handler
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	favs := favorites.NewSet(runtime.Favorites, runtime.Logger)

	return &Domain{
		Session:   session.NewHandler(runtime.Resolver, runtime.Logger),
		Favorites: favs,
		Profiles:  profiles.New(runtime.Database.Connection(), runtime.Logger),
		Gallery: gallery.NewHandler(
			runtime.Catalog,
			runtime.Engine,
			favs,
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
