package routes

import (
	"net/http"

	"github.com/agrisetu/agrisetu/app/controllers"
	"github.com/agrisetu/agrisetu/config"
	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/metrics"
	"github.com/agrisetu/agrisetu/pkg/middleware"
	"github.com/agrisetu/agrisetu/pkg/rbac"
	"github.com/agrisetu/agrisetu/pkg/router"
	"github.com/agrisetu/agrisetu/pkg/ws"
)

// Controllers bundles the constructed controllers for route registration.
type Controllers struct {
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Crops     *controllers.CropController
	Storage   *controllers.StorageController
	Transport *controllers.TransportController
	Bookings  *controllers.BookingController
	Contact   *controllers.ContactController
	Uploads   *controllers.UploadController
	GraphQL   http.HandlerFunc
	Hub       *ws.Hub
}

// RegisterAPI mounts every HTTP endpoint on the router.
func RegisterAPI(r *router.Router, c Controllers) {
	r.HandleFunc("/metrics", metrics.Handler())

	// uploaded files, when the local disk is the default
	if config.StorageDefault() == "local" {
		files := http.StripPrefix("/storage/", http.FileServer(http.Dir(config.StorageLocalRoot())))
		r.HandleFunc("/storage/*", files.ServeHTTP)
	}

	api := r.Group("/api")

	api.Post("/auth/register", "auth.register", ctx.Wrap(c.Auth.Register))
	api.Post("/auth/login", "auth.login", ctx.Wrap(c.Auth.Login))
	api.Get("/auth/logout", "auth.logout", ctx.Wrap(c.Auth.Logout))

	api.Post("/contact", "contact.store", ctx.Wrap(c.Contact.Store))

	// marketplace reads are public
	api.Get("/crops", "crops.index", ctx.Wrap(c.Crops.Index))
	api.Get("/crops/{id}", "crops.show", ctx.Wrap(c.Crops.Show))
	api.Get("/storage", "storage.index", ctx.Wrap(c.Storage.Index))
	api.Get("/storage/{id}", "storage.show", ctx.Wrap(c.Storage.Show))
	api.Get("/transport", "transport.index", ctx.Wrap(c.Transport.Index))
	api.Get("/transport/{id}", "transport.show", ctx.Wrap(c.Transport.Show))

	if c.GraphQL != nil {
		api.Get("/graphql", "graphql", c.GraphQL)
		api.Post("/graphql", "graphql.post", c.GraphQL)
	}

	protected := api.Group("", middleware.Auth)

	protected.Get("/auth/verify", "auth.verify", ctx.Wrap(c.Auth.Verify))

	protected.Get("/users/{id}", "users.show", ctx.Wrap(c.Users.Show))
	protected.Put("/users/{id}", "users.update", ctx.Wrap(c.Users.Update))
	protected.Put("/users/{id}/password", "users.password", ctx.Wrap(c.Users.ChangePassword))

	farmers := rbac.HasUserType("farmer", "cooperative")
	protected.Post("/crops", "crops.store", ctx.Wrap(c.Crops.Store), farmers)
	protected.Put("/crops/{id}", "crops.update", ctx.Wrap(c.Crops.Update), farmers)
	protected.Delete("/crops/{id}", "crops.destroy", ctx.Wrap(c.Crops.Destroy), farmers)

	protected.Post("/storage", "storage.store", ctx.Wrap(c.Storage.Store),
		rbac.HasUserType("storage", "cooperative"))
	protected.Post("/transport", "transport.store", ctx.Wrap(c.Transport.Store),
		rbac.HasUserType("transporter", "cooperative"))

	protected.Get("/bookings/storage", "bookings.storage.index", ctx.Wrap(c.Bookings.IndexStorage))
	protected.Post("/bookings/storage", "bookings.storage.store", ctx.Wrap(c.Bookings.StoreStorage))
	protected.Patch("/bookings/storage/{id}/status", "bookings.storage.status", ctx.Wrap(c.Bookings.UpdateStorageStatus))
	protected.Get("/bookings/transport", "bookings.transport.index", ctx.Wrap(c.Bookings.IndexTransport))
	protected.Post("/bookings/transport", "bookings.transport.store", ctx.Wrap(c.Bookings.StoreTransport))
	protected.Patch("/bookings/transport/{id}/status", "bookings.transport.status", ctx.Wrap(c.Bookings.UpdateTransportStatus))

	protected.Post("/uploads", "uploads.store", ctx.Wrap(c.Uploads.Store))

	if c.Hub != nil {
		r.Get("/ws/bookings", "ws.bookings", func(w http.ResponseWriter, req *http.Request) {
			ws.Upgrade(w, req, c.Hub)
		})
	}
}
