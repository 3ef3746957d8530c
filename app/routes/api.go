// Package routes wires the console server's HTTP surface.
package routes

import (
	"github.com/sommystore/storefront/app/controllers"
	"github.com/sommystore/storefront/pkg/metrics"
	"github.com/sommystore/storefront/pkg/router"
)

// Controllers groups everything the route table mounts.
type Controllers struct {
	Cart        *controllers.CartController
	Session     *controllers.SessionController
	Orders      *controllers.OrderController
	Products    *controllers.ProductController
	Subscribers *controllers.SubscriberController
	Events      *controllers.EventsController
}

// Register mounts every route on the router.
func Register(r *router.Router, c Controllers) {
	api := r.Group("/api")

	api.Get("/cart", "cart.show", c.Cart.Show)
	api.Post("/cart/items", "cart.add", c.Cart.Add)
	api.Put("/cart/items/{index}", "cart.quantity", c.Cart.SetQuantity)
	api.Delete("/cart/items/{index}", "cart.remove", c.Cart.Remove)
	api.Delete("/cart", "cart.clear", c.Cart.Clear)

	api.Get("/session", "session.show", c.Session.Show)
	api.Post("/auth/login", "auth.login", c.Session.SignIn)
	api.Post("/auth/register", "auth.register", c.Session.SignUp)
	api.Post("/auth/logout", "auth.logout", c.Session.SignOut)
	api.Post("/auth/admin/login", "auth.admin.login", c.Session.AdminSignIn)
	api.Post("/auth/admin/register", "auth.admin.register", c.Session.AdminSignUp)
	api.Post("/auth/admin/logout", "auth.admin.logout", c.Session.AdminSignOut)
	api.Post("/auth/reset/request", "auth.reset.request", c.Session.RequestReset)
	api.Post("/auth/reset", "auth.reset", c.Session.ResetPassword)

	api.Get("/orders", "orders.mine", c.Orders.Mine)
	api.Get("/orders/all", "orders.all", c.Orders.All)
	api.Post("/orders/{id}/cancel", "orders.cancel", c.Orders.Cancel)
	api.Put("/orders/{id}/status", "orders.status", c.Orders.UpdateStatus)
	api.Get("/checkout/totals", "checkout.totals", c.Orders.Totals)
	api.Post("/checkout", "checkout.place", c.Orders.Checkout)

	api.Get("/products", "products.index", c.Products.Index)
	api.Get("/products/{id}", "products.show", c.Products.Show)
	api.Post("/products", "products.create", c.Products.Create)
	api.Put("/products/{id}", "products.update", c.Products.Update)
	api.Delete("/products/{id}", "products.delete", c.Products.Delete)

	api.Post("/subscribe", "subscribe", c.Subscribers.Subscribe)

	r.Get("/events", "events.stream", c.Events.Stream)
	r.Get("/ws", "events.socket", c.Events.Socket)
	r.Mount("/metrics", "metrics", metrics.Handler())
}
