// Package server assembles the client runtime: store, notifier, services
// and the console HTTP server that mirrors them to browser surfaces.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sommystore/storefront/app/controllers"
	"github.com/sommystore/storefront/app/repositories"
	"github.com/sommystore/storefront/app/routes"
	"github.com/sommystore/storefront/app/services"
	"github.com/sommystore/storefront/config"
	"github.com/sommystore/storefront/pkg/bus"
	"github.com/sommystore/storefront/pkg/logger"
	"github.com/sommystore/storefront/pkg/metrics"
	"github.com/sommystore/storefront/pkg/middleware"
	"github.com/sommystore/storefront/pkg/router"
	"github.com/sommystore/storefront/pkg/store"
	"github.com/sommystore/storefront/pkg/ws"
)

// App is the assembled client: one store, one notifier, and every service
// wired over them. CLI commands and the console server share the same App.
type App struct {
	Store *store.Store
	Bus   *bus.Bus

	Cart        *services.CartService
	Session     *services.SessionService
	Auth        *services.AuthService
	Orders      *services.OrderService
	Checkout    *services.CheckoutService
	Subscribers *services.SubscriberService
	Products    *repositories.ProductRepository
}

// New loads configuration, opens the persistent store and wires the
// services together.
func New() (*App, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	logger.Setup(config.AppEnv())

	st, err := store.Open()
	if err != nil {
		return nil, err
	}
	b := bus.New()

	session := services.NewSessionService(st, b)
	auth := services.NewAuthService(st, session, repositories.NewAuthRepository())
	cart := services.NewCartService(st, b)
	orderRepo := repositories.NewOrderRepository()

	return &App{
		Store:       st,
		Bus:         b,
		Cart:        cart,
		Session:     session,
		Auth:        auth,
		Orders:      services.NewOrderService(session, auth, orderRepo),
		Checkout:    services.NewCheckoutService(cart, session, orderRepo),
		Subscribers: services.NewSubscriberService(st, repositories.NewSubscriberRepository()),
		Products:    repositories.NewProductRepository(),
	}, nil
}

// Serve runs the console server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	hub := ws.NewHub()
	go hub.Run()

	events := controllers.NewEventsController(a.Bus, hub, a.Cart, a.Session)
	events.BridgeToHub()

	r := router.New()
	r.Use(
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware,
	)

	routes.Register(r, routes.Controllers{
		Cart:        controllers.NewCartController(a.Cart),
		Session:     controllers.NewSessionController(a.Session, a.Auth),
		Orders:      controllers.NewOrderController(a.Orders, a.Checkout),
		Products:    controllers.NewProductController(a.Products, a.Auth),
		Subscribers: controllers.NewSubscriberController(a.Subscribers),
		Events:      events,
	})

	srv := &http.Server{
		Addr:              config.ConsoleAddr(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("console: listening", "addr", srv.Addr, "env", config.AppEnv())
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
