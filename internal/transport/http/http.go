package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ecomlabs/checkout/internal/service/models/order"
	"github.com/ecomlabs/checkout/internal/service/models/pagination"
	"github.com/ecomlabs/checkout/internal/service/models/product"
	listorders "github.com/ecomlabs/checkout/internal/transport/http/list_orders"
	listproducts "github.com/ecomlabs/checkout/internal/transport/http/list_products"
	placeorder "github.com/ecomlabs/checkout/internal/transport/http/place_order"
	updatestatus "github.com/ecomlabs/checkout/internal/transport/http/update_status"
	"github.com/ecomlabs/checkout/pkg/http/middleware/trace"
	"github.com/ecomlabs/checkout/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type service interface {
	PlaceOrder(ctx context.Context, userID int64, items []order.RequestedItem) (order.Order, error)
	ListOrders(ctx context.Context, userID int64, page, pageSize int) (pagination.Page[order.Order], error)
	UpdateOrderStatus(ctx context.Context, orderID int64, next order.Status) (order.Order, error)
	ListProducts(ctx context.Context, page, pageSize int) (pagination.Page[product.Product], error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/orders", h.placeOrder)
		r.Get("/orders", h.listOrders)
		r.Patch("/orders/{orderID}/status", h.updateStatus)
		r.Get("/products", h.listProducts)
	})
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	placeorder.PlaceOrder(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.service)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
