package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/TemirB/storefront/internal/auth"
	"github.com/TemirB/storefront/internal/domain"
	"github.com/TemirB/storefront/internal/events"
	"github.com/TemirB/storefront/internal/observability"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/store_mock_test.go -package=httpapi

// Store is the state-store surface the handlers need.
type Store interface {
	OrdersForUser(user string) []domain.Order
	OrdersForSeller(sellerID int64, onlyPending bool) []domain.Order
	PlaceOrder(req domain.OrderRequest) (int64, error)
	UpdateOrder(orderID int64, upd domain.OrderUpdate) (bool, error)
	CreateSeller(name, passwordHash string) (domain.Seller, error)
	SellerByName(name string) (domain.Seller, bool)
}

type Server struct {
	store      Store
	auth       *auth.Manager
	events     events.Publisher
	logger     *zap.Logger
	metrics    observability.Metrics
	router     chi.Router
	bcryptCost int
}

func New(store Store, authMgr *auth.Manager, publisher events.Publisher, logger *zap.Logger, metrics observability.Metrics, bcryptCost int) *Server {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	s := &Server{
		store:      store,
		auth:       authMgr,
		events:     publisher,
		logger:     logger,
		metrics:    metrics,
		bcryptCost: bcryptCost,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(ServerTimingApp(s.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.signup)
		r.Post("/auth/login", s.login)

		r.Route("/order", func(r chi.Router) {
			r.Get("/user", s.userOrders)
			r.Post("/user/place", s.placeOrder)

			r.Group(func(r chi.Router) {
				r.Use(s.requireSeller)
				r.Get("/seller", s.sellerOrders)
				r.Post("/seller/update", s.updateOrder)
			})
		})
	})

	s.router = r
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "service error")
		return
	}

	seller, err := s.store.CreateSeller(req.Username, hash)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "User already exists")
			return
		}
		s.logger.Error("signup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "service error")
		return
	}

	s.events.Publish(req.Username, events.NewEnvelope(events.TypeSellerCreated, events.SellerCreatedPayload{
		SellerID: seller.ID,
		Name:     seller.Name,
	}))
	writeJSON(w, http.StatusOK, map[string]any{"message": "User created successfully"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if _, err := s.auth.FromRequest(r); err == nil {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Already logged in"})
		return
	}

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	seller, ok := s.store.SellerByName(req.Username)
	if !ok || !auth.CheckPassword(seller.Password, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := s.auth.Sign(seller.Name)
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "service error")
		return
	}
	s.auth.SetCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Login successful", "token": token})
}

func (s *Server) userOrders(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  nonNil(s.store.OrdersForUser(user)),
	})
}

type placeOrderRequest struct {
	SellerID  int64   `json:"seller_id"`
	ProductID int64   `json:"product_id"`
	User      string  `json:"user"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Note      string  `json:"note"`
}

func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.User == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	orderID, err := s.store.PlaceOrder(domain.OrderRequest{
		SellerID:  req.SellerID,
		ProductID: req.ProductID,
		User:      req.User,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Note:      req.Note,
	})
	if err != nil {
		s.logger.Error("place order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "service error")
		return
	}

	s.events.Publish(strconv.FormatInt(orderID, 10), events.NewEnvelope(events.TypeOrderPlaced, events.OrderPlacedPayload{
		OrderID:   orderID,
		SellerID:  req.SellerID,
		ProductID: req.ProductID,
		User:      req.User,
		Quantity:  req.Quantity,
		Price:     req.Price,
	}))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order_id": orderID})
}

func (s *Server) sellerOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sellerID, err := strconv.ParseInt(q.Get("seller_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "seller_id is required")
		return
	}

	// An absent only_pending filters to pending orders; callers have to opt
	// out explicitly with only_pending=false.
	onlyPending := true
	if raw := q.Get("only_pending"); raw != "" {
		onlyPending, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "only_pending must be a boolean")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  nonNil(s.store.OrdersForSeller(sellerID, onlyPending)),
	})
}

type updateOrderRequest struct {
	OrderID int64          `json:"order_id"`
	Status  *domain.Status `json:"status,omitempty"`
	Paid    *bool          `json:"paid,omitempty"`
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "status must be pending, completed or canceled")
		return
	}

	found, err := s.store.UpdateOrder(req.OrderID, domain.OrderUpdate{Status: req.Status, Paid: req.Paid})
	if err != nil {
		s.logger.Error("update order failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "service error")
		return
	}

	if found {
		s.events.Publish(strconv.FormatInt(req.OrderID, 10), events.NewEnvelope(events.TypeOrderUpdated, events.OrderUpdatedPayload{
			OrderID: req.OrderID,
			Status:  req.Status,
			Paid:    req.Paid,
		}))
	}
	// An unknown id is reported in-band, the way the UI expects it.
	writeJSON(w, http.StatusOK, map[string]any{"success": found})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func nonNil(orders []domain.Order) []domain.Order {
	if orders == nil {
		return []domain.Order{}
	}
	return orders
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	// Shutdown has been invoked; wait until in-flight handlers are drained so
	// the caller can safely tear down the publisher and the store.
	return <-shutdownErr
}
