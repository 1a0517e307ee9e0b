package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/mezonai/orion/events"
	"github.com/mezonai/orion/exception"
	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/monitoring"
	"github.com/mezonai/orion/service"
)

// Services bundles the workflows the HTTP surface exposes.
type Services struct {
	Signing  *service.SigningService
	Transfer *service.TransferService
	Airdrop  *service.AirdropService
	Balance  *service.BalanceService
	Health   *service.HealthService
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// APIServer is the local HTTP surface a browser UI talks to. Handlers only
// extract primitive values and call the services.
type APIServer struct {
	ListenAddr string
	session    service.Session
	svc        Services
	bus        *events.EventBus
	cors       CORSConfig
	router     *mux.Router
	httpServer *http.Server
}

func NewAPIServer(addr string, sess service.Session, svc Services, bus *events.EventBus, cors CORSConfig) *APIServer {
	if len(cors.AllowedMethods) == 0 {
		cors.AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	if len(cors.AllowedHeaders) == 0 {
		cors.AllowedHeaders = []string{"Content-Type"}
	}
	s := &APIServer{
		ListenAddr: addr,
		session:    sess,
		svc:        svc,
		bus:        bus,
		cors:       cors,
		router:     mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(s.corsMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/identity", s.getIdentity).Methods(http.MethodGet)
	api.HandleFunc("/health", s.getHealth).Methods(http.MethodGet)
	api.HandleFunc("/balance", s.getBalance).Methods(http.MethodGet)
	api.HandleFunc("/sign", s.signMessage).Methods(http.MethodPost)
	api.HandleFunc("/transfer", s.transfer).Methods(http.MethodPost)
	api.HandleFunc("/airdrop", s.airdrop).Methods(http.MethodPost)
	api.HandleFunc("/notifications", s.streamNotifications).Methods(http.MethodGet)
	// preflight requests are answered by the CORS middleware
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	s.router.Handle("/metrics", monitoring.Handler()).Methods(http.MethodGet)
}

// Handler exposes the router, mainly for tests.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

func (s *APIServer) Start() {
	s.httpServer = &http.Server{
		Addr:              s.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logx.Info("API", "API listen on ", s.ListenAddr)
	exception.SafeGo("api-server", func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Error("API", "Server stopped: ", err)
		}
	})
}

func (s *APIServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *APIServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.setCORSHeaders(w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *APIServer) setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	allowed := false
	for _, o := range s.cors.AllowedOrigins {
		if o == "*" || o == origin {
			allowed = true
			break
		}
	}
	if !allowed {
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Vary", "Origin")
	w.Header().Set("Access-Control-Allow-Methods", strings.Join(s.cors.AllowedMethods, ", "))
	w.Header().Set("Access-Control-Allow-Headers", strings.Join(s.cors.AllowedHeaders, ", "))
}
