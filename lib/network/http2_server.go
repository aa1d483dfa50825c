package network

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/net/http2"
)

const (
	RouterNameAPI    = "api"
	UrlPathPrefixAPI = "/api"
	shutdownTimeout  = 5 * time.Second
	notReadyMessage  = "server is not ready"
)

// HTTP2Server serves the node API. Handlers can be added until `Start()`;
// before `Ready()` every request gets `503 Service Unavailable`.
type HTTP2Server struct {
	sync.RWMutex

	config HTTP2ServerConfig
	server *http.Server

	router      *mux.Router
	routers     map[string]*mux.Router
	middlewares map[string][]mux.MiddlewareFunc

	ready    bool
	listener net.Listener
}

func NewHTTP2Server(config HTTP2ServerConfig) *HTTP2Server {
	server := &http.Server{
		Addr:              config.Addr,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		ErrorLog:          NewHTTP2ErrorLogger(log),
	}
	server.SetKeepAlivesEnabled(true)

	http2.ConfigureServer(
		server,
		&http2.Server{
			IdleTimeout: config.IdleTimeout,
		},
	)

	router := mux.NewRouter()

	s := &HTTP2Server{
		config:      config,
		server:      server,
		router:      router,
		routers:     map[string]*mux.Router{},
		middlewares: map[string][]mux.MiddlewareFunc{},
	}
	s.routers[RouterNameAPI] = router.PathPrefix(UrlPathPrefixAPI).Subrouter()

	server.Handler = handlers.CombinedLoggingHandler(
		config.HTTP2LogOutput,
		http.HandlerFunc(s.serveHTTP),
	)

	return s
}

func (s *HTTP2Server) Config() HTTP2ServerConfig {
	return s.config
}

func (s *HTTP2Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	s.RLock()
	ready := s.ready
	s.RUnlock()

	if !ready {
		http.Error(w, notReadyMessage, http.StatusServiceUnavailable)
		return
	}

	s.router.ServeHTTP(w, r)
}

// Handler is the root handler of the server, with the access log.
func (s *HTTP2Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTP2Server) Router() *mux.Router {
	return s.router
}

func (s *HTTP2Server) AddMiddleware(routerName string, mws ...mux.MiddlewareFunc) {
	s.Lock()
	defer s.Unlock()

	s.middlewares[routerName] = append(s.middlewares[routerName], mws...)
}

// AddHandler registers the handler. A pattern under `UrlPathPrefixAPI` goes
// to the "api" sub router and gets its middlewares.
func (s *HTTP2Server) AddHandler(pattern string, handler http.HandlerFunc) *mux.Route {
	if strings.HasPrefix(pattern, UrlPathPrefixAPI+"/") {
		return s.routers[RouterNameAPI].HandleFunc(strings.TrimPrefix(pattern, UrlPathPrefixAPI), handler)
	}

	return s.router.HandleFunc(pattern, handler)
}

// Ready applies the middlewares and opens the server for requests.
func (s *HTTP2Server) Ready() {
	s.Lock()
	defer s.Unlock()

	if s.ready {
		return
	}

	for name, mws := range s.middlewares {
		if name == "" {
			s.router.Use(mws...)
			continue
		}
		if router, found := s.routers[name]; found {
			router.Use(mws...)
		}
	}

	s.ready = true
}

func (s *HTTP2Server) IsReady() bool {
	s.RLock()
	defer s.RUnlock()

	return s.ready
}

// Start blocks until the server is stopped.
func (s *HTTP2Server) Start() (err error) {
	s.Ready()

	var listener net.Listener
	if listener, err = net.Listen("tcp", s.config.Addr); err != nil {
		return
	}

	s.Lock()
	s.listener = listener
	s.Unlock()

	log.Debug("starting server", "endpoint", s.config.Endpoint, "https", s.config.IsHTTPS())

	if s.config.IsHTTPS() {
		err = s.server.ServeTLS(listener, s.config.TLSCertFile, s.config.TLSKeyFile)
	} else {
		err = s.server.Serve(listener)
	}

	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

// Addr returns the listening address once `Start()` is called.
func (s *HTTP2Server) Addr() string {
	s.RLock()
	defer s.RUnlock()

	if s.listener == nil {
		return s.config.Addr
	}

	return s.listener.Addr().String()
}

func (s *HTTP2Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
