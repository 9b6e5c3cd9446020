package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"coride/pkg/cache"
	"coride/pkg/config"
	"coride/pkg/token"
)

type Server struct {
	Config *config.Config
	Router *mux.Router
	API    *mux.Router
	DB     *gorm.DB
	Cache  cache.Cache
	Tokens *token.Service
	srv    *http.Server
}

func NewServer(
	cfg *config.Config,
	db *gorm.DB,
	cacheClient cache.Cache,
	tokens *token.Service,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    cfg.Addr(),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Config: cfg,
		Router: router,
		API:    router.PathPrefix("/api/v1").Subrouter(),
		DB:     db,
		Cache:  cacheClient,
		Tokens: tokens,
		srv:    srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}
