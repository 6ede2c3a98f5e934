package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

type DamDashHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	addr            string
	shutdownTimeout time.Duration
}

func NewDamDashHttpServer(router *Router, muxRouter *mux.Router, addr string, shutdownTimeout time.Duration) *DamDashHttpServer {
	return &DamDashHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler registers the routes and returns the wrapped root handler.
func (s *DamDashHttpServer) Handler() http.Handler {
	s.router.RegisterRoutes()
	return WrapHandler(s.muxRouter)
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *DamDashHttpServer) Start() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[DamDashHttpServer] Starting server on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	log.Println("[DamDashHttpServer] Shutting down the server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Println("[DamDashHttpServer] Server exiting")
	return nil
}
