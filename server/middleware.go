package server

import (
	"net/http"
	"os"

	"dam-dash/server/handlers"

	ghandlers "github.com/gorilla/handlers"
)

// WrapHandler applies the middleware chain used by the HTTP server.
func WrapHandler(h http.Handler) http.Handler {
	h = ghandlers.CompressHandler(h)
	h = handlers.RequestID(h)
	h = ghandlers.RecoveryHandler(ghandlers.PrintRecoveryStack(true))(h)
	return ghandlers.CombinedLoggingHandler(os.Stdout, h)
}
