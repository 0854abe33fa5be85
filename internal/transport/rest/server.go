package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/tictactoe/internal/pkg"
)

const shutdownTimeout = 5 * time.Second

// NewRouter mounts the game API and, when ws is not nil, the websocket endpoint.
func NewRouter(logger *slog.Logger, game gameUseCase, ws http.Handler, corsOrigins []string) http.Handler {
	h := newHandlers(logger.With("component", "rest"), game)

	router := mux.NewRouter()
	router.HandleFunc("/ping", h.Ping).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/game", h.GetGame).Methods(http.MethodGet)
	api.HandleFunc("/game/play", h.Play).Methods(http.MethodPost)
	api.HandleFunc("/game/reset", h.Reset).Methods(http.MethodPost)

	if ws != nil {
		router.Handle("/ws", ws)
	}

	// the validator makes gorilla echo the request origin instead of "*"
	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOriginValidator(pkg.NewOriginValidator(corsOrigins)),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type"}),
		gorillahandlers.AllowCredentials(),
	)

	recovery := gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(recoveryLogger{logger: logger}),
	)

	return recovery(cors(router))
}

// Start serves handler on port until ctx is cancelled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

type recoveryLogger struct {
	logger *slog.Logger
}

func (that recoveryLogger) Println(args ...interface{}) {
	that.logger.Error("recovered from panic", "panic", fmt.Sprint(args...))
}
