package workers

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"cw20ics20bridge/config"
	"cw20ics20bridge/workers/handlers"
)

func NewRouter(api *handlers.API) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Options("/*", CORSHeaders)

	r.Get("/state", handlers.State)
	r.Get("/health", api.HealthCheck)

	r.Route("/execute", func(r chi.Router) {
		r.Post("/receive", api.Receive)
		r.Post("/allow", api.Allow)
		r.Post("/update_admin", api.UpdateAdmin)
	})

	r.Route("/ibc", func(r chi.Router) {
		r.Post("/channel_open", api.ChannelOpen)
		r.Post("/packet_ack", api.PacketAck)
		r.Post("/packet_timeout", api.PacketTimeout)
		r.Post("/delivery_outcome", api.DeliveryOutcome)
	})

	r.Route("/query", func(r chi.Router) {
		r.Get("/config", api.Config)
		r.Get("/admin", api.Admin)
		r.Get("/allowed/{contract}", api.Allowed)
		r.Get("/channels", api.ListChannels)
		r.Get("/channels/{id}", api.Channel)
		r.Get("/channels/{id}/transfers", api.Transfers)
		r.Get("/channels/{id}/transfers/{sequence}", api.Transfer)
	})

	return r
}

// Worker_HTTP serves handler until SIGINT/SIGTERM, then cancels stop so the
// other workers exit too.
func Worker_HTTP(handler http.Handler, stop context.CancelFunc) {
	zap.L().Info("starting HTTP service")
	defer stop()

	var server *http.Server

	if config.Config.Server.UseSSL {
		cert, err := tls.LoadX509KeyPair(config.Config.Server.CertFile, config.Config.Server.KeyFile)
		if err != nil {
			zap.L().Fatal("cannot load TLS key pair", zap.Error(err))
		}
		server = &http.Server{
			Addr:    config.Config.Server.Listen,
			Handler: handler,
			TLSConfig: &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			},
			ReadHeaderTimeout: 10 * time.Second,
		}
	} else {
		server = &http.Server{
			Addr:              config.Config.Server.Listen,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var err error
		if config.Config.Server.UseSSL {
			err = server.ListenAndServeTLS("", "")
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("error listening", zap.String("addr", server.Addr), zap.Error(err))
		}
	}()
	zap.L().Info("HTTP service started", zap.String("addr", server.Addr))

	<-done
	zap.L().Info("HTTP service stopped")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(config.Config.Server.ShutdownSecs)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zap.L().Fatal("HTTP service shutdown error", zap.Error(err))
	}
	zap.L().Info("HTTP service shutdown normal")
}

func CORSHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, Origin, X-Requested-With")
}
