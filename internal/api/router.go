package api

import (
	"net/http"
	"time"

	_ "github.com/AlexZinkM/coinmaker/docs"
	"github.com/AlexZinkM/coinmaker/internal/handler"

	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(walletHandler *handler.WalletHandler, tokenHandler *handler.TokenHandler, log *logrus.Entry) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/session", walletHandler.Session)
	mux.HandleFunc("/wallet/connect", walletHandler.Connect)
	mux.HandleFunc("/wallet/disconnect", walletHandler.Disconnect)
	mux.HandleFunc("/wallet/visible", walletHandler.Visible)
	mux.HandleFunc("/wallet/balance", walletHandler.Balance)
	mux.HandleFunc("/wallet/verify", walletHandler.Verify)

	// Token endpoints
	mux.HandleFunc("/token/draft", tokenHandler.Draft)
	mux.HandleFunc("/token/logo", tokenHandler.Logo)
	mux.HandleFunc("/token/cost", tokenHandler.Cost)
	mux.HandleFunc("/token/mint", tokenHandler.Mint)
	mux.HandleFunc("/token/create", tokenHandler.Create)
	mux.HandleFunc("/token/progress", tokenHandler.Progress)

	return withLogging(mux, log)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(next http.Handler, log *logrus.Entry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	})
}
