// Package httpapi exposes the application over a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/portraitstudio/internal/genai"
	"github.com/dmitrijs2005/portraitstudio/internal/logging"
	"github.com/dmitrijs2005/portraitstudio/internal/server/config"
	"github.com/dmitrijs2005/portraitstudio/internal/server/services"
	"github.com/dmitrijs2005/portraitstudio/internal/server/storage"
)

type Server struct {
	address       string
	logger        logging.Logger
	jwtSecret     []byte
	adminPasscode string
	storage       *storage.Service
	users         *services.UserService
	licenses      *services.LicenseService
	gallery       *services.GalleryService
	portraits     *services.PortraitService
	qr            *genai.QRClient
}

func NewServer(cfg *config.Config, logger logging.Logger,
	st *storage.Service,
	us *services.UserService, ls *services.LicenseService,
	gs *services.GalleryService, ps *services.PortraitService,
	qr *genai.QRClient) *Server {

	return &Server{
		address:       cfg.EndpointAddr,
		logger:        logger.With("module", "http_server"),
		jwtSecret:     []byte(cfg.SecretKey),
		adminPasscode: cfg.AdminPasscode,
		storage:       st,
		users:         us,
		licenses:      ls,
		gallery:       gs,
		portraits:     ps,
		qr:            qr,
	}
}

// Router wires all routes. Split out from Run so tests can hit handlers
// through httptest without binding a socket.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	// public
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/stats/visit", s.handleVisit).Methods(http.MethodPost)
	api.HandleFunc("/styles", s.handleStyles).Methods(http.MethodGet)
	api.HandleFunc("/tools/presets", s.handlePresets).Methods(http.MethodGet)
	api.HandleFunc("/docs/sop", s.handleSOP).Methods(http.MethodGet)

	// admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.adminMiddleware)
	admin.HandleFunc("/licenses", s.handleGenerateLicenses).Methods(http.MethodPost)

	// authenticated
	auth := api.PathPrefix("").Subrouter()
	auth.Use(s.authMiddleware)
	auth.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	auth.HandleFunc("/auth/session", s.handleSession).Methods(http.MethodGet)
	auth.HandleFunc("/payment/redeem", s.handleRedeem).Methods(http.MethodPost)
	auth.HandleFunc("/gallery", s.handleGalleryList).Methods(http.MethodGet)
	auth.HandleFunc("/gallery/{id}", s.handleGalleryDelete).Methods(http.MethodDelete)
	auth.HandleFunc("/portraits/generate", s.handleGenerate).Methods(http.MethodPost)
	auth.HandleFunc("/portraits/upscale", s.handleUpscale).Methods(http.MethodPost)
	auth.HandleFunc("/advisor/chat", s.handleChat).Methods(http.MethodPost)
	auth.HandleFunc("/videos", s.handleVideoSubmit).Methods(http.MethodPost)
	auth.HandleFunc("/videos/{id}", s.handleVideoStatus).Methods(http.MethodGet)
	auth.HandleFunc("/tools/crop", s.handleCrop).Methods(http.MethodPost)
	auth.HandleFunc("/tools/ring", s.handleRing).Methods(http.MethodPost)
	auth.HandleFunc("/tools/compress", s.handleCompress).Methods(http.MethodPost)
	auth.HandleFunc("/tools/convert", s.handleConvert).Methods(http.MethodPost)
	auth.HandleFunc("/tools/watermark", s.handleWatermark).Methods(http.MethodPost)
	auth.HandleFunc("/tools/palette", s.handlePalette).Methods(http.MethodPost)
	auth.HandleFunc("/tools/badge", s.handleBadge).Methods(http.MethodPost)
	auth.HandleFunc("/tools/signature", s.handleSignature).Methods(http.MethodPost)
	auth.HandleFunc("/tools/qr", s.handleQR).Methods(http.MethodPost)
	auth.HandleFunc("/docs/certificate", s.handleCertificate).Methods(http.MethodGet)

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
