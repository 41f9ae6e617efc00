package main

import (
	"fmt"
	"net/http"
	"time"

	"dbexport/audit"
	"dbexport/auth"
	"dbexport/backend"
	"dbexport/config"
	"dbexport/handlers"
	"dbexport/i18n"
	"dbexport/logger"

	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

func main() {
	log, err := logger.New("info")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := config.LoadConfig("config.json"); err != nil {
		log.Fatal("error loading config", zap.Error(err))
	}

	if err := i18n.LoadTranslations("i18n"); err != nil {
		log.Fatal("error loading translations", zap.Error(err))
	}

	auth.InitStore()

	if err := audit.InitDB(config.AppConfig.AuditDBPath); err != nil {
		log.Fatal("error opening audit database", zap.Error(err))
	}
	defer audit.DB.Close()

	authenticator := backend.New(
		config.AppConfig.AuthURL,
		time.Duration(config.AppConfig.AuthTimeoutSec)*time.Second,
	)

	h := handlers.New(authenticator, log)
	router := h.Router()

	addr := fmt.Sprintf("%s:%d", config.AppConfig.ListenIP, config.AppConfig.ListenPort)
	log.Info("server starting",
		zap.String("addr", addr),
		zap.String("app", config.AppConfig.AppName),
		zap.String("auth_url", config.AppConfig.AuthURL),
	)

	// CSRF protection around the whole route tree. The key derives from the
	// session secret; rotate both together.
	csrfMiddleware := csrf.Protect(
		[]byte(config.AppConfig.SessionKey),
		csrf.Secure(config.AppConfig.ListenPort != 8080), // dev port runs without HTTPS
		csrf.Path("/"),
	)

	if err := http.ListenAndServe(addr, csrfMiddleware(router)); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
