package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
)

type Config struct {
	AppName    string `json:"app_name"`
	ListenIP   string `json:"listen_ip"`
	ListenPort int    `json:"listen_port"`
	SessionKey string `json:"session_key"`

	// AuthURL is the backend endpoint that validates database connection
	// credentials. The app never talks to the database itself.
	AuthURL        string `json:"auth_url"`
	AuthTimeoutSec int    `json:"auth_timeout_sec"`

	// ExportPath is the destination the user lands on after a successful
	// login. GraceWindowMs bounds how long the primary navigation may take
	// before the hard-redirect fallback fires.
	ExportPath    string `json:"export_path"`
	GraceWindowMs int    `json:"grace_window_ms"`

	CaptchaEnabled bool   `json:"captcha_enabled"`
	AuditDBPath    string `json:"audit_db_path"`
}

var AppConfig Config

func LoadConfig(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&AppConfig); err != nil {
		return err
	}

	// Override with environment variables if present
	if envKey := os.Getenv("DBEXPORT_SESSION_KEY"); envKey != "" {
		AppConfig.SessionKey = envKey
	}
	if envURL := os.Getenv("DBEXPORT_AUTH_URL"); envURL != "" {
		AppConfig.AuthURL = envURL
	}

	// If no key is provided or it's the placeholder, generate a secure random one
	if AppConfig.SessionKey == "" || AppConfig.SessionKey == "CHANGE_ME_IN_PRODUCTION" {
		log.Println("WARNING: No session key configured. Generating a random key. Sessions will be invalidated on restart.")
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err != nil {
			return err
		}
		AppConfig.SessionKey = hex.EncodeToString(randomKey)
	}

	applyDefaults()
	return nil
}

func applyDefaults() {
	if AppConfig.AuthTimeoutSec <= 0 {
		AppConfig.AuthTimeoutSec = 15
	}
	if AppConfig.ExportPath == "" {
		AppConfig.ExportPath = "/export"
	}
	if AppConfig.GraceWindowMs <= 0 {
		AppConfig.GraceWindowMs = 500
	}
	if AppConfig.AuditDBPath == "" {
		AppConfig.AuditDBPath = "./dbexport.db"
	}
}
