package config

import (
	"log"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config regroupe les réglages applicatifs. Les connexions aux bases
// lisent encore leurs variables directement (voir internal/database).
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	SMTPHost    string `env:"SMTP_HOST"`
	SMTPPort    int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser    string `env:"SMTP_USERNAME"`
	SMTPPass    string `env:"SMTP_PASSWORD"`
	MailFrom    string `env:"MAIL_FROM" envDefault:"noreply@velora.shop"`
	MinioBucket string `env:"MINIO_BUCKET" envDefault:"velora-images"`
}

var App Config

// Load charge .env puis parse la configuration typée.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	if err := env.Parse(&App); err != nil {
		log.Fatalf("❌ Configuration invalide: %v", err)
	}
}
