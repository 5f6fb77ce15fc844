package main

import (
	"context"
	"flag"
	"log"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/config"
	"velora_back_end/internal/database"
	"velora_back_end/internal/routes"
)

func main() {
	seed := flag.Bool("seed", false, "insère les données de démonstration puis continue le démarrage")
	flag.Parse()

	config.Load()
	database.ConnectDatabases()
	defer database.CloseScylla()

	warmupRedisCache()

	if *seed {
		if err := database.Seed(); err != nil {
			log.Fatalf("❌ Seed impossible: %v", err)
		}
	}

	r := gin.Default()
	routes.RegisterRoutes(r)

	log.Println("🚀 Serveur Velora lancé sur le port", config.App.Port)
	if err := r.Run(":" + config.App.Port); err != nil {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
}

// warmupRedisCache établit la connexion Redis dès le démarrage pour
// éviter la latence du premier appel.
func warmupRedisCache() {
	if database.Redis == nil {
		return
	}
	if err := database.Redis.Ping(context.Background()).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
