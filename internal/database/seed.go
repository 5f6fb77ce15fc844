package database

import (
	"log"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type seedProduct struct {
	name, description, category string
	price, cost                 float64
	stock, threshold            int
}

var seedProducts = []seedProduct{
	{"Casque audio Nova", "Casque circum-aural à réduction de bruit active", "audio", 199.99, 87.50, 40, 5},
	{"Enceinte Pulse Mini", "Enceinte Bluetooth étanche format poche", "audio", 59.90, 21.00, 120, 10},
	{"Clavier mécanique K87", "Clavier TKL, switches tactiles, rétroéclairage blanc", "informatique", 129.00, 52.00, 35, 5},
	{"Souris Glide Pro", "Souris sans fil 8 boutons, capteur 26K DPI", "informatique", 79.00, 28.00, 80, 10},
	{"Montre Track S", "Montre connectée GPS, 14 jours d'autonomie", "wearables", 249.00, 112.00, 25, 3},
	{"Chargeur Duo 65W", "Chargeur USB-C double port GaN", "accessoires", 39.90, 11.20, 200, 20},
}

// Seed insère un jeu de données de démonstration (un admin, un client,
// un petit catalogue) si les tables sont vides. Activé par --seed.
func Seed() error {
	usersSession, err := GetUsersSession()
	if err != nil {
		return err
	}
	productsSession, err := GetProductsSession()
	if err != nil {
		return err
	}

	var existing string
	if err := usersSession.Query(`SELECT user_id FROM users LIMIT 1`).Scan(&existing); err == nil {
		log.Println("ℹ️ Données déjà présentes, seed ignoré")
		return nil
	}

	now := time.Now()

	seedUsers := []struct {
		name, email, password, role string
	}{
		{"Admin Velora", "admin@velora.shop", "admin123", "admin"},
		{"Claire Dupont", "claire@example.com", "client123", "customer"},
	}

	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		userID := uuid.NewString()
		if err := usersSession.Query(`INSERT INTO users (user_id, name, email, password, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			userID, u.name, u.email, string(hash), u.role, now).Exec(); err != nil {
			return err
		}
		if err := usersSession.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`,
			u.email, userID).Exec(); err != nil {
			return err
		}
		log.Printf("🌱 Utilisateur seedé: %s (%s)", u.email, u.role)
	}

	for _, p := range seedProducts {
		if err := productsSession.Query(`INSERT INTO products (product_id, name, description, price, cost, stock, low_stock_threshold, rating, review_count, category, image_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			gocql.TimeUUID(), p.name, p.description, p.price, p.cost, p.stock, p.threshold,
			0.0, 0, p.category, "", now, now).Exec(); err != nil {
			return err
		}
	}
	log.Printf("🌱 %d produits seedés", len(seedProducts))

	return nil
}
