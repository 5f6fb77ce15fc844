package models

// MonthlyReport est le rapport financier d'un mois calendaire, agrégé en
// lecture seule sur les commandes. Les montants sont formatés à 2 décimales.
type MonthlyReport struct {
	Month   int    `json:"month"`
	Year    int    `json:"year"`
	Revenue string `json:"revenue"`
	Cost    string `json:"cost"`
	Profit  string `json:"profit"`
	Margin  string `json:"profit_margin"` // en pourcentage
}

// SalesPoint est un point de la courbe de ventes (une journée).
type SalesPoint struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// TopProduct agrège les ventes d'un produit pour le dashboard admin.
type TopProduct struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	TotalSold   int     `json:"total_sold"`
	Revenue     float64 `json:"revenue"`
}
