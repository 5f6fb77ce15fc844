package models

type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// CartItem est un instantané pris au moment de l'ajout : le nom, le prix et
// l'image sont copiés depuis le catalogue et ne sont jamais rafraîchis si le
// produit change ensuite. Le total du panier se calcule donc sans jointure.
type CartItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Quantity    int     `json:"quantity"`
}

// Total calcule le montant du panier uniquement à partir des instantanés.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
