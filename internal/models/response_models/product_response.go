package response_models

type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       int64    `json:"price"`
	Unit        string   `json:"unit"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	InStock     bool     `json:"inStock"`
}

type DeliveryFeeResponse struct {
	Zone string `json:"zone"`
	Fee  int64  `json:"fee"`
}
