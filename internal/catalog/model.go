package catalog

// Product is one sellable item. Stock is a display-only hint kept as entered
// by the admin; it is never decremented.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Stock string `json:"stock"`
}

// DefaultProducts is the built-in catalog used until the admin saves one.
// The ids are fixed so cart selections stay valid across loads.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:    "5f3a0c6e-7d4b-4a77-9a64-0d9de2a41c01",
			Name:  "상하목장 마이리틀 유기농 짜먹는 요거트 플레인",
			Price: 890,
			Stock: "999",
		},
		{
			ID:    "5f3a0c6e-7d4b-4a77-9a64-0d9de2a41c02",
			Name:  "수제 물떡 어묵탕",
			Price: 6900,
			Stock: "999",
		},
		{
			ID:    "5f3a0c6e-7d4b-4a77-9a64-0d9de2a41c03",
			Name:  "따끈따끈 부산완당",
			Price: 3900,
			Stock: "999",
		},
	}
}
