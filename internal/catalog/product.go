package catalog

import "slices"

type Product struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription"`
	SPF              float64  `json:"spf"`
	Price            string   `json:"price"`
	Image            string   `json:"image"`
	Features         []string `json:"features"`
	MainIngredients  []string `json:"mainIngredients"`
}

func (p Product) clone() Product {
	p.Features = slices.Clone(p.Features)
	p.MainIngredients = slices.Clone(p.MainIngredients)
	return p
}

// Candidate is a create/update payload before validation. It never carries
// an id; any id sent by a client is dropped during decoding.
type Candidate struct {
	Name             string   `json:"name" validate:"required"`
	ShortDescription string   `json:"shortDescription" validate:"required"`
	FullDescription  string   `json:"fullDescription" validate:"required"`
	SPF              *float64 `json:"spf" validate:"required"`
	Price            string   `json:"price" validate:"required"`
	Image            string   `json:"image" validate:"required,imageref"`
	Features         []string `json:"features" validate:"required"`
	MainIngredients  []string `json:"mainIngredients" validate:"required"`
}

func (c Candidate) product(id int) Product {
	p := Product{
		ID:               id,
		Name:             c.Name,
		ShortDescription: c.ShortDescription,
		FullDescription:  c.FullDescription,
		Price:            c.Price,
		Image:            c.Image,
		Features:         slices.Clone(c.Features),
		MainIngredients:  slices.Clone(c.MainIngredients),
	}
	if c.SPF != nil {
		p.SPF = *c.SPF
	}
	return p
}

// SeedProducts returns a fresh copy of the products the service starts with.
func SeedProducts() []Product {
	return []Product{
		{
			ID:               1,
			Name:             "Sunny SPF 50",
			ShortDescription: "High protection, broad-spectrum UVA/UVB.",
			FullDescription:  "Sunny SPF 50 provides broad-spectrum UVA/UVB protection with a water-resistant formula. Ideal for long sun exposure.",
			SPF:              50,
			Price:            "$19.99",
			Image:            "/images/sunscreen1.jpg",
			Features: []string{
				"Water-resistant up to 80 minutes",
				"Non-greasy formula",
				"Reef-safe ingredients",
			},
			MainIngredients: []string{"Zinc Oxide", "Titanium Dioxide", "Aloe Vera"},
		},
		{
			ID:               2,
			Name:             "Sunny SPF 30",
			ShortDescription: "Daily protection against UV rays.",
			FullDescription:  "Sunny SPF 30 is lightweight and perfect for daily use. Its formula protects your skin from harmful UV rays without clogging pores.",
			SPF:              30,
			Price:            "$14.99",
			Image:            "/images/sunscreen2.jpg",
			Features: []string{
				"Lightweight, non-comedogenic",
				"Suitable for sensitive skin",
				"Broad-spectrum UVA/UVB protection",
			},
			MainIngredients: []string{"Avobenzone", "Octocrylene", "Vitamin E"},
		},
		{
			ID:               3,
			Name:             "Sunny Kids SPF 40",
			ShortDescription: "Gentle sunscreen for children.",
			FullDescription:  "Sunny Kids SPF 40 is designed for sensitive skin. It provides strong sun protection with a hypoallergenic formula, making it perfect for children.",
			SPF:              40,
			Price:            "$17.99",
			Image:            "/images/sunscreen3.jpg",
			Features: []string{
				"Hypoallergenic",
				"Tear-free formula",
				"Pediatrician recommended",
			},
			MainIngredients: []string{"Titanium Dioxide", "Coconut Oil", "Chamomile Extract"},
		},
		{
			ID:               4,
			Name:             "Sunny Sport SPF 60",
			ShortDescription: "High SPF for active lifestyles.",
			FullDescription:  "Sunny Sport SPF 60 is made for those who need extra protection during intense outdoor activities. It's sweat-resistant and provides long-lasting coverage.",
			SPF:              60,
			Price:            "$22.99",
			Image:            "/images/sunscreen4.jpg",
			Features: []string{
				"Sweat-resistant",
				"Long-lasting formula",
				"Water-resistant up to 90 minutes",
			},
			MainIngredients: []string{"Octinoxate", "Oxybenzone", "Aloe Vera Gel"},
		},
	}
}
