package service

import (
	"math/rand"

	"healthvault/internal/model"
)

// tipCatalog is the fixed set of health tips. No persistence, no per-user
// state; one tip is chosen at random per request.
var tipCatalog = []model.HealthTip{
	{
		ID:       1,
		Title:    "Stay Hydrated",
		Content:  "Drinking adequate water supports your body's natural detox processes and helps maintain healthy skin. Aim for 8-10 glasses daily.",
		Category: "Nutrition",
	},
	{
		ID:       2,
		Title:    "Regular Exercise",
		Content:  "Just 30 minutes of moderate exercise daily can improve cardiovascular health and boost your mood through endorphin release.",
		Category: "Fitness",
	},
	{
		ID:       3,
		Title:    "Quality Sleep",
		Content:  "Aim for 7-9 hours of sleep each night. Good sleep hygiene supports immune function and mental clarity.",
		Category: "Sleep",
	},
}

// TipService serves rotating health tips.
type TipService interface {
	Random() model.HealthTip
}

type tipService struct{}

// NewTipService constructs a new TipService.
func NewTipService() TipService {
	return tipService{}
}

func (tipService) Random() model.HealthTip {
	return tipCatalog[rand.Intn(len(tipCatalog))]
}
