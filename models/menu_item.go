package models

import "fmt"

// MenuItem represents a single dish on the restaurant menu. Rating history is
// not retained; only the aggregate statistics are kept so storage stays O(1)
// per item.
type MenuItem struct {
	ItemID          string  `json:"item_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	ChefID          string  `json:"chef_id"`
	Rating          float64 `json:"rating"`
	TotalRatings    int     `json:"total_ratings"`
	IsEarlyAccess   bool    `json:"is_early_access"`
	LowRatingCount  int     `json:"low_rating_count"`
	HighRatingCount int     `json:"high_rating_count"`
}

// NewMenuItem creates a dish owned by the given chef. The price must be
// positive.
func NewMenuItem(itemID, name, description string, price float64, chefID string, isEarlyAccess bool) (*MenuItem, error) {
	if price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive, got %.2f", ErrValidation, price)
	}
	item := &MenuItem{
		ItemID:        itemID,
		Name:          name,
		Description:   description,
		Price:         price,
		ChefID:        chefID,
		IsEarlyAccess: isEarlyAccess,
	}
	emit(itemID, "menu_item.created", map[string]any{"chef_id": chefID, "name": name})
	return item, nil
}

// UpdateRating folds one rating event into the weighted running mean. VIP
// ratings carry weight 1.5, regular ratings 1.0. TotalRatings counts events,
// not distinct raters.
func (m *MenuItem) UpdateRating(newRating float64, isVIP bool) error {
	if newRating < 0 || newRating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5, got %.1f", ErrValidation, newRating)
	}
	if newRating < 2 {
		m.LowRatingCount++
	}
	if newRating > 4 {
		m.HighRatingCount++
	}
	weight := 1.0
	if isVIP {
		weight = 1.5
	}
	totalWeight := float64(m.TotalRatings) + weight
	m.Rating = (m.Rating*float64(m.TotalRatings) + newRating*weight) / totalWeight
	m.TotalRatings++
	emit(m.ItemID, "menu_item.rating_updated", map[string]any{
		"rating":        m.Rating,
		"total_ratings": m.TotalRatings,
		"is_vip":        isVIP,
	})
	return nil
}
