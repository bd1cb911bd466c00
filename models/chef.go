package models

import "fmt"

// Chef creates and maintains menu items and receives feedback on them.
type Chef struct {
	Identity
	MenuItems        map[string]*MenuItem `json:"menu_items"`
	AccountStatus    AccountStatus        `json:"account_status"`
	FeedbackReceived []*Feedback          `json:"-"`
}

// NewChef creates an active chef with an empty menu.
func NewChef(userID, username, email string) *Chef {
	return &Chef{
		Identity:      newIdentity(userID, username, email, RoleChef),
		MenuItems:     make(map[string]*MenuItem),
		AccountStatus: AccountActive,
	}
}

// CreateMenuItem allocates a new dish owned by this chef.
func (c *Chef) CreateMenuItem(itemID, name, description string, price float64, isEarlyAccess bool) (*MenuItem, error) {
	item, err := NewMenuItem(itemID, name, description, price, c.UserID, isEarlyAccess)
	if err != nil {
		return nil, err
	}
	c.MenuItems[itemID] = item
	return item, nil
}

// MenuItemUpdate carries the optional fields of a partial update; nil fields
// are left unchanged.
type MenuItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
}

// UpdateMenuItem applies only the supplied fields to a dish this chef owns.
func (c *Chef) UpdateMenuItem(itemID string, update MenuItemUpdate) (*MenuItem, error) {
	item, ok := c.MenuItems[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: menu item %s", ErrNotFound, itemID)
	}
	if update.Price != nil && *update.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive, got %.2f", ErrValidation, *update.Price)
	}
	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	emit(c.UserID, "chef.updated_menu_item", map[string]any{"item_id": itemID})
	return item, nil
}

// ViewFeedback returns the feedback filed against this chef.
func (c *Chef) ViewFeedback() []*Feedback {
	return c.FeedbackReceived
}
