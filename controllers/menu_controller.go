package controllers

import (
	"github.com/dishiq/dishiq-api/middleware"
	"github.com/dishiq/dishiq-api/models"
	"github.com/dishiq/dishiq-api/services"
	"github.com/dishiq/dishiq-api/store"
	"github.com/gin-gonic/gin"
)

// menuAudience decides which menu view a request gets. Requests without a
// resolvable registered user get the visitor view, which hides early-access
// dishes.
func menuAudience(c *gin.Context) string {
	userID := c.GetHeader(middleware.UserIDHeader)
	if userID == "" {
		return services.MenuAudienceVisitor
	}
	user, ok := store.Default().GetUser(userID)
	if !ok || user.GetRole() == models.RoleVisitor {
		return services.MenuAudienceVisitor
	}
	return services.MenuAudienceRegistered
}

// BrowseMenu handles GET /api/v1/menu - returns the menu for the caller's
// audience, served from the cache when possible
func BrowseMenu(c *gin.Context) {
	registry := store.Default()
	audience := menuAudience(c)

	if cache := services.GetMenuCacheService(); cache != nil {
		if items, ok, err := cache.GetMenu(c.Request.Context(), audience); err == nil && ok {
			respondOK(c, items)
			return
		}
	}

	items := registry.MenuItems()
	if audience == services.MenuAudienceVisitor {
		visible := make([]*models.MenuItem, 0, len(items))
		for _, item := range items {
			if !item.IsEarlyAccess {
				visible = append(visible, item)
			}
		}
		items = visible
	}

	if cache := services.GetMenuCacheService(); cache != nil {
		_ = cache.SetMenu(c.Request.Context(), audience, items)
	}

	respondOK(c, items)
}

// invalidateMenuCache drops cached menu views after a menu mutation
func invalidateMenuCache(c *gin.Context) {
	if cache := services.GetMenuCacheService(); cache != nil {
		_ = cache.Invalidate(c.Request.Context())
	}
}

// CreateMenuItemRequest represents the request body for creating a dish
type CreateMenuItemRequest struct {
	ItemID        string  `json:"item_id" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required"`
	IsEarlyAccess bool    `json:"is_early_access"`
}

// CreateMenuItem handles POST /api/v1/chefs/:id/menu-items (chefs only)
func CreateMenuItem(c *gin.Context) {
	registry := store.Default()
	chef, ok := registry.GetChef(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Chef not found")
		return
	}
	if !actorMatches(c, chef.UserID) {
		respondForbidden(c, "Chefs may only manage their own menu")
		return
	}

	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}
	if _, exists := registry.GetMenuItem(req.ItemID); exists {
		respondBadRequest(c, "Menu item id already exists", nil)
		return
	}

	var item *models.MenuItem
	err := registry.Serialize(func() error {
		var err error
		item, err = chef.CreateMenuItem(req.ItemID, req.Name, req.Description, req.Price, req.IsEarlyAccess)
		if err == nil {
			registry.PutMenuItem(item)
			registry.SaveUser(chef)
		}
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateMenuCache(c)
	respondCreated(c, item)
}

// UpdateMenuItemRequest represents the request body for a partial dish update
type UpdateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// UpdateMenuItem handles PATCH /api/v1/chefs/:id/menu-items/:itemID
func UpdateMenuItem(c *gin.Context) {
	registry := store.Default()
	chef, ok := registry.GetChef(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Chef not found")
		return
	}
	if !actorMatches(c, chef.UserID) {
		respondForbidden(c, "Chefs may only manage their own menu")
		return
	}

	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	var item *models.MenuItem
	err := registry.Serialize(func() error {
		var err error
		item, err = chef.UpdateMenuItem(c.Param("itemID"), models.MenuItemUpdate{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
		})
		if err == nil {
			registry.SaveMenuItem(item)
			registry.SaveUser(chef)
		}
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateMenuCache(c)
	respondOK(c, item)
}

// RateDishRequest represents the request body for rating a dish
type RateDishRequest struct {
	ItemID  string  `json:"item_id" binding:"required"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// RateDish handles POST /api/v1/customers/:id/ratings (customers only)
func RateDish(c *gin.Context) {
	registry := store.Default()
	customer, ok := registry.GetCustomer(c.Param("id"))
	if !ok {
		respondNotFound(c, "USER_NOT_FOUND", "Customer not found")
		return
	}
	if !actorMatches(c, customer.UserID) {
		respondForbidden(c, "Customers may only rate with their own account")
		return
	}

	var req RateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request data", err)
		return
	}

	item, ok := registry.GetMenuItem(req.ItemID)
	if !ok {
		respondNotFound(c, "MENU_ITEM_NOT_FOUND", "Menu item not found")
		return
	}

	err := registry.Serialize(func() error {
		err := customer.RateDish(item, req.Rating, req.Comment)
		if err == nil {
			registry.SaveMenuItem(item)
		}
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}

	invalidateMenuCache(c)
	respondOK(c, item)
}

// actorMatches reports whether the acting user resolved by the permission
// middleware is the subject of the request path
func actorMatches(c *gin.Context, subjectID string) bool {
	actor, err := middleware.ActingUser(c)
	if err != nil {
		return false
	}
	return actor.ID() == subjectID
}
