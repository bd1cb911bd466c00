package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dishiq/dishiq-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Registry holds the live domain entities and is the lookup collaborator the
// core expects from its host. Entities stay in memory; every write is also
// snapshotted as JSON into the snapshots table when a database is attached.
//
// The core assumes at-most-one-writer-at-a-time per entity. Handlers that
// run a check-then-act sequence against an entity wrap it in Serialize.
type Registry struct {
	db *gorm.DB

	opMu sync.Mutex   // serializes whole mutating operations
	mu   sync.RWMutex // guards the maps below

	users     map[string]models.User
	menuItems map[string]*models.MenuItem
	orders    map[string]*models.Order
	feedback  map[string]*models.Feedback
	bids      map[string][]*DeliveryBid
}

// DeliveryBid is a delivery person's offer to carry an order.
type DeliveryBid struct {
	BidID            string    `json:"bid_id"`
	OrderID          string    `json:"order_id"`
	DeliveryPersonID string    `json:"delivery_person_id"`
	BidPrice         float64   `json:"bid_price"`
	Status           string    `json:"status"`
	Timestamp        time.Time `json:"timestamp"`
}

// Delivery bid statuses
const (
	BidPending  = "pending"
	BidAccepted = "accepted"
	BidRejected = "rejected"
)

// NewRegistry creates a registry. The database is optional; with a nil db the
// registry is purely in-memory.
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		db:        db,
		users:     make(map[string]models.User),
		menuItems: make(map[string]*models.MenuItem),
		orders:    make(map[string]*models.Order),
		feedback:  make(map[string]*models.Feedback),
		bids:      make(map[string][]*DeliveryBid),
	}
}

// AutoMigrate creates the snapshots table when a database is attached
func (r *Registry) AutoMigrate() error {
	if r.db == nil {
		return nil
	}
	return r.db.AutoMigrate(&Snapshot{})
}

// Serialize runs fn under the registry's operation lock, giving mutating
// handlers the single-writer guarantee the core assumes. Lookups inside fn
// use the normal accessors; the map lock is separate, so there is no
// re-entrancy hazard.
func (r *Registry) Serialize(fn func() error) error {
	r.opMu.Lock()
	defer r.opMu.Unlock()
	return fn()
}

func (r *Registry) persist(kind, refID string, entity any) {
	if r.db == nil {
		return
	}
	data, err := json.Marshal(entity)
	if err != nil {
		log.Printf("Failed to snapshot %s %s: %v", kind, refID, err)
		return
	}
	snapshot := Snapshot{Kind: kind, RefID: refID, Data: string(data)}
	err = r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "ref_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snapshot).Error
	if err != nil {
		log.Printf("Failed to persist snapshot %s %s: %v", kind, refID, err)
	}
}

// PutUser stores (or replaces) a user record and snapshots it
func (r *Registry) PutUser(user models.User) {
	r.mu.Lock()
	r.users[user.ID()] = user
	r.mu.Unlock()
	r.persist(KindUser, user.ID(), user)
}

// GetUser looks up a user by id
func (r *Registry) GetUser(userID string) (models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userID]
	return user, ok
}

// SaveUser re-snapshots a user after its state was mutated in place
func (r *Registry) SaveUser(user models.User) {
	r.persist(KindUser, user.ID(), user)
}

// GetVisitor looks up a user and asserts it is a visitor
func (r *Registry) GetVisitor(userID string) (*models.Visitor, bool) {
	user, ok := r.GetUser(userID)
	if !ok {
		return nil, false
	}
	visitor, ok := user.(*models.Visitor)
	return visitor, ok
}

// GetCustomer looks up a user and returns its customer record. VIP customers
// are returned through their embedded customer state.
func (r *Registry) GetCustomer(userID string) (*models.Customer, bool) {
	user, ok := r.GetUser(userID)
	if !ok {
		return nil, false
	}
	switch u := user.(type) {
	case *models.VIPCustomer:
		return &u.Customer, true
	case *models.Customer:
		return u, true
	default:
		return nil, false
	}
}

// GetChef looks up a user and asserts it is a chef
func (r *Registry) GetChef(userID string) (*models.Chef, bool) {
	user, ok := r.GetUser(userID)
	if !ok {
		return nil, false
	}
	chef, ok := user.(*models.Chef)
	return chef, ok
}

// GetManager looks up a user and asserts it is a manager
func (r *Registry) GetManager(userID string) (*models.Manager, bool) {
	user, ok := r.GetUser(userID)
	if !ok {
		return nil, false
	}
	manager, ok := user.(*models.Manager)
	return manager, ok
}

// AllUsers returns every stored user record
func (r *Registry) AllUsers() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users
}

// Customers returns the id -> customer map the manager's feedback review
// operates on. VIP customers participate through their embedded record.
func (r *Registry) Customers() map[string]*models.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customers := make(map[string]*models.Customer)
	for id, user := range r.users {
		switch u := user.(type) {
		case *models.VIPCustomer:
			customers[id] = &u.Customer
		case *models.Customer:
			customers[id] = u
		}
	}
	return customers
}

// PutMenuItem stores a menu item and snapshots it
func (r *Registry) PutMenuItem(item *models.MenuItem) {
	r.mu.Lock()
	r.menuItems[item.ItemID] = item
	r.mu.Unlock()
	r.persist(KindMenuItem, item.ItemID, item)
}

// GetMenuItem looks up a menu item by id
func (r *Registry) GetMenuItem(itemID string) (*models.MenuItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.menuItems[itemID]
	return item, ok
}

// SaveMenuItem re-snapshots a menu item after mutation
func (r *Registry) SaveMenuItem(item *models.MenuItem) {
	r.persist(KindMenuItem, item.ItemID, item)
}

// MenuItems returns all menu items
func (r *Registry) MenuItems() []*models.MenuItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]*models.MenuItem, 0, len(r.menuItems))
	for _, item := range r.menuItems {
		items = append(items, item)
	}
	return items
}

// PutOrder stores an order and snapshots it
func (r *Registry) PutOrder(order *models.Order) {
	r.mu.Lock()
	r.orders[order.OrderID] = order
	r.mu.Unlock()
	r.persist(KindOrder, order.OrderID, order)
}

// GetOrder looks up an order by id
func (r *Registry) GetOrder(orderID string) (*models.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[orderID]
	return order, ok
}

// SaveOrder re-snapshots an order after mutation
func (r *Registry) SaveOrder(order *models.Order) {
	r.persist(KindOrder, order.OrderID, order)
}

// PutFeedback stores a feedback record and snapshots it
func (r *Registry) PutFeedback(fb *models.Feedback) {
	r.mu.Lock()
	r.feedback[fb.FeedbackID] = fb
	r.mu.Unlock()
	r.persist(KindFeedback, fb.FeedbackID, fb)
}

// GetFeedback looks up a feedback record by id
func (r *Registry) GetFeedback(feedbackID string) (*models.Feedback, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fb, ok := r.feedback[feedbackID]
	return fb, ok
}

// SaveFeedback re-snapshots a feedback record after mutation
func (r *Registry) SaveFeedback(fb *models.Feedback) {
	r.persist(KindFeedback, fb.FeedbackID, fb)
}

// FeedbackForTarget returns all feedback filed against the given target
func (r *Registry) FeedbackForTarget(targetType, targetID string) []*models.Feedback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Feedback
	for _, fb := range r.feedback {
		if fb.TargetType == targetType && fb.TargetID == targetID {
			out = append(out, fb)
		}
	}
	return out
}

// AllFeedback returns every feedback record
func (r *Registry) AllFeedback() []*models.Feedback {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Feedback, 0, len(r.feedback))
	for _, fb := range r.feedback {
		out = append(out, fb)
	}
	return out
}

// AddBid records a delivery bid for an order
func (r *Registry) AddBid(bid *DeliveryBid) {
	r.mu.Lock()
	r.bids[bid.OrderID] = append(r.bids[bid.OrderID], bid)
	r.mu.Unlock()
}

// BidsForOrder returns the bids placed on an order
func (r *Registry) BidsForOrder(orderID string) []*DeliveryBid {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*DeliveryBid(nil), r.bids[orderID]...)
}

// AcceptBid accepts the given delivery person's bid on an order and rejects
// all others. It fails when no bid from that delivery person exists.
func (r *Registry) AcceptBid(orderID, deliveryPersonID string) (*DeliveryBid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var accepted *DeliveryBid
	for _, bid := range r.bids[orderID] {
		if bid.DeliveryPersonID == deliveryPersonID {
			bid.Status = BidAccepted
			accepted = bid
		} else {
			bid.Status = BidRejected
		}
	}
	if accepted == nil {
		return nil, fmt.Errorf("%w: no bid from %s on order %s", models.ErrNotFound, deliveryPersonID, orderID)
	}
	return accepted, nil
}

// SnapshotFor reads the persisted snapshot of an entity, mainly for tests
// and operational inspection
func (r *Registry) SnapshotFor(kind, refID string) (*Snapshot, error) {
	if r.db == nil {
		return nil, fmt.Errorf("%w: no database attached", models.ErrNotFound)
	}
	var snapshot Snapshot
	err := r.db.Where("kind = ? AND ref_id = ?", kind, refID).First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
