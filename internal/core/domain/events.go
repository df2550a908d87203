package domain

// Event names pushed to dashboard streams
const (
	EventConnected      = "connected"
	EventOrdersUpdate   = "orders_update"
	EventRefresh        = "refresh"
	EventSessionExpired = "session_expired"
)

// Resources named by refresh events
const (
	ResourceUsers         = "users"
	ResourceOrders        = "orders"
	ResourceAnnouncements = "announcements"
)

// Event is a server-sent event
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// RefreshData tells open pages which resource to refetch
type RefreshData struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	ID       int64  `json:"id,omitempty"`
}

// OrdersUpdate is the payload of an orders_update event
type OrdersUpdate struct {
	Orders      []Order `json:"orders"`
	NewOrderIDs []int64 `json:"newOrderIds"`
}

// NewRefreshEvent builds a refresh event for resource
func NewRefreshEvent(resource, action string, id int64) Event {
	return Event{Event: EventRefresh, Data: RefreshData{Resource: resource, Action: action, ID: id}}
}
