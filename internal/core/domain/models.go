package domain

// Record shapes mirror the backend's REST resources field for field. The
// backend is the single owner of this data; everything here is a best-effort
// local mirror and is never mutated except to reflect a confirmed backend
// write. Field names follow the backend's wire format (PascalCase, primary
// key sent back on create). Only resources some service decodes into typed
// fields appear here; resources the staff console manages generically travel
// as schema-free maps.

type Customer struct {
	CustomerID    int    `json:"CustomerID,omitempty"`
	FirstName     string `json:"FirstName"`
	LastName      string `json:"LastName"`
	Contact       string `json:"Contact"`
	Email         string `json:"Email"`
	LoyaltyPoints int    `json:"LoyaltyPoints"`
}

type MenuItem struct {
	MenuItemID   int     `json:"MenuItemID,omitempty"`
	Name         string  `json:"Name"`
	Price        float64 `json:"Price,string"`
	Category     string  `json:"Category"`
	Availability bool    `json:"Availability"`
}

type Order struct {
	OrderID   int    `json:"OrderID,omitempty"`
	OrderDate string `json:"OrderDate"`
	Status    string `json:"Status"`
}

type OrderDetail struct {
	OrderID    int `json:"OrderID"`
	MenuItemID int `json:"MenuItemID"`
	Quantity   int `json:"Quantity"`
}

// OrderCustomer links an order to the customer who placed it.
type OrderCustomer struct {
	OrderID    int `json:"OrderID"`
	CustomerID int `json:"CustomerID"`
}

// Bill monetary fields travel as strings with two decimals, matching the
// backend's decimal columns.
type Bill struct {
	BillID              int    `json:"BillID,omitempty"`
	OrderID             int    `json:"OrderID"`
	TotalBeforeDiscount string `json:"TotalBeforeDiscount"`
	DiscountAmount      string `json:"DiscountAmount"`
	TaxAmount           string `json:"TaxAmount"`
	PaymentMethod       string `json:"PaymentMethod"`
	PaymentDate         string `json:"PaymentDate"`
}

type BillComputation struct {
	BillID      int    `json:"BillID"`
	TotalAmount string `json:"TotalAmount"`
}

type Discount struct {
	DiscountID  int     `json:"DiscountID,omitempty"`
	Name        string  `json:"Name"`
	Description string  `json:"Description"`
	Percentage  float64 `json:"Percentage,string"`
	StartDate   string  `json:"StartDate"`
	EndDate     string  `json:"EndDate"`
}

// Applies records that a discount was applied to a bill.
type Applies struct {
	BillID     int `json:"BillID"`
	DiscountID int `json:"DiscountID"`
}

type Reservation struct {
	ReservationID       int    `json:"ReservationID,omitempty"`
	ReservationDateTime string `json:"ReservationDateTime"`
	NumPeople           int    `json:"NumPeople"`
	TableNumber         int    `json:"TableNumber"`
	Status              string `json:"Status"`
	Confirmed           bool   `json:"Confirmed"`
}
