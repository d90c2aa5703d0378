package handler

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tableside/restaurant-console/internal/core/domain"
	"github.com/tableside/restaurant-console/internal/core/form"
	"github.com/tableside/restaurant-console/internal/core/resource"
	"github.com/tableside/restaurant-console/internal/infrastructure/backend"
)

// ConsoleResource is one backend collection managed through the generic
// console: its explicit schema, its form descriptor, and the store mirroring
// it. Records stay schema-free maps; the form declares what staff can edit
// and the schema declares which attribute identifies a record.
type ConsoleResource struct {
	Name   string
	Title  string
	Schema resource.Schema
	Form   *form.Form
	Store  *resource.Store[map[string]any]
}

// Registry holds every console-managed resource in display order.
type Registry struct {
	order  []*ConsoleResource
	byName map[string]*ConsoleResource
}

type resourceDef struct {
	name    string
	title   string
	idField string
	fields  []form.Field
}

func consoleDefs() []resourceDef {
	return []resourceDef{
		{
			name: domain.ResMenuItems, title: "Menu Items", idField: "MenuItemID",
			fields: []form.Field{
				{Name: "Name", Label: "Name", Kind: form.Text, Required: true},
				{Name: "Price", Label: "Price", Kind: form.Number, Required: true, Step: "0.01"},
				{Name: "Category", Label: "Category", Kind: form.Text, Required: true, Placeholder: "e.g. Mains"},
				{Name: "Availability", Label: "Available", Kind: form.Checkbox},
			},
		},
		{
			name: domain.ResCustomers, title: "Customers", idField: "CustomerID",
			fields: []form.Field{
				{Name: "FirstName", Label: "First name", Kind: form.Text, Required: true},
				{Name: "LastName", Label: "Last name", Kind: form.Text, Required: true},
				{Name: "Email", Label: "Email", Kind: form.Email, Required: true},
				{Name: "Contact", Label: "Contact", Kind: form.Tel},
				{Name: "LoyaltyPoints", Label: "Loyalty points", Kind: form.Number},
			},
		},
		{
			name: domain.ResOrders, title: "Orders", idField: "OrderID",
			fields: []form.Field{
				{Name: "OrderDate", Label: "Order date", Kind: form.DateTime, Required: true},
				{Name: "Status", Label: "Status", Kind: form.Select, Required: true, Options: []form.Option{
					{Value: "Pending", Label: "Pending"},
					{Value: "Completed", Label: "Completed"},
					{Value: "Cancelled", Label: "Cancelled"},
				}},
			},
		},
		{
			name: domain.ResBills, title: "Bills", idField: "BillID",
			fields: []form.Field{
				{Name: "OrderID", Label: "Order", Kind: form.Number, Required: true},
				{Name: "TotalBeforeDiscount", Label: "Total before discount", Kind: form.Number, Required: true, Step: "0.01"},
				{Name: "DiscountAmount", Label: "Discount amount", Kind: form.Number, Step: "0.01"},
				{Name: "TaxAmount", Label: "Tax amount", Kind: form.Number, Step: "0.01"},
				{Name: "PaymentMethod", Label: "Payment method", Kind: form.Select, Required: true, Options: []form.Option{
					{Value: "Cash", Label: "Cash"},
					{Value: "Card", Label: "Card"},
					{Value: "Online", Label: "Online"},
				}},
				{Name: "PaymentDate", Label: "Payment date", Kind: form.Date, Required: true},
			},
		},
		{
			name: domain.ResDiscounts, title: "Discounts", idField: "DiscountID",
			fields: []form.Field{
				{Name: "Name", Label: "Code", Kind: form.Text, Required: true, Placeholder: "e.g. WELCOME10"},
				{Name: "Description", Label: "Description", Kind: form.TextArea},
				{Name: "Percentage", Label: "Percentage", Kind: form.Number, Required: true, Step: "0.01"},
				{Name: "StartDate", Label: "Start date", Kind: form.Date, Required: true},
				{Name: "EndDate", Label: "End date", Kind: form.Date, Required: true},
			},
		},
		{
			name: domain.ResReservations, title: "Reservations", idField: "ReservationID",
			fields: []form.Field{
				{Name: "ReservationDateTime", Label: "When", Kind: form.DateTime, Required: true},
				{Name: "NumPeople", Label: "Party size", Kind: form.Number, Required: true},
				{Name: "TableNumber", Label: "Table", Kind: form.Number, Required: true},
				{Name: "Status", Label: "Status", Kind: form.Select, Required: true, Options: []form.Option{
					{Value: "Booked", Label: "Booked"},
					{Value: "Seated", Label: "Seated"},
					{Value: "Cancelled", Label: "Cancelled"},
				}},
				{Name: "Confirmed", Label: "Confirmed", Kind: form.Checkbox},
			},
		},
		{
			name: domain.ResStaff, title: "Staff", idField: "StaffID",
			fields: []form.Field{
				{Name: "Name", Label: "Name", Kind: form.Text, Required: true},
				{Name: "Role", Label: "Role", Kind: form.Select, Required: true, Options: []form.Option{
					{Value: "Manager", Label: "Manager"},
					{Value: "Chef", Label: "Chef"},
					{Value: "Waiter", Label: "Waiter"},
					{Value: "Cashier", Label: "Cashier"},
				}},
				{Name: "Email", Label: "Email", Kind: form.Email, Required: true},
				{Name: "Salary", Label: "Salary", Kind: form.Number, Step: "0.01"},
			},
		},
		{
			name: domain.ResBranches, title: "Branches", idField: "BranchID",
			fields: []form.Field{
				{Name: "Name", Label: "Name", Kind: form.Text, Required: true},
				{Name: "Location", Label: "Location", Kind: form.Text, Required: true},
				{Name: "Contact", Label: "Contact", Kind: form.Tel},
			},
		},
		{
			name: domain.ResSuppliers, title: "Suppliers", idField: "SupplierID",
			fields: []form.Field{
				{Name: "Name", Label: "Name", Kind: form.Text, Required: true},
				{Name: "Contact", Label: "Contact", Kind: form.Tel, Required: true},
			},
		},
		{
			name: domain.ResInventory, title: "Inventory", idField: "ItemID",
			fields: []form.Field{
				{Name: "ItemName", Label: "Item", Kind: form.Text, Required: true},
				{Name: "QuantityAvailable", Label: "Quantity", Kind: form.Number, Required: true},
				{Name: "ReorderLevel", Label: "Reorder level", Kind: form.Number},
				{Name: "SupplierID", Label: "Supplier", Kind: form.Number},
			},
		},
		{
			name: domain.ResFeedbacks, title: "Feedback", idField: "FeedbackID",
			fields: []form.Field{
				{Name: "Rating", Label: "Rating", Kind: form.Number, Required: true},
				{Name: "Comment", Label: "Comment", Kind: form.TextArea},
				{Name: "Date", Label: "Date", Kind: form.Date, Required: true},
			},
		},
		{
			name: domain.ResFoodChallenges, title: "Food Challenges", idField: "ChallengeID",
			fields: []form.Field{
				{Name: "Name", Label: "Name", Kind: form.Text, Required: true},
				{Name: "Description", Label: "Description", Kind: form.TextArea},
				{Name: "Reward", Label: "Reward", Kind: form.Text},
				{Name: "StartDate", Label: "Start date", Kind: form.Date, Required: true},
				{Name: "EndDate", Label: "End date", Kind: form.Date, Required: true},
			},
		},
	}
}

// NewRegistry wires every console resource to a store over its backend
// collection.
func NewRegistry(client *backend.Client, log zerolog.Logger) *Registry {
	defs := consoleDefs()
	r := &Registry{byName: make(map[string]*ConsoleResource, len(defs))}
	for _, def := range defs {
		schema := resource.Schema{Resource: def.name, IDField: def.idField}
		res := &ConsoleResource{
			Name:   def.name,
			Title:  def.title,
			Schema: schema,
			Form:   form.New(def.fields...),
			Store: resource.NewStore(
				backend.NewCollection[map[string]any](client, def.name),
				schema,
				recordID(def.idField),
				log,
			),
		}
		r.order = append(r.order, res)
		r.byName[def.name] = res
	}
	return r
}

// Lookup returns the resource registered under name.
func (r *Registry) Lookup(name string) (*ConsoleResource, bool) {
	res, ok := r.byName[name]
	return res, ok
}

// All returns the resources in display order.
func (r *Registry) All() []*ConsoleResource {
	return r.order
}

// recordID reads the declared identifying attribute out of a schema-free
// record. JSON decoding hands numbers over as float64.
func recordID(field string) func(map[string]any) int {
	return func(rec map[string]any) int {
		switch v := rec[field].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			n, _ := strconv.Atoi(v)
			return n
		}
		return 0
	}
}
