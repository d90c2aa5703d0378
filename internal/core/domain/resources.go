package domain

// Canonical collection names exposed by the backend. Shared vocabulary for
// the REST client, the console registry, and any service counting or
// fetching whole collections.
const (
	ResCustomers        = "customers"
	ResBranches         = "branches"
	ResStaff            = "staff"
	ResMenuItems        = "menu-items"
	ResOrders           = "orders"
	ResOrderDetails     = "order-details"
	ResOrderCustomers   = "order-customers"
	ResBills            = "bills"
	ResBillComputations = "bill-computations"
	ResDiscounts        = "discounts"
	ResApplies          = "applies"
	ResReservations     = "reservations"
	ResFeedbacks        = "feedbacks"
	ResSuppliers        = "suppliers"
	ResFoodChallenges   = "food-challenges"
	ResInventory        = "inventory"
)
