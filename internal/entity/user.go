package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleCourier  Role = "courier"
)

// User is referenced by id/role only; credentials live with the auth service.
type User struct {
	ID       int64
	Username string
	Role     Role
}

type Restaurant struct {
	ID          int64
	Name        string
	Address     string
	Description string
}

// Dish carries the catalog's current price; the cart snapshots it per line.
type Dish struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	PriceCents   int64
	PhotoURL     string
}
