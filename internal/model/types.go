package model

// Role classifies a user account. Stored lower-case in the users table;
// NormalizeRole must be applied before comparing against RoleAdmin because
// legacy rows may carry mixed case or stray whitespace.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Category is a product grouping. Seeded at first run, managed by admins.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is a catalog entry.
//
// Price is decimal-as-text: the store never interprets it, and total
// computation folds it through PriceValue. Image is an opaque asset key,
// not raw bytes. CategoryName is populated by queries that join against
// categories; it is not a column of the products table.
type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	Image        string `json:"image"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
}

// User is an account row. Password holds the argon2id encoded hash,
// never the clear text.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// CartLine is one product plus a quantity in the in-memory cart.
// Lines are never persisted directly; checkout snapshots them into
// order_items. Quantity is always >= 1.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Order is a persisted checkout snapshot.
type Order struct {
	ID    int64       `json:"id"`
	Date  string      `json:"date"`
	Total int64       `json:"total"`
	Items []OrderItem `json:"items"`
}

// OrderItem is a persisted snapshot of one cart line. ProductName and
// ProductPrice come from joining products at read time; the quantity is
// fixed at checkout and does not track later product changes.
type OrderItem struct {
	ID           int64  `json:"id"`
	OrderID      int64  `json:"order_id"`
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
	ProductName  string `json:"product_name,omitempty"`
	ProductPrice string `json:"product_price,omitempty"`
}
