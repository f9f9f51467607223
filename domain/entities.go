package domain

import "time"

// User roles. Fixed at account creation.
const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
)

// ValidRole reports whether role is one of the two supported user types.
func ValidRole(role string) bool {
	return role == RoleFarmer || role == RoleBuyer
}

// User is the single identity record all login methods converge on.
// Email, Phone, GoogleID and AppleID are optional but unique when set;
// a user is always reachable through at least one of them.
type User struct {
	ID            uint
	Email         string
	Phone         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Role          string
	GoogleID      string
	AppleID       string
	EmailVerified bool
	PhoneVerified bool
	ProfileImage  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OTPChallenge is a short-lived one-time code bound to a phone number.
// At most one active (unverified, unexpired) challenge exists per phone.
type OTPChallenge struct {
	ID        uint
	Phone     string
	Code      string
	ExpiresAt time.Time
	Verified  bool
	CreatedAt time.Time
}

// Expired reports whether the challenge is past its expiry at now.
func (c *OTPChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Session is the server-side record backing a bearer token. Deleting it
// revokes the token even before the token's own expiry.
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// AuthResult is the common outcome of every successful authentication.
type AuthResult struct {
	User      *User
	Token     string
	SessionID string
	ExpiresIn int64
}

// ExternalIdentity holds the claims extracted from a verified provider token.
type ExternalIdentity struct {
	Subject       string
	Email         string
	FirstName     string
	LastName      string
	Picture       string
	EmailVerified bool
}

// RegisterInput carries an email/password registration request.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Phone     string
}

// OTPLoginInput carries an OTP verification request. Role and names are only
// consulted when the phone has no user yet.
type OTPLoginInput struct {
	Phone     string
	Code      string
	Role      string
	FirstName string
	LastName  string
}

// Product units accepted by the marketplace.
const (
	UnitKg      = "kg"
	UnitQuintal = "quintal"
	UnitTons    = "tons"
)

// ValidUnit reports whether unit is a supported product unit.
func ValidUnit(unit string) bool {
	return unit == UnitKg || unit == UnitQuintal || unit == UnitTons
}

// Product is an organic-waste listing owned by a farmer. Price is a decimal
// carried as a string to avoid float drift.
type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit"`
	FarmerID    uint      `json:"farmerId"`
	WasteType   string    `json:"wasteType,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Order statuses.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Order groups items bought from a single farmer.
type Order struct {
	ID              uint        `json:"id"`
	BuyerID         uint        `json:"buyerId"`
	SellerID        uint        `json:"sellerId"`
	TotalAmount     string      `json:"totalAmount"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderItem captures a product, quantity and the price at purchase time.
type OrderItem struct {
	ID        uint      `json:"id"`
	OrderID   uint      `json:"orderId"`
	ProductID uint      `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartItem is one product in a user's cart. One row per user+product.
type CartItem struct {
	ID        uint `json:"id"`
	UserID    uint `json:"userId"`
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// Favorite marks a product saved by a user.
type Favorite struct {
	ID        uint `json:"id"`
	UserID    uint `json:"userId"`
	ProductID uint `json:"productId"`
}
