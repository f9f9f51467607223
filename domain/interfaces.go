package domain

import "context"

// UserRepository defines user data access operations. Find methods return
// ErrUserNotFound for absence; Create returns ErrUserAlreadyExists when a
// unique column (email, phone, google_id, apple_id) is already taken.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*User, error)
	FindByAppleID(ctx context.Context, appleID string) (*User, error)
	LinkGoogleID(ctx context.Context, userID uint, googleID string) error
	LinkAppleID(ctx context.Context, userID uint, appleID string) error
	SetPhoneVerified(ctx context.Context, userID uint, verified bool) error
	ListAll(ctx context.Context) ([]User, error)
}

// OTPRepository defines persistence for OTP challenges.
type OTPRepository interface {
	Create(ctx context.Context, challenge *OTPChallenge) error
	DeleteUnverified(ctx context.Context, phone string) error
	FindMatch(ctx context.Context, phone, code string) (*OTPChallenge, error)
	MarkVerified(ctx context.Context, id uint) error
}

// SessionRepository defines session data access operations.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context) error
}

// ProductRepository defines marketplace product persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, filter ProductFilter) ([]Product, error)
	Update(ctx context.Context, product *Product) error
}

// ProductUpdate carries the mutable fields of a product listing. IsActive
// is a pointer so an omitted value keeps the stored flag.
type ProductUpdate struct {
	Name        string
	Description string
	Price       string
	ImageURL    string
	Category    string
	Quantity    int
	Unit        string
	WasteType   string
	IsActive    *bool
}

// ProductFilter narrows product listings. Zero values match everything.
type ProductFilter struct {
	Category string
	FarmerID uint
}

// CartRepository defines cart persistence. Upsert adds quantity to an
// existing user+product row instead of duplicating it.
type CartRepository interface {
	Upsert(ctx context.Context, item *CartItem) error
	ListByUser(ctx context.Context, userID uint) ([]CartItem, error)
	Delete(ctx context.Context, userID, itemID uint) error
}

// FavoriteRepository defines favorite persistence. Create is rejected with
// ErrAlreadyFavorited for a duplicate user+product pair.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *Favorite) error
	ListByUser(ctx context.Context, userID uint) ([]Favorite, error)
	Delete(ctx context.Context, userID, favoriteID uint) error
}

// OrderRepository defines order persistence. Create persists the order and
// its items atomically.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
}

// AuthService defines the authentication orchestrator: one operation per
// login method, all producing the same AuthResult shape.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, input OTPLoginInput) (*AuthResult, error)
	LoginWithGoogle(ctx context.Context, idToken, role string) (*AuthResult, error)
	LoginWithApple(ctx context.Context, identityToken, role, firstName, lastName string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// OTPService defines OTP issuance and verification.
type OTPService interface {
	Issue(ctx context.Context, phone string) (*OTPChallenge, error)
	Verify(ctx context.Context, phone, code string) (bool, error)
}

// CatalogService defines marketplace business logic.
type CatalogService interface {
	CreateProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, id uint) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	UpdateProduct(ctx context.Context, farmerID, productID uint, update ProductUpdate) (*Product, error)
	AddCartItem(ctx context.Context, userID, productID uint, quantity int) error
	ListCart(ctx context.Context, userID uint) ([]CartItem, error)
	RemoveCartItem(ctx context.Context, userID, itemID uint) error
	AddFavorite(ctx context.Context, userID, productID uint) error
	ListFavorites(ctx context.Context, userID uint) ([]Favorite, error)
	RemoveFavorite(ctx context.Context, userID, favoriteID uint) error
	PlaceOrder(ctx context.Context, buyerID uint, shippingAddress string, items []OrderItem) (*Order, error)
	ListOrders(ctx context.Context, userID uint) ([]Order, error)
}

// PasswordService defines password operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines bearer-token operations.
type TokenService interface {
	Generate(userID uint, role, sessionID string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// NotificationService defines outbound SMS dispatch.
type NotificationService interface {
	SendSMS(to, message string) error
}

// IdentityVerifier validates a provider-issued identity token and extracts
// its claims. Implementations exist for Google and Apple.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*ExternalIdentity, error)
}

// TokenClaims represents the decoded bearer-token claim set.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
