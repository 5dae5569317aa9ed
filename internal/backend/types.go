package backend

import (
	"github.com/nutrileaf/nutrileaf-client/internal/app/model"
)

// User is the backend's representation of an account, as returned by the
// auth endpoints.
type User struct {
	ID      uint   `json:"id"`
	Name    string `json:"fullName"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    string `json:"role"`
	Status  string `json:"status"`
	Image   string `json:"image"`
}

// ToProfile converts the backend account into the locally cached shape.
func (u User) ToProfile() model.SessionProfile {
	role := model.UserRole(u.Role)
	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	return model.SessionProfile{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Address: u.Address,
		Role:    role,
		Status:  u.Status,
		Image:   u.Image,
	}
}

// AuthResult is the outcome of a successful login or registration.
type AuthResult struct {
	Token string
	User  User
}

// VerifiedUser is the authoritative slice of the profile returned by
// /auth/verify-role.
type VerifiedUser struct {
	Role   string `json:"role"`
	Status string `json:"status"`
	Image  string `json:"image"`
}

// RegisterRequest mirrors the /auth/register contract.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

// Product is a marketplace listing entry.
type Product struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
}

// Category is a marketplace category entry.
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// OrderItem is one line of an order submission.
type OrderItem struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// OrderRequest mirrors the /orders/create contract.
type OrderRequest struct {
	UserName        string      `json:"userName"`
	UserPhone       string      `json:"userPhone"`
	DeliveryAddress string      `json:"deliveryAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	TotalAmount     float64     `json:"totalAmount"`
	Items           []OrderItem `json:"items"`
}

// Order is an order-history entry.
type Order struct {
	ID              uint        `json:"id"`
	UserName        string      `json:"userName"`
	UserPhone       string      `json:"userPhone"`
	DeliveryAddress string      `json:"deliveryAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	CreatedAt       string      `json:"createdAt"`
	Items           []OrderItem `json:"items"`
}

// Thread is a forum discussion thread.
type Thread struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Likes     int       `json:"likes"`
	CreatedAt string    `json:"createdAt"`
	Comments  []Comment `json:"comments"`
}

// Comment is a reply inside a thread.
type Comment struct {
	ID        uint   `json:"id"`
	ThreadID  uint   `json:"threadId"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
}

// ScanResult is the plant-health classification for an uploaded image.
type ScanResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Advice     string  `json:"advice"`
}
