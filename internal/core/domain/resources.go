package domain

import "time"

// Customer is a customer record as managed on the customer-management screen.
type Customer struct {
	ID          string    `json:"_id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	PhoneNumber string    `json:"phoneNumber"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// Service is an offered service with its unit pricing.
type Service struct {
	ID           string  `json:"_id"`
	Name         string  `json:"serviceName"`
	Unit         string  `json:"serviceUnit"`
	PricePerUnit float64 `json:"servicePricePerUnit"`
	Status       string  `json:"serviceStatus,omitempty"`
}

// Discount is a percentage or fixed discount applicable to orders.
type Discount struct {
	ID        string    `json:"_id"`
	Name      string    `json:"discountName"`
	Type      string    `json:"discountType"` // "percentage" or "fixed"
	Value     float64   `json:"discountValue"`
	ExpiresAt time.Time `json:"expiryDate,omitempty"`
}

// Expense is a single expense entry on the financial-management screen.
type Expense struct {
	ID          string    `json:"_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	ExpenseDate time.Time `json:"expenseDate"`
}

// FinancialSummary aggregates revenue and expenses over a date range.
type FinancialSummary struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetIncome     float64 `json:"netIncome"`
	OrderCount    int     `json:"orderCount"`
}

// TrafficPoint is one bucket of the order-traffic analytics series.
type TrafficPoint struct {
	Label  string `json:"label"`
	Orders int    `json:"orders"`
}

// DailyRevenue is one row of the daily revenue analytics table.
type DailyRevenue struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
}
