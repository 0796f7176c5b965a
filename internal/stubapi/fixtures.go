package stubapi

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/svcdesk/adminconsole/internal/core/domain"
)

// account pairs a user record with its password hash; the stub keeps hashes
// so the login path exercises the same bcrypt comparison the real backend
// performs.
type account struct {
	user domain.UserRecord
	hash []byte
}

// store is the stub's in-memory dataset, seeded with enough rows for every
// screen to render something.
type store struct {
	mu        sync.Mutex
	accounts  map[string]*account // keyed by email
	customers []domain.Customer
	services  []domain.Service
	discounts []domain.Discount
	expenses  []domain.Expense
	orders    map[string]*domain.Order
}

func seedStore() *store {
	now := time.Now()
	s := &store{
		accounts: map[string]*account{},
		orders:   map[string]*domain.Order{},
	}

	seedUser := func(id, username, email, first, last, role, password string) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}
		s.accounts[email] = &account{
			user: domain.UserRecord{
				ID: id, Username: username, Email: email,
				FirstName: first, LastName: last,
				Role: role, Status: "active", CreatedAt: now,
			},
			hash: hash,
		}
	}
	seedUser("u-1", "admin", "admin@svcdesk.test", "Ada", "Admin", domain.RoleAdmin, "admin123")
	seedUser("u-2", "meg", "manager@svcdesk.test", "Meg", "Manager", domain.RoleManager, "manager123")
	seedUser("u-3", "eli", "employee@svcdesk.test", "Eli", "Employee", domain.RoleEmployee, "employee123")

	s.customers = []domain.Customer{
		{ID: "c-1", FirstName: "Nora", LastName: "Diaz", PhoneNumber: "555-0101", Address: "12 Elm St", CreatedAt: now},
		{ID: "c-2", FirstName: "Sam", LastName: "Okoro", PhoneNumber: "555-0102", Address: "9 Oak Ave", CreatedAt: now},
	}
	s.services = []domain.Service{
		{ID: "s-1", Name: "Wash & Fold", Unit: "kg", PricePerUnit: 3.5, Status: "active"},
		{ID: "s-2", Name: "Dry Cleaning", Unit: "item", PricePerUnit: 8, Status: "active"},
		{ID: "s-3", Name: "Ironing", Unit: "item", PricePerUnit: 2, Status: "active"},
	}
	s.discounts = []domain.Discount{
		{ID: "d-1", Name: "Loyalty 10%", Type: "percentage", Value: 10, ExpiresAt: now.AddDate(1, 0, 0)},
	}
	s.expenses = []domain.Expense{
		{ID: "e-1", Description: "Detergent restock", Amount: 140.20, ExpenseDate: now.AddDate(0, 0, -3)},
		{ID: "e-2", Description: "Machine maintenance", Amount: 320, ExpenseDate: now.AddDate(0, 0, -10)},
	}
	s.orders["o-1"] = &domain.Order{
		ID:        "o-1",
		OrderDate: now,
		CustomerInfo: domain.CustomerInfo{
			FirstName: "Nora", LastName: "Diaz", PhoneNumber: "555-0101",
		},
		HandlerID: "u-3",
		Status:    domain.OrderPending,
		Services: []domain.OrderServiceLine{
			{ServiceID: "s-1", NumberOfUnit: 4, UnitPrice: 3.5, LineTotal: 14},
			{ServiceID: "s-3", NumberOfUnit: 2, UnitPrice: 2, LineTotal: 4},
		},
		Total: 18,
	}
	return s
}

func (s *store) findByEmail(email string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[email]
	return acc, ok
}

func (s *store) users() []domain.UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.UserRecord, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc.user)
	}
	return out
}

// mutateOrder runs fn under the store lock so line edits are serialized.
func (s *store) mutateOrder(id string, fn func(*domain.Order)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return false
	}
	fn(o)
	return true
}
