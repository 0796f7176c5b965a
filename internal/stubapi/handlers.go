package stubapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/svcdesk/adminconsole/internal/core/domain"
)

// listResponse is the success envelope every list endpoint uses.
type listResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

func list(c echo.Context, data any, total int) error {
	return c.JSON(http.StatusOK, listResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination{Page: 1, Limit: total, TotalItems: total, TotalPages: 1},
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool               `json:"success"`
	Token   string             `json:"token,omitempty"`
	User    *domain.UserRecord `json:"user,omitempty"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{Message: "Invalid payload"})
	}

	acc, ok := s.st.findByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil {
		s.logger.Warn().Err(domain.ErrInvalidCredentials).Str("email", req.Email).Msg("login rejected")
		return c.JSON(http.StatusUnauthorized, message{Message: "Invalid email or password."})
	}

	claims := jwt.MapClaims{
		"sub":      acc.user.ID,
		"username": acc.user.Username,
		"role":     acc.user.Role,
		"exp":      time.Now().Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, message{Message: "Token generation failed"})
	}

	user := acc.user
	return c.JSON(http.StatusOK, loginResponse{Success: true, Token: token, User: &user})
}

func (s *Server) listUsers(c echo.Context) error {
	users := s.st.users()
	return list(c, users, len(users))
}

func (s *Server) listCustomers(c echo.Context) error {
	return list(c, s.st.customers, len(s.st.customers))
}

func (s *Server) searchCustomers(c echo.Context) error {
	q := c.QueryParam("q")
	var matched []domain.Customer
	for _, cust := range s.st.customers {
		if q == "" || cust.PhoneNumber == q || cust.FirstName == q || cust.LastName == q {
			matched = append(matched, cust)
		}
	}
	return list(c, matched, len(matched))
}

type createCustomerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

func (s *Server) createCustomer(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{Message: "Invalid payload"})
	}

	// Field-level failures come back as a structured errors array, which the
	// console passes through to the originating form untouched.
	var issues []fieldIssue
	if req.FirstName == "" {
		issues = append(issues, fieldIssue{Field: "firstName", Message: "firstName is required"})
	}
	if req.LastName == "" {
		issues = append(issues, fieldIssue{Field: "lastName", Message: "lastName is required"})
	}
	if req.PhoneNumber == "" {
		issues = append(issues, fieldIssue{Field: "phoneNumber", Message: "phoneNumber is required"})
	}
	if len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, message{Message: "Validation failed", Errors: issues})
	}

	s.st.mu.Lock()
	cust := domain.Customer{
		ID:          fmt.Sprintf("c-%d", len(s.st.customers)+1),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		CreatedAt:   time.Now(),
	}
	s.st.customers = append(s.st.customers, cust)
	s.st.mu.Unlock()

	return c.JSON(http.StatusCreated, map[string]any{"success": true, "data": cust})
}

func (s *Server) listServices(c echo.Context) error {
	search := c.QueryParam("search")
	var matched []domain.Service
	for _, svc := range s.st.services {
		if search == "" || svc.Name == search {
			matched = append(matched, svc)
		}
	}
	return list(c, matched, len(matched))
}

func (s *Server) listDiscounts(c echo.Context) error {
	return list(c, s.st.discounts, len(s.st.discounts))
}

func (s *Server) listExpenses(c echo.Context) error {
	return list(c, s.st.expenses, len(s.st.expenses))
}

func (s *Server) listOrders(c echo.Context) error {
	s.st.mu.Lock()
	orders := make([]domain.Order, 0, len(s.st.orders))
	for _, o := range s.st.orders {
		orders = append(orders, *o)
	}
	s.st.mu.Unlock()
	return list(c, orders, len(orders))
}

// priceOf looks up a service's price per unit. Services are seeded once and
// never mutated, so this needs no lock.
func (s *Server) priceOf(serviceID string) float64 {
	for _, svc := range s.st.services {
		if svc.ID == serviceID {
			return svc.PricePerUnit
		}
	}
	return 0
}

// recalc rederives line prices and the order total, the way the real backend
// does on every line mutation. Caller holds the store lock.
func (s *Server) recalc(o *domain.Order) {
	var total float64
	for i := range o.Services {
		line := &o.Services[i]
		line.UnitPrice = s.priceOf(line.ServiceID)
		line.LineTotal = line.UnitPrice * float64(line.NumberOfUnit)
		total += line.LineTotal
	}
	o.Total = total
}

type createOrderRequest struct {
	OrderDate    time.Time           `json:"orderDate"`
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
	HandlerID    string              `json:"handlerId"`
	DiscountID   string              `json:"discountId"`
	Services     []domain.LineEdit   `json:"services"`
}

func (s *Server) createOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{Message: "Invalid payload"})
	}

	var issues []fieldIssue
	if req.CustomerInfo.FirstName == "" {
		issues = append(issues, fieldIssue{Field: "customerInfo.firstName", Message: "customerInfo.firstName is required"})
	}
	if len(req.Services) == 0 {
		issues = append(issues, fieldIssue{Field: "services", Message: "at least one service is required"})
	}
	if len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, message{Message: "Validation failed", Errors: issues})
	}

	s.st.mu.Lock()
	order := &domain.Order{
		ID:           fmt.Sprintf("o-%d", len(s.st.orders)+1),
		OrderDate:    req.OrderDate,
		CustomerInfo: req.CustomerInfo,
		HandlerID:    req.HandlerID,
		DiscountID:   req.DiscountID,
		Status:       domain.OrderPending,
	}
	for _, l := range req.Services {
		order.Services = append(order.Services, domain.OrderServiceLine{
			ServiceID:    l.ServiceID,
			NumberOfUnit: l.NumberOfUnit,
		})
	}
	s.recalc(order)
	s.st.orders[order.ID] = order
	s.st.mu.Unlock()

	return c.JSON(http.StatusCreated, map[string]any{"success": true, "data": order})
}

type updateOrderRequest struct {
	OrderDate    time.Time           `json:"orderDate"`
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
	HandlerID    string              `json:"handlerId"`
	DiscountID   string              `json:"discountId"`
	Status       domain.OrderStatus  `json:"orderStatus"`
}

func (s *Server) updateOrder(c echo.Context) error {
	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{Message: "Invalid payload"})
	}
	ok := s.st.mutateOrder(c.Param("id"), func(o *domain.Order) {
		o.OrderDate = req.OrderDate
		o.CustomerInfo = req.CustomerInfo
		o.HandlerID = req.HandlerID
		o.DiscountID = req.DiscountID
		if req.Status != "" {
			o.Status = req.Status
		}
	})
	if !ok {
		return c.JSON(http.StatusNotFound, message{Message: "Order not found"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) deleteOrder(c echo.Context) error {
	id := c.Param("id")
	s.st.mu.Lock()
	_, ok := s.st.orders[id]
	delete(s.st.orders, id)
	s.st.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, message{Message: "Order not found"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

type lineRequest struct {
	ServiceID    string `json:"serviceId"`
	NumberOfUnit int    `json:"numberOfUnit"`
}

func (s *Server) addOrderService(c echo.Context) error {
	var req lineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{Message: "Invalid payload"})
	}
	ok := s.st.mutateOrder(c.Param("id"), func(o *domain.Order) {
		o.Services = append(o.Services, domain.OrderServiceLine{
			ServiceID:    req.ServiceID,
			NumberOfUnit: req.NumberOfUnit,
		})
		s.recalc(o)
	})
	if !ok {
		return c.JSON(http.StatusNotFound, message{Message: "Order not found"})
	}
	return c.JSON(http.StatusCreated, map[string]bool{"success": true})
}

func (s *Server) updateOrderService(c echo.Context) error {
	var req lineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, message{Message: "Invalid payload"})
	}
	serviceID := c.Param("serviceId")
	found := false
	ok := s.st.mutateOrder(c.Param("id"), func(o *domain.Order) {
		for i := range o.Services {
			if o.Services[i].ServiceID == serviceID {
				o.Services[i].NumberOfUnit = req.NumberOfUnit
				found = true
				break
			}
		}
		s.recalc(o)
	})
	if !ok || !found {
		return c.JSON(http.StatusNotFound, message{Message: "Order service not found"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) removeOrderService(c echo.Context) error {
	serviceID := c.Param("serviceId")
	found := false
	ok := s.st.mutateOrder(c.Param("id"), func(o *domain.Order) {
		kept := o.Services[:0]
		for _, line := range o.Services {
			if line.ServiceID == serviceID {
				found = true
				continue
			}
			kept = append(kept, line)
		}
		o.Services = kept
		s.recalc(o)
	})
	if !ok || !found {
		return c.JSON(http.StatusNotFound, message{Message: "Order service not found"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) dailyRevenue(c echo.Context) error {
	now := time.Now()
	rows := []domain.DailyRevenue{
		{Date: now.AddDate(0, 0, -1), Revenue: 240.5, Orders: 7},
		{Date: now, Revenue: 18, Orders: 1},
	}
	return list(c, rows, len(rows))
}

func (s *Server) financialSummary(c echo.Context) error {
	var expenses float64
	for _, e := range s.st.expenses {
		expenses += e.Amount
	}
	var revenue float64
	var count int
	s.st.mu.Lock()
	for _, o := range s.st.orders {
		revenue += o.Total
		count++
	}
	s.st.mu.Unlock()

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data": domain.FinancialSummary{
			TotalRevenue:  revenue,
			TotalExpenses: expenses,
			NetIncome:     revenue - expenses,
			OrderCount:    count,
		},
	})
}

func (s *Server) orderTraffic(c echo.Context) error {
	points := []domain.TrafficPoint{
		{Label: "morning", Orders: 4},
		{Label: "afternoon", Orders: 9},
		{Label: "evening", Orders: 2},
	}
	return list(c, points, len(points))
}
