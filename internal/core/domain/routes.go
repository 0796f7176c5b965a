package domain

import "strings"

// Client-side route surface.
const (
	RouteRoot              = "/"
	RouteLogin             = "/login"
	RouteUnauthorized      = "/unauthorized"
	RouteAdmin             = "/admin"
	RouteAdminDashboard    = "/admin/dashboard"
	RouteAdminEmployees    = "/admin/employee-management"
	RouteAdminCustomers    = "/admin/customer-management"
	RouteAdminFinancial    = "/admin/financial-management"
	RouteAdminOrders       = "/admin/order-management"
	RouteEmployee          = "/employee"
	RouteEmployeeDashboard = "/employee/dashboard"
)

// routePermissions maps a role to the protected route prefixes it may enter.
// Read-only; the route guard is its only consumer.
var routePermissions = map[string][]string{
	RoleAdmin:    {RouteAdmin, RouteEmployee},
	RoleManager:  {RouteEmployee},
	RoleEmployee: {RouteEmployee},
}

// RoleMayEnter reports whether role is permitted under the given route path.
func RoleMayEnter(role, path string) bool {
	for _, prefix := range routePermissions[role] {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// LandingRoute returns the post-login landing route for a role. The inverse
// route guard and the login screen both use this table, keeping the two
// redirect paths consistent.
func LandingRoute(role string) string {
	switch role {
	case RoleAdmin:
		return RouteAdminDashboard
	case RoleManager, RoleEmployee:
		return RouteEmployeeDashboard
	default:
		return RouteLogin
	}
}
