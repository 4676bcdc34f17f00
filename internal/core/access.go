package core

// CanAccess reports whether the caller may operate on the given warehouse.
// Admins may touch every warehouse; a partner only the one they manage.
// Used as a guard at the top of every warehouse-scoped operation, before
// any read or write happens.
func (u UserContext) CanAccess(warehouseID int) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.WarehouseID != nil && *u.WarehouseID == warehouseID
}

// IsAdmin reports whether the caller holds the admin role.
func (u UserContext) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RequireAdmin returns a forbidden error unless the caller is an admin.
func (u UserContext) RequireAdmin() error {
	if !u.IsAdmin() {
		return Forbiddenf("admin access required")
	}
	return nil
}
