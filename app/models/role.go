package models

// Role is immutable reference data seeded at migration time.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

const (
	RoleUser  uint = 1
	RoleStaff uint = 2
	RoleAdmin uint = 3
)

// roleLevel orders the tiers: user < staff < admin. A higher tier satisfies
// any lower-tier requirement, so an admin passes a staff-only check.
var roleLevel = map[uint]int{
	RoleUser:  1,
	RoleStaff: 2,
	RoleAdmin: 3,
}

// RoleSatisfies reports whether an account holding role `have` meets an
// endpoint that requires at least role `want`. Unknown roles satisfy nothing.
func RoleSatisfies(have, want uint) bool {
	haveLevel, ok := roleLevel[have]
	if !ok {
		return false
	}
	wantLevel, ok := roleLevel[want]
	if !ok {
		return false
	}
	return haveLevel >= wantLevel
}
