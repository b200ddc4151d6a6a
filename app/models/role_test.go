package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleSatisfies(t *testing.T) {
	cases := []struct {
		name string
		have uint
		want uint
		ok   bool
	}{
		{"user meets user", RoleUser, RoleUser, true},
		{"user fails staff", RoleUser, RoleStaff, false},
		{"user fails admin", RoleUser, RoleAdmin, false},
		{"staff meets user", RoleStaff, RoleUser, true},
		{"staff meets staff", RoleStaff, RoleStaff, true},
		{"staff fails admin", RoleStaff, RoleAdmin, false},
		{"admin meets user", RoleAdmin, RoleUser, true},
		{"admin meets staff", RoleAdmin, RoleStaff, true},
		{"admin meets admin", RoleAdmin, RoleAdmin, true},
		{"unknown role satisfies nothing", 99, RoleUser, false},
		{"unknown requirement never met", RoleAdmin, 99, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, RoleSatisfies(tc.have, tc.want))
		})
	}
}
