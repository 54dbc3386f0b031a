package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	domainauth "github.com/squidword/squidword/internal/domain/auth"
)

func TestPriorityMapper_DefaultPolicy(t *testing.T) {
	m := PriorityMapper{}

	assert.Equal(t, domainauth.RoleTeacher, m.Map([]string{"teacher", "staff"}))
	assert.Equal(t, domainauth.RoleDistrictAdmin, m.Map([]string{"district_admin"}))
	assert.Equal(t, domainauth.RoleStudent, m.Map([]string{"staff", "student"}))
	assert.Equal(t, domainauth.RoleNone, m.Map([]string{}))
	assert.Equal(t, domainauth.RoleNone, m.Map([]string{"contact"}))
}

func TestPriorityMapper_IgnoresDuplicatesAndOrder(t *testing.T) {
	m := PriorityMapper{}

	assert.Equal(t, domainauth.RoleStaff, m.Map([]string{"district_admin", "staff", "staff"}))
	assert.Equal(t, domainauth.RoleStudent, m.Map([]string{"district_admin", "teacher", "staff", "student"}))
	assert.Equal(t, domainauth.RoleNone, m.Map(nil))
}
