package ports_test

import (
	"testing"

	"github.com/squidword/squidword/internal/adapters/authroles"
	"github.com/squidword/squidword/internal/adapters/clever"
	"github.com/squidword/squidword/internal/adapters/cookiestore"
	"github.com/squidword/squidword/internal/adapters/devauth"
	redisadapter "github.com/squidword/squidword/internal/adapters/redis"
	"github.com/squidword/squidword/internal/mocks"
	authmocks "github.com/squidword/squidword/internal/mocks/auth"
	"github.com/squidword/squidword/internal/ports"
)

// This test only verifies that adapters and mocks conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.IdentityProvider = (*clever.Client)(nil)
	var _ ports.IdentityProvider = (*devauth.Provider)(nil)
	var _ ports.IdentityProvider = (*authmocks.MockIdentityProvider)(nil)
	var _ ports.IdentityProvider = (*mocks.MockIdentityProvider)(nil)
	var _ ports.ProfileFetcher = (*mocks.MockProfileFetcher)(nil)

	var _ ports.SessionStore = (*cookiestore.Store)(nil)
	var _ ports.SessionStore = (*redisadapter.SessionStore)(nil)
	var _ ports.SessionStore = (*authmocks.MemorySessionStore)(nil)
	var _ ports.SessionStore = (*mocks.MockSessionStore)(nil)

	var _ ports.RoleMapper = authroles.PriorityMapper{}
	var _ ports.RoleMapper = authmocks.StaticRoleMapper{}
	var _ ports.RoleMapper = (*mocks.MockRoleMapper)(nil)
}
