package navigation

import (
	"testing"

	"github.com/dmitrijs2005/signlink/internal/client/authstate"
	"github.com/stretchr/testify/assert"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		status authstate.Status
		want   Subtree
	}{
		{authstate.StatusUnresolved, SubtreeSplash},
		{authstate.StatusUnauthenticated, SubtreeAuth},
		{authstate.StatusAuthenticated, SubtreeApp},
		{authstate.Status(99), SubtreeSplash},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.status))
		})
	}
}

func TestRoutes(t *testing.T) {
	assert.Empty(t, SubtreeSplash.Routes())
	assert.Equal(t, []string{"login", "signup"}, SubtreeAuth.Routes())
	assert.Equal(t, []string{"main", "messages", "search", "profile"}, SubtreeApp.Routes())

	r := SubtreeAuth.Routes()
	r[0] = "changed"
	assert.Equal(t, RouteLogin, SubtreeAuth.Routes()[0])
}

func TestAllows(t *testing.T) {
	assert.True(t, SubtreeAuth.Allows(RouteSignup))
	assert.False(t, SubtreeAuth.Allows(RouteProfile))
	assert.True(t, SubtreeApp.Allows(RouteMessages))
	assert.False(t, SubtreeApp.Allows(RouteLogin))
	assert.False(t, SubtreeSplash.Allows(RouteLogin))
}
