// Package navigation maps the auth status to the set of screens the
// presentation layer may show.
package navigation

import (
	"slices"

	"github.com/dmitrijs2005/signlink/internal/client/authstate"
)

// Subtree is a group of routes shown together for one auth status.
type Subtree int

const (
	// SubtreeSplash renders nothing while the startup check is running.
	SubtreeSplash Subtree = iota
	SubtreeAuth
	SubtreeApp
)

// Route names.
const (
	RouteLogin    = "login"
	RouteSignup   = "signup"
	RouteMain     = "main"
	RouteMessages = "messages"
	RouteSearch   = "search"
	RouteProfile  = "profile"
)

var routes = map[Subtree][]string{
	SubtreeSplash: nil,
	SubtreeAuth:   {RouteLogin, RouteSignup},
	SubtreeApp:    {RouteMain, RouteMessages, RouteSearch, RouteProfile},
}

// Select returns the subtree for s. Unknown values map to the splash.
func Select(s authstate.Status) Subtree {
	switch s {
	case authstate.StatusAuthenticated:
		return SubtreeApp
	case authstate.StatusUnauthenticated:
		return SubtreeAuth
	default:
		return SubtreeSplash
	}
}

func (t Subtree) String() string {
	switch t {
	case SubtreeAuth:
		return "auth"
	case SubtreeApp:
		return "app"
	default:
		return "splash"
	}
}

// Routes lists the subtree's routes; the first one is the initial screen.
func (t Subtree) Routes() []string {
	return slices.Clone(routes[t])
}

func (t Subtree) Allows(route string) bool {
	return slices.Contains(routes[t], route)
}
