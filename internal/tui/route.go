package tui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Screen identifies which view a route shows.
type Screen int

const (
	ScreenList   Screen = iota // /issues
	ScreenCreate               // /issues/create
	ScreenEdit                 // /issues/edit/:id
	ScreenDetail               // /issues/:id
)

// String returns the string representation of the screen.
func (s Screen) String() string {
	switch s {
	case ScreenList:
		return "list"
	case ScreenCreate:
		return "create"
	case ScreenEdit:
		return "edit"
	case ScreenDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// Route is a navigation target.
type Route struct {
	ID     string // Issue ID (detail and edit screens)
	Screen Screen
}

// ErrInvalidRoute is returned by ParseRoute for paths it does not know.
var ErrInvalidRoute = errors.New("invalid route")

// Convenience constructors.
var (
	ListRoute   = Route{Screen: ScreenList}
	CreateRoute = Route{Screen: ScreenCreate}
)

// DetailRoute returns the route of the issue detail screen.
func DetailRoute(id string) Route { return Route{Screen: ScreenDetail, ID: id} }

// EditRoute returns the route of the issue edit screen.
func EditRoute(id string) Route { return Route{Screen: ScreenEdit, ID: id} }

// ParseRoute parses a path such as "/issues/edit/42".
// The empty path and "/" are the list.
func ParseRoute(path string) (Route, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return ListRoute, nil
	}

	parts := strings.Split(trimmed, "/")
	if parts[0] != "issues" {
		return Route{}, fmt.Errorf("%w: %q", ErrInvalidRoute, path)
	}

	switch {
	case len(parts) == 1:
		return ListRoute, nil
	case len(parts) == 2 && parts[1] == "create":
		return CreateRoute, nil
	case len(parts) == 3 && parts[1] == "edit":
		id, err := url.PathUnescape(parts[2])
		if err != nil || id == "" {
			return Route{}, fmt.Errorf("%w: %q", ErrInvalidRoute, path)
		}
		return EditRoute(id), nil
	case len(parts) == 2:
		id, err := url.PathUnescape(parts[1])
		if err != nil || id == "" {
			return Route{}, fmt.Errorf("%w: %q", ErrInvalidRoute, path)
		}
		return DetailRoute(id), nil
	}
	return Route{}, fmt.Errorf("%w: %q", ErrInvalidRoute, path)
}

// String returns the path of the route.
func (r Route) String() string {
	switch r.Screen {
	case ScreenCreate:
		return "/issues/create"
	case ScreenEdit:
		return "/issues/edit/" + url.PathEscape(r.ID)
	case ScreenDetail:
		return "/issues/" + url.PathEscape(r.ID)
	case ScreenList:
		return "/issues"
	}
	return "/issues"
}
