package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    Route
		wantErr bool
	}{
		{name: "empty", path: "", want: ListRoute},
		{name: "root", path: "/", want: ListRoute},
		{name: "list", path: "/issues", want: ListRoute},
		{name: "list trailing slash", path: "/issues/", want: ListRoute},
		{name: "create", path: "/issues/create", want: CreateRoute},
		{name: "edit", path: "/issues/edit/42", want: EditRoute("42")},
		{name: "detail", path: "/issues/abc-1", want: DetailRoute("abc-1")},
		{name: "escaped id", path: "/issues/a%2Fb", want: DetailRoute("a/b")},
		{name: "unknown root", path: "/tasks", wantErr: true},
		{name: "edit without id", path: "/issues/edit/", want: DetailRoute("edit")},
		{name: "too deep", path: "/issues/1/comments", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRoute(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRoute)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoute_StringRoundTrip(t *testing.T) {
	for _, r := range []Route{ListRoute, CreateRoute, EditRoute("7"), DetailRoute("x/y")} {
		parsed, err := ParseRoute(r.String())
		require.NoError(t, err, r.String())
		assert.Equal(t, r, parsed)
	}
}

func TestScreen_String(t *testing.T) {
	assert.Equal(t, "list", ScreenList.String())
	assert.Equal(t, "create", ScreenCreate.String())
	assert.Equal(t, "edit", ScreenEdit.String())
	assert.Equal(t, "detail", ScreenDetail.String())
	assert.Equal(t, "unknown", Screen(99).String())
}
