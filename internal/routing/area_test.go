package routing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"holistay/internal/routing"
)

func TestAreaForRole(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{"owner", "/portal"},
		{"manager", "/dashboard"},
		{"", "/dashboard"},
		{"admin", "/dashboard"},
		{"OWNER", "/dashboard"}, // 角色区分大小写，存储里只有小写
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, routing.AreaForRole(tc.role), "role=%q", tc.role)
	}
}
