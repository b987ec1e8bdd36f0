// Package routing 是角色到应用区域的唯一映射点。
// 登录、callback、首页、portal、dashboard 都从这里取目标，避免各处各解释一遍角色。
package routing

import "holistay/internal/domain"

const (
	AreaLogin     = "/login"
	AreaPortal    = "/portal"
	AreaDashboard = "/dashboard"
)

// AreaForRole 全函数：owner 去 /portal，其余角色（含空串）一律 /dashboard。
func AreaForRole(role string) string {
	if role == domain.RoleOwner {
		return AreaPortal
	}
	return AreaDashboard
}
