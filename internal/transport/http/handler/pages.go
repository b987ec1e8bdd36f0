package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"holistay/internal/domain"
	"holistay/internal/property"
	"holistay/internal/routing"
	mdw "holistay/internal/transport/http/middleware"
)

// PagesHandler 服务端渲染的页面。身份/角色由 Session 中间件放进 context，
// 这里只做跳转决策和取数。
type PagesHandler struct {
	props *property.Service
	log   *zap.Logger
}

func NewPagesHandler(props *property.Service, log *zap.Logger) *PagesHandler {
	return &PagesHandler{props: props, log: log}
}

// Home GET / 纯分流：匿名去登录，已登录按角色走
func (h *PagesHandler) Home(c *gin.Context) {
	uid := c.GetString(mdw.KeyUserID)
	if uid == "" {
		c.Redirect(http.StatusFound, routing.AreaLogin)
		return
	}
	c.Redirect(http.StatusFound, routing.AreaForRole(c.GetString(mdw.KeyRole)))
}

func (h *PagesHandler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Error":   c.Query("error"),
		"Message": c.Query("message"),
	})
}

func (h *PagesHandler) Signup(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"Error": c.Query("error"),
	})
}

// Portal GET /portal 业主专区，非 owner 按 Role Router 弹走
func (h *PagesHandler) Portal(c *gin.Context) {
	uid := c.GetString(mdw.KeyUserID)
	if uid == "" {
		c.Redirect(http.StatusFound, routing.AreaLogin)
		return
	}
	role := c.GetString(mdw.KeyRole)
	if role != domain.RoleOwner {
		c.Redirect(http.StatusFound, routing.AreaForRole(role))
		return
	}
	c.HTML(http.StatusOK, "portal.html", gin.H{
		"Email": c.GetString(mdw.KeyUserEmail),
	})
}

// Dashboard GET /dashboard 管理区；owner 误入时同样按 Role Router 弹走
func (h *PagesHandler) Dashboard(c *gin.Context) {
	uid := c.GetString(mdw.KeyUserID)
	if uid == "" {
		c.Redirect(http.StatusFound, routing.AreaLogin)
		return
	}
	role := c.GetString(mdw.KeyRole)
	if role == domain.RoleOwner {
		c.Redirect(http.StatusFound, routing.AreaForRole(role))
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Email": c.GetString(mdw.KeyUserEmail),
	})
}

// Settings GET /settings 房源管理页：列表 + 新增表单
func (h *PagesHandler) Settings(c *gin.Context) {
	uid := c.GetString(mdw.KeyUserID)
	if uid == "" {
		c.Redirect(http.StatusFound, routing.AreaLogin)
		return
	}
	props, err := h.props.List(c.Request.Context(), uid)
	if err != nil {
		h.log.Error("list properties", zap.String("profile_id", uid), zap.Error(err))
		props = nil
	}
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"Email":      c.GetString(mdw.KeyUserEmail),
		"Properties": props,
		"LoadError":  err != nil,
	})
}
