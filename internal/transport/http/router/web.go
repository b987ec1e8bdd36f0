package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"holistay/internal/cep"
	"holistay/internal/property"
	"holistay/internal/session"
	"holistay/internal/transport/http/handler"
	mdw "holistay/internal/transport/http/middleware"
)

type Deps struct {
	Resolver   *session.Resolver
	Auth       *handler.AuthHandler
	Pages      *handler.PagesHandler
	Properties *property.Service
	CEP        *cep.Client
	CookieName string
	// 模板位置，默认 web/templates/*.html
	TemplateGlob string
}

func NewWebEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		mdw.Session(d.Resolver, d.CookieName),
	)

	glob := d.TemplateGlob
	if glob == "" {
		glob = "web/templates/*.html"
	}
	r.LoadHTMLGlob(glob)
	r.Static("/static", "web/static")

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 页面
	r.GET("/", d.Pages.Home)
	r.GET("/login", d.Pages.Login)
	r.GET("/signup", d.Pages.Signup)
	r.GET("/portal", d.Pages.Portal)
	r.GET("/dashboard", d.Pages.Dashboard)
	r.GET("/settings", d.Pages.Settings)

	// 认证流
	auth := r.Group("/auth")
	{
		auth.POST("/signup", d.Auth.SignUp)
		auth.POST("/login", d.Auth.Login)
		auth.GET("/callback", d.Auth.Callback)
		auth.POST("/logout", d.Auth.Logout)
	}

	// 设置页用的 JSON 接口
	api := r.Group("/api/v1")
	api.Use(cors.Default())
	mountPropertyActions(api, d.Properties, l)
	mountCEPActions(api, d.CEP, l)

	return r
}
