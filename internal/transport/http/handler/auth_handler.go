package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"holistay/internal/identity"
	"holistay/internal/routing"
	"holistay/internal/session"
)

// 固定的用户可见提示。认证失败从不透传 provider 细节。
const (
	msgSignupOK = "Conta criada com sucesso! Verifique seu email e clique no link de confirmação para ativar sua conta. Após confirmar, você poderá fazer login."
	msgBadLogin = "Credenciais inválidas. Verifique seu email e senha."
	msgBadCode  = "Não foi possível autenticar. Tente novamente."
)

type CookieOpts struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	provider identity.Provider
	resolver *session.Resolver
	cookie   CookieOpts
	log      *zap.Logger
}

func NewAuthHandler(provider identity.Provider, resolver *session.Resolver, cookie CookieOpts, log *zap.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, resolver: resolver, cookie: cookie, log: log}
}

// SignUp POST /auth/signup（表单）。
// 失败把 provider 的错误原样带回注册页；成功去登录页提示确认邮箱。
func (h *AuthHandler) SignUp(c *gin.Context) {
	_, err := h.provider.SignUp(c.Request.Context(), identity.SignUpParams{
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		FullName: c.PostForm("full_name"),
	})
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/signup?error="+url.QueryEscape(err.Error()))
		return
	}
	c.Redirect(http.StatusSeeOther, routing.AreaLogin+"?message="+url.QueryEscape(msgSignupOK))
}

// Login POST /auth/login（表单）。
// 成功后按角色分流；失败只给固定提示，不区分"没有此用户/密码错/未确认"。
func (h *AuthHandler) Login(c *gin.Context) {
	sess, err := h.provider.SignInWithPassword(c.Request.Context(),
		c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, routing.AreaLogin+"?error="+url.QueryEscape(msgBadLogin))
		return
	}
	h.setSessionCookie(c, sess)
	c.Redirect(http.StatusSeeOther, h.areaFor(c, sess))
}

// Callback GET /auth/callback?code= 确认码换会话。
// 缺码、换码失败、查不到用户——统一回登录页给固定提示。
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		h.failCallback(c)
		return
	}
	sess, err := h.provider.ExchangeCodeForSession(c.Request.Context(), code)
	if err != nil {
		h.failCallback(c)
		return
	}
	h.setSessionCookie(c, sess)
	c.Redirect(http.StatusFound, h.areaFor(c, sess))
}

// Logout POST /auth/logout。会话是无状态签名 cookie，注销即清 cookie。
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusSeeOther, routing.AreaLogin)
}

// areaFor 会话建立后走 Session Resolver + Role Router 拿目标区域
func (h *AuthHandler) areaFor(c *gin.Context, sess *identity.Session) string {
	_, role, ok := h.resolver.Resolve(c.Request.Context(), sess.Token)
	if !ok {
		// 刚签发的令牌解析不了只可能是存储抖动，按默认区域走
		h.log.Warn("fresh session did not resolve", zap.String("uid", sess.User.ID))
		return routing.AreaForRole("")
	}
	return routing.AreaForRole(role)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sess *identity.Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetCookie(h.cookie.Name, sess.Token, maxAge, "/", "", h.cookie.Secure, true)
}

func (h *AuthHandler) failCallback(c *gin.Context) {
	c.Redirect(http.StatusFound, routing.AreaLogin+"?error="+url.QueryEscape(msgBadCode))
}
