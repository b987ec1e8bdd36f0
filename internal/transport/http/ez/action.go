// Package ez 一行注册 JSON 动作接口，统一出参为 {code,msg,data} 信封。
package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "holistay/internal/transport/http/response"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, log *zap.Logger) EZ {
	if log == nil {
		log = zap.NewNop()
	}
	return EZ{g: g, log: log}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一错误对象；Fields 不为空时随 data 下发（表单逐字段报错）
type AErr struct {
	Code   int
	Msg    string
	Fields map[string]string
	Err    error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}
func Invalid(msg string, fields map[string]string) error {
	return &AErr{Code: resp.CodeBadRequest, Msg: msg, Fields: fields}
}

// Action I 入参，O 出参。鉴权走分组中间件，不在这里重复。
type Action[I any, O any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			var ae *AErr
			if errors.As(err, &ae) {
				// 底层错误不出响应，只进日志
				if ae.Err != nil {
					e.log.Error("action failed",
						zap.String("method", a.Method), zap.String("path", a.Path), zap.Error(ae.Err))
				}
				if len(ae.Fields) > 0 {
					c.JSON(http.StatusOK, resp.Invalid(ae.Error(), ae.Fields))
					return
				}
				c.JSON(http.StatusOK, resp.Error(ae.Code, ae.Error()))
				return
			}
			e.log.Error("action failed",
				zap.String("method", a.Method), zap.String("path", a.Path), zap.Error(err))
			c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}
