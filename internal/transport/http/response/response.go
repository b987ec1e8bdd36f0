package response

// 业务码直接沿用 HTTP 语义
const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)

var codeMsg = map[int]string{
	CodeOK:           "OK",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeServerError:  "Internal Server Error",
}

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造响应（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	if msg == "" {
		msg = codeMsg[code]
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data interface{}) Resp { return New(CodeOK, "", data) }

func Error(code int, customMsg string) Resp { return New(code, customMsg, nil) }

// Invalid 校验失败：msg + 字段错误表
func Invalid(msg string, fields map[string]string) Resp {
	return New(CodeBadRequest, msg, map[string]any{"fields": fields})
}
