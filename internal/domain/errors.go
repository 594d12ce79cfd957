package domain

// ErrorKind 对应边界层的一个 HTTP 状态码
type ErrorKind int

const (
	KindValidation ErrorKind = iota // 400
	KindAuthentication              // 401
	KindForbidden                   // 403
	KindNotFound                    // 404
	KindInternal                    // 500
)

// Error 业务层统一错误：在检测点产生，原样传到边界再翻译
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "domain error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error     { return &Error{Kind: KindValidation, Msg: msg} }
func Authentication(msg string) error { return &Error{Kind: KindAuthentication, Msg: msg} }
func Forbidden(msg string) error      { return &Error{Kind: KindForbidden, Msg: msg} }
func NotFound(msg string) error       { return &Error{Kind: KindNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}
