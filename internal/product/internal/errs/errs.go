package errs

var (
	SystemError     = ErrorCode{Code: 514001, Msg: "系统错误"}
	ProductNotFound = ErrorCode{Code: 514002, Msg: "商品未找到"}
	InvalidInput    = ErrorCode{Code: 514003, Msg: "商品信息非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
