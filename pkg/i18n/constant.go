package i18n

const (
	DEFAULT_LANG = "en"
)

var ALLOW_LANG = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

const (
	ERROR_INTERNAL                = "error.internal"
	ERROR_NOT_FOUND               = "error.notfound"
	ERROR_INVALIDARGUMENT         = "error.invalidargument"
	ERROR_UNAUTHORIZED            = "error.unauthorized"
	ERROR_EXIST                   = "error.exist"
	ERROR_FORBIDDEN               = "error.forbidden"
	ERROR_TOO_MANY_REQUESTS       = "error.tooManyRequests"
	ERROR_LOGIN_ACCOUNT_INCORRECT = "error.login.account.incorrect"
)
