package errors

// Messages carried in ErrorResponse.Message. Clients of the trivia front end
// compare against these strings, so they must not change.
const (
	MsgBadRequest      = "bad request"
	MsgNotFound        = "resource not found"
	MsgUnprocessable   = "unprocessable"
	MsgTooManyRequests = "too many requests"
	MsgInternalError   = "internal server error"
)
