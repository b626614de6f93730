package domain

const MessageSuccess = "Successful."

// Failure messages exposed to callers.
const (
	MessageFetchRatesFailed      = "Failed to fetch exchange rates."
	MessageFetchHistoricalFailed = "Failed to fetch historical exchange rates."
	MessageParseHistoricalFailed = "Failed to parse historical exchange rates."
	MessageCurrencyNotSupported  = "Currency not supported."
	MessageUnsupportedCurrency   = "Unsupported currency."
)

// Result is the uniform envelope every currency operation returns.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

type PagedResult[T any] struct {
	Result[T]
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Message: MessageSuccess, Data: &data}
}

func Fail[T any](message string) Result[T] {
	return Result[T]{Success: false, Message: message}
}

func FailPaged[T any](message string) PagedResult[T] {
	return PagedResult[T]{Result: Fail[T](message)}
}
