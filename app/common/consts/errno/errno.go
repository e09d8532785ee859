package errno

const (
	StatusOK = 10000
)

const (
	TooManyRequests = 40000 + iota
)

const (
	InternalError = 50000 + iota
	InvalidParam
	NoResults
	MarketplaceError
	ModelServiceError
	GatewayTimeout
	CacheError
)
