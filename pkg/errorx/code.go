package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009

	// OAuth exchange codes
	TokenExchange      Code = 200001
	UnsupportedOwner   Code = 200002
	IdentityResolution Code = 200003
	MissingEmail       Code = 200004

	// Proxy codes
	ProxyTransport Code = 300001
	ProxyTimeout   Code = 300002
	DownstreamAPI  Code = 300003
)
