package auth

// Kind classifies an auth failure so the HTTP layer can pick a status code.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindConflict    Kind = "conflict"
	KindAuth        Kind = "auth"
	KindRateLimited Kind = "rate_limited"
	KindInternal    Kind = "internal"
)

// Error is a client-facing failure. Message is safe to return verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Signup and profile validation
var (
	ErrMissingFields      = &Error{Kind: KindValidation, Message: "Please provide all required fields: fullName, email, password"}
	ErrPasswordTooShort   = &Error{Kind: KindValidation, Message: "Password must be at least 6 characters"}
	ErrPasswordTooLong    = &Error{Kind: KindValidation, Message: "Password must be at most 72 bytes"}
	ErrInvalidEmail       = &Error{Kind: KindValidation, Message: "Please provide a valid email address"}
	ErrProfilePicRequired = &Error{Kind: KindValidation, Message: "Profile picture is required"}
	ErrInvalidProfilePic  = &Error{Kind: KindValidation, Message: "Invalid profile picture"}
	ErrInvalidRequestBody = &Error{Kind: KindValidation, Message: "Invalid request body"}
)

var (
	ErrEmailExists        = &Error{Kind: KindConflict, Message: "Email already exists"}
	ErrInvalidCredentials = &Error{Kind: KindAuth, Message: "Invalid email or password"}
	ErrTooManyAttempts    = &Error{Kind: KindRateLimited, Message: "Too many login attempts, please try again later"}
	ErrInternal           = &Error{Kind: KindInternal, Message: "Internal server error"}
)

// Session middleware rejections
var (
	ErrNoToken             = &Error{Kind: KindAuth, Message: "Unauthorized - No Token Provided"}
	ErrInvalidToken        = &Error{Kind: KindAuth, Message: "Unauthorized - Invalid Token"}
	ErrSessionUserNotFound = &Error{Kind: KindAuth, Message: "Unauthorized - User not found"}
)
