package domain

import "errors"

// ErrorKind classifies business errors so callers can react without string
// matching.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindMissingID
	KindNotFound
	KindAuthentication
	KindDuplicateEmail
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindMissingID:
		return "missing_id"
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	case KindDuplicateEmail:
		return "duplicate_email"
	}
	return "unknown"
}

// Error is a business rule failure tagged with its kind.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches another *Error of the same kind. A target without a message
// matches every error of its kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

var (
	// ErrValidation matches any entry validation failure.
	ErrValidation = &Error{Kind: KindValidation}
	// ErrAuthentication matches both authentication failures.
	ErrAuthentication = &Error{Kind: KindAuthentication}
	// ErrNotFound matches any missing record.
	ErrNotFound = &Error{Kind: KindNotFound}

	ErrInvalidDescription = &Error{Kind: KindValidation, Message: "invalid description, must not be blank"}
	ErrInvalidMonth       = &Error{Kind: KindValidation, Message: "invalid month, must be between 1 and 12"}
	ErrInvalidYear        = &Error{Kind: KindValidation, Message: "invalid year, must follow YYYY pattern"}
	ErrInvalidAmount      = &Error{Kind: KindValidation, Message: "invalid amount, must be greater than 0"}
	ErrInvalidType        = &Error{Kind: KindValidation, Message: "invalid type, must specify a transaction type"}

	ErrMissingID     = &Error{Kind: KindMissingID, Message: "entry id is required"}
	ErrEntryNotFound = &Error{Kind: KindNotFound, Message: "entry not found"}

	// ErrUserNotFound is an authentication error even for plain lookups by id.
	ErrUserNotFound      = &Error{Kind: KindAuthentication, Message: "user not found"}
	ErrIncorrectPassword = &Error{Kind: KindAuthentication, Message: "incorrect password"}
	ErrEmailTaken        = &Error{Kind: KindDuplicateEmail, Message: "email already registered"}
	ErrPasswordTooLong   = &Error{Kind: KindValidation, Message: "invalid password, must be at most 72 bytes"}
)
