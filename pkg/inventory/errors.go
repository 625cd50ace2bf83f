package inventory

import "errors"

// Failure kinds surfaced by the engine and the transaction manager. Match
// them with errors.Is; callers usually receive them wrapped with context.
var (
	ErrNullContainer        = errors.New("inventory: container is absent or has no slots")
	ErrInvalidItem          = errors.New("inventory: invalid item")
	ErrInvalidItemSet       = errors.New("inventory: invalid item set")
	ErrInsufficientQuantity = errors.New("inventory: not enough matching items")
	ErrInsufficientSpace    = errors.New("inventory: not enough space")
	// ErrRemovalIncomplete means a removal scan ended with units still owed
	// after the availability check passed. It indicates inconsistent state.
	ErrRemovalIncomplete = errors.New("inventory: removal incomplete")
)

// Severe reports whether err signals an internal consistency failure rather
// than an ordinary precondition miss.
func Severe(err error) bool {
	return errors.Is(err, ErrRemovalIncomplete)
}

// Kind returns a short name for the failure kind wrapped in err, or "" when
// err carries none of the engine's failures.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNullContainer):
		return "NullContainer"
	case errors.Is(err, ErrInvalidItemSet):
		return "InvalidItemSet"
	case errors.Is(err, ErrInvalidItem):
		return "InvalidItem"
	case errors.Is(err, ErrInsufficientQuantity):
		return "InsufficientQuantity"
	case errors.Is(err, ErrInsufficientSpace):
		return "InsufficientSpace"
	case errors.Is(err, ErrRemovalIncomplete):
		return "RemovalIncomplete"
	default:
		return ""
	}
}
