package model

// ChangeKind tags a ChangeNotification. The set is closed: every consumer
// switches over these two values.
type ChangeKind string

const (
	CartChanged    ChangeKind = "cart-changed"
	ProfileChanged ChangeKind = "profile-changed"
)

// ChangeNotification is the ephemeral message describing that the cart or
// the session profile changed. It is delivered, never stored. The payload
// matching the kind may be inlined so subscribers skip a redundant re-read;
// a nil payload means "re-read yourself" (for profile-changed it also means
// the session ended).
type ChangeNotification struct {
	Kind    ChangeKind      `json:"kind"`
	Cart    *Cart           `json:"cart,omitempty"`
	Profile *SessionProfile `json:"profile,omitempty"`
}
