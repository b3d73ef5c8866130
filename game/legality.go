package game

// Legality is the result of attempting a move. Anything other than OK guarantees the board
// was left untouched.
type Legality int

const (
	OK Legality = iota
	Occupied
	Suicide
	KoViolation
	GameTooLong
)

func (l Legality) String() string {
	switch l {
	case OK:
		return "ok"
	case Occupied:
		return "occupied"
	case Suicide:
		return "suicide"
	case KoViolation:
		return "ko violation"
	case GameTooLong:
		return "game too long"
	default:
		return "unknown"
	}
}
