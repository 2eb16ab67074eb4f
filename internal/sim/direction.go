package sim

// Direction is one of the four movement axes a client can press.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight

	directionCount
)

// ParseDirection validates a direction string received from a client.
func ParseDirection(value string) (Direction, bool) {
	switch value {
	case "up":
		return DirectionUp, true
	case "down":
		return DirectionDown, true
	case "left":
		return DirectionLeft, true
	case "right":
		return DirectionRight, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "unknown"
	}
}

// vector returns the per-axis unit delta for a direction.
func (d Direction) vector() (float64, float64) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Intent is a single start/stop signal for one direction key.
type Intent struct {
	PlayerID string
	Key      Direction
	Pressed  bool
}
