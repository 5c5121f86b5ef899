package core

// Team identifies one of the two sides. Blue always acts first each turn;
// Red acts second and wins the final tie-break for it.
type Team int

const (
	Blue Team = iota
	Red
)

// Teams lists both sides in acting order.
var Teams = [2]Team{Blue, Red}

func (t Team) Opponent() Team {
	if t == Blue {
		return Red
	}
	return Blue
}

func (t Team) String() string {
	switch t {
	case Blue:
		return "BLUE"
	case Red:
		return "RED"
	default:
		return "UNKNOWN"
	}
}
