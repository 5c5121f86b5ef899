package core

// Unit is a live unit instance. Damage and Defense start at the archetype
// base but may be raised afterwards by exploration bonuses. ActionsLeft and
// MovementLeft are zero on the turn the unit is created and are reset to the
// archetype allowance at each upkeep.
type Unit struct {
	ID           int
	Team         Team
	Kind         UnitKind
	X, Y         int
	Health       int
	Damage       int
	Defense      int
	ActionsLeft  int
	MovementLeft int
	Level        int
}

// Archetype returns the immutable stat record for this unit's kind.
func (u *Unit) Archetype() UnitArchetype {
	a, _ := UnitArchetypeOf(u.Kind)
	return a
}

// NewUnit creates a unit instance from its archetype. The caller supplies
// the id; allocation is owned by the game state.
func NewUnit(id int, team Team, a UnitArchetype, x, y, level int) *Unit {
	return &Unit{
		ID:      id,
		Team:    team,
		Kind:    a.Kind,
		X:       x,
		Y:       y,
		Health:  a.Health,
		Damage:  a.Damage,
		Defense: a.Defense,
		Level:   level,
	}
}

// Building is a live building instance. Buildings never move and never
// retaliate when attacked.
type Building struct {
	ID          int
	Team        Team
	Kind        BuildingKind
	X, Y        int
	Health      int
	Damage      int
	Defense     int
	ActionsLeft int
	Level       int
}

// Archetype returns the immutable stat record for this building's kind.
func (b *Building) Archetype() BuildingArchetype {
	a, _ := BuildingArchetypeOf(b.Kind)
	return a
}

// NewBuilding creates a building instance from its archetype.
func NewBuilding(id int, team Team, a BuildingArchetype, x, y, level int) *Building {
	return &Building{
		ID:      id,
		Team:    team,
		Kind:    a.Kind,
		X:       x,
		Y:       y,
		Health:  a.Health,
		Damage:  a.Damage,
		Defense: a.Defense,
		Level:   level,
	}
}
