package game

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/castlewars/engine/internal/config"
	"github.com/castlewars/engine/internal/game/core"
)

// GameState is the single authoritative, mutable world state of one match.
// It owns the entity registry (per-team id -> instance maps), the economy
// ledger, the time pools and the id allocator. Exactly one instance exists
// per game and all access is serialized by the Runner; no locking is needed.
type GameState struct {
	Map       *core.WorldMap
	Occupancy *core.OccupancyIndex

	Balances  map[core.Team]int
	Units     map[core.Team]map[int]*core.Unit
	Buildings map[core.Team]map[int]*core.Building
	CastleIDs map[core.Team]int
	TimeLeft  map[core.Team]time.Duration

	Turn int

	cfg    config.GameConfig
	nextID int
	logger zerolog.Logger
}

// NewGameState builds the initial world: both home castles are placed at
// the map's fixed castle coordinates and their ids captured. A castle tile
// that cannot legally hold a castle is collaborator misuse.
func NewGameState(m *core.WorldMap, cfg config.GameConfig, logger zerolog.Logger) (*GameState, error) {
	gs := &GameState{
		Map:       m,
		Occupancy: core.NewOccupancyIndex(m.W, m.H),
		Balances:  map[core.Team]int{core.Blue: cfg.StartingBalance, core.Red: cfg.StartingBalance},
		Units:     map[core.Team]map[int]*core.Unit{core.Blue: {}, core.Red: {}},
		Buildings: map[core.Team]map[int]*core.Building{core.Blue: {}, core.Red: {}},
		CastleIDs: map[core.Team]int{},
		TimeLeft:  map[core.Team]time.Duration{core.Blue: cfg.InitialTimePool(), core.Red: cfg.InitialTimePool()},
		cfg:       cfg,
		logger:    logger.With().Str("component", "GameState").Logger(),
	}

	castle, _ := core.BuildingArchetypeOf(core.MainCastle)
	for _, team := range core.Teams {
		loc := m.CastleLoc(team)
		b := gs.insertBuilding(team, castle, loc.X, loc.Y, 1)
		if b == nil {
			return nil, core.ErrOccupiedTile
		}
		gs.CastleIDs[team] = b.ID
	}
	return gs, nil
}

// Rules returns the balance constants this game runs under.
func (gs *GameState) Rules() config.GameConfig { return gs.cfg }

// allocateID hands out the next entity id. Ids are monotonic for the
// lifetime of the game, shared between units and buildings, and never
// reused even after deletions.
func (gs *GameState) allocateID() int {
	id := gs.nextID
	gs.nextID++
	return id
}

// ---------------------------------------------------------------------------
// Placement predicates
// ---------------------------------------------------------------------------

// UnitPlaceable reports whether a unit of the given archetype may occupy
// (x, y): in bounds, unit-free, and walkable terrain.
func (gs *GameState) UnitPlaceable(a core.UnitArchetype, x, y int) bool {
	t, ok := gs.Map.TerrainAt(x, y)
	return ok && gs.Occupancy.UnitFree(x, y) && a.Walkable.Contains(t)
}

// BuildingPlaceable reports whether a building of the given archetype may
// occupy (x, y): in bounds, building-free, and allowed terrain.
func (gs *GameState) BuildingPlaceable(a core.BuildingArchetype, x, y int) bool {
	t, ok := gs.Map.TerrainAt(x, y)
	return ok && gs.Occupancy.BuildingFree(x, y) && a.Placeable.Contains(t)
}

// ---------------------------------------------------------------------------
// Creation
// ---------------------------------------------------------------------------

// PlaceUnit validates and inserts a new unit, marking occupancy. It does
// not touch the ledger; spawn cost bookkeeping is the gateway's job.
func (gs *GameState) PlaceUnit(team core.Team, kind core.UnitKind, x, y, level int) *core.Unit {
	a, ok := core.UnitArchetypeOf(kind)
	if !ok || !gs.UnitPlaceable(a, x, y) {
		return nil
	}
	u := core.NewUnit(gs.allocateID(), team, a, x, y, level)
	gs.Units[team][u.ID] = u
	gs.Occupancy.SetUnitFree(x, y, false)
	return u
}

// PlaceBuilding validates and inserts a new building. The main castle is
// never placeable through this path; it only enters the world at game
// start.
func (gs *GameState) PlaceBuilding(team core.Team, kind core.BuildingKind, x, y, level int) *core.Building {
	if kind == core.MainCastle {
		return nil
	}
	a, ok := core.BuildingArchetypeOf(kind)
	if !ok {
		return nil
	}
	return gs.insertBuilding(team, a, x, y, level)
}

func (gs *GameState) insertBuilding(team core.Team, a core.BuildingArchetype, x, y, level int) *core.Building {
	if !gs.BuildingPlaceable(a, x, y) {
		return nil
	}
	b := core.NewBuilding(gs.allocateID(), team, a, x, y, level)
	gs.Buildings[team][b.ID] = b
	gs.Occupancy.SetBuildingFree(x, y, false)
	return b
}

// ---------------------------------------------------------------------------
// Lookup
// ---------------------------------------------------------------------------

// TeamOfUnit resolves a unit id to its owning team by presence check across
// both teams' maps. Ids are team-scoped in storage but globally unique in
// value.
func (gs *GameState) TeamOfUnit(id int) (core.Team, bool) {
	for _, team := range core.Teams {
		if _, ok := gs.Units[team][id]; ok {
			return team, true
		}
	}
	return 0, false
}

// TeamOfBuilding resolves a building id to its owning team.
func (gs *GameState) TeamOfBuilding(id int) (core.Team, bool) {
	for _, team := range core.Teams {
		if _, ok := gs.Buildings[team][id]; ok {
			return team, true
		}
	}
	return 0, false
}

// UnitByID returns the live unit for an id, or nil.
func (gs *GameState) UnitByID(id int) *core.Unit {
	team, ok := gs.TeamOfUnit(id)
	if !ok {
		return nil
	}
	return gs.Units[team][id]
}

// BuildingByID returns the live building for an id, or nil.
func (gs *GameState) BuildingByID(id int) *core.Building {
	team, ok := gs.TeamOfBuilding(id)
	if !ok {
		return nil
	}
	return gs.Buildings[team][id]
}

// ---------------------------------------------------------------------------
// Damage and removal
// ---------------------------------------------------------------------------

// DamageUnit applies non-negative damage to a unit and deletes it if its
// health drops to zero or below. Reports whether the unit died. A negative
// amount is engine misuse, not agent behavior.
func (gs *GameState) DamageUnit(id, dmg int) (bool, error) {
	if dmg < 0 {
		return false, core.ErrNegativeDamage
	}
	team, ok := gs.TeamOfUnit(id)
	if !ok {
		return false, nil
	}
	u := gs.Units[team][id]
	u.Health -= dmg
	if u.Health <= 0 {
		gs.DeleteUnit(team, id)
		return true, nil
	}
	return false, nil
}

// DamageBuilding applies non-negative damage to a building and deletes it
// if destroyed. Reports whether the building was destroyed.
func (gs *GameState) DamageBuilding(id, dmg int) (bool, error) {
	if dmg < 0 {
		return false, core.ErrNegativeDamage
	}
	team, ok := gs.TeamOfBuilding(id)
	if !ok {
		return false, nil
	}
	b := gs.Buildings[team][id]
	b.Health -= dmg
	if b.Health <= 0 {
		gs.DeleteBuilding(team, id)
		return true, nil
	}
	return false, nil
}

// DeleteUnit removes a unit without any payment and frees its occupancy
// cell. Caller guarantees the unit exists.
func (gs *GameState) DeleteUnit(team core.Team, id int) {
	u := gs.Units[team][id]
	gs.Occupancy.SetUnitFree(u.X, u.Y, true)
	delete(gs.Units[team], id)
}

// DeleteBuilding removes a building without any payment and frees its
// occupancy cell. Caller guarantees the building exists.
func (gs *GameState) DeleteBuilding(team core.Team, id int) {
	b := gs.Buildings[team][id]
	gs.Occupancy.SetBuildingFree(b.X, b.Y, true)
	delete(gs.Buildings[team], id)
}

// SellUnit deletes a unit and credits the ledger with the discounted
// archetype cost. Requires current health at or above the sell threshold.
func (gs *GameState) SellUnit(team core.Team, id int) bool {
	u, ok := gs.Units[team][id]
	if !ok {
		return false
	}
	a := u.Archetype()
	if float64(u.Health) < gs.cfg.SellHealthPercent*float64(a.Health) {
		return false
	}
	gs.Balances[team] += int(math.Floor(float64(a.Cost) * gs.cfg.UnitSellDiscount))
	gs.DeleteUnit(team, id)
	return true
}

// SellBuilding deletes a building and credits the discounted refund. The
// home castle can never be sold.
func (gs *GameState) SellBuilding(team core.Team, id int) bool {
	b, ok := gs.Buildings[team][id]
	if !ok || id == gs.CastleIDs[team] {
		return false
	}
	a := b.Archetype()
	if float64(b.Health) < gs.cfg.SellHealthPercent*float64(a.Health) {
		return false
	}
	gs.Balances[team] += int(math.Floor(float64(a.Cost) * gs.cfg.BuildingSellDiscount))
	gs.DeleteBuilding(team, id)
	return true
}

// RelocateUnit moves a unit to (x, y), keeping occupancy in lockstep. It
// performs no legality checks beyond bounds; movement validation lives in
// the gateway.
func (gs *GameState) RelocateUnit(u *core.Unit, x, y int) bool {
	if !gs.Map.InBounds(x, y) {
		return false
	}
	gs.Occupancy.SetUnitFree(u.X, u.Y, true)
	u.X, u.Y = x, y
	gs.Occupancy.SetUnitFree(x, y, false)
	return true
}

// ---------------------------------------------------------------------------
// Upkeep and scoring
// ---------------------------------------------------------------------------

// StartTurn advances the turn counter, resets every living entity's action
// and movement allowances to their archetype defaults, credits passive plus
// farm income to both ledgers, and adds the chess-clock increment to both
// time pools. This is the only place allowances ever increase.
func (gs *GameState) StartTurn() {
	gs.Turn++

	for _, team := range core.Teams {
		gs.TimeLeft[team] += gs.cfg.TimeIncrement()
		for _, u := range gs.Units[team] {
			a := u.Archetype()
			u.ActionsLeft = a.ActionsPerTurn
			u.MovementLeft = a.MoveRange
		}
		for _, b := range gs.Buildings[team] {
			b.ActionsLeft = b.Archetype().ActionsPerTurn
		}

		income := gs.cfg.PassiveIncome
		for _, b := range gs.Buildings[team] {
			if b.Archetype().IsFarm() {
				income += gs.cfg.FarmIncome
			}
		}
		gs.Balances[team] += income
	}
}

// CastleStanding reports whether a team's home castle is still in its
// registry. Its disappearance is the primary loss condition.
func (gs *GameState) CastleStanding(team core.Team) bool {
	_, ok := gs.Buildings[team][gs.CastleIDs[team]]
	return ok
}

// CastleHealth returns the current health of a team's castle, or zero if
// it has been destroyed.
func (gs *GameState) CastleHealth(team core.Team) int {
	b, ok := gs.Buildings[team][gs.CastleIDs[team]]
	if !ok {
		return 0
	}
	return b.Health
}

// TotalValue is a team's economic worth: ledger balance plus the archetype
// cost of every living unit and building. Used by the win cascade.
func (gs *GameState) TotalValue(team core.Team) int {
	total := gs.Balances[team]
	for _, u := range gs.Units[team] {
		total += u.Archetype().Cost
	}
	for _, b := range gs.Buildings[team] {
		total += b.Archetype().Cost
	}
	return total
}
