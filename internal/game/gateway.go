package game

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/castlewars/engine/internal/common"
	"github.com/castlewars/engine/internal/game/core"
)

// Gateway is the per-team capability surface handed to an agent callback.
// Every mutator is paired with a pure Can predicate, and every mutator
// re-runs its predicate before touching state: an agent that skips the
// check still fails safely instead of corrupting the world. Query results
// are always copies, never live references.
type Gateway struct {
	team   core.Team
	gs     *GameState
	combat *CombatResolver
	logger zerolog.Logger
}

// NewGateway binds a gateway to one team of a game.
func NewGateway(team core.Team, gs *GameState, combat *CombatResolver, logger zerolog.Logger) *Gateway {
	return &Gateway{
		team:   team,
		gs:     gs,
		combat: combat,
		logger: logger.With().Str("component", "Gateway").Stringer("team", team).Logger(),
	}
}

// ---------------------------------------------------------------------------
// State queries
// ---------------------------------------------------------------------------

// Turn returns the current turn number.
func (g *Gateway) Turn() int { return g.gs.Turn }

// Team returns the side this gateway acts for.
func (g *Gateway) Team() core.Team { return g.team }

// EnemyTeam returns the opposing side.
func (g *Gateway) EnemyTeam() core.Team { return g.team.Opponent() }

// Balance returns the gold balance of either team.
func (g *Gateway) Balance(team core.Team) int { return g.gs.Balances[team] }

// MapCopy returns a deep copy of the world map.
func (g *Gateway) MapCopy() *core.WorldMap { return g.gs.Map.Clone() }

// CastleID returns the id of a team's home castle. The castle may already
// be destroyed; check with BuildingByID.
func (g *Gateway) CastleID(team core.Team) int { return g.gs.CastleIDs[team] }

// Units returns value copies of a team's living units, ordered by id.
func (g *Gateway) Units(team core.Team) []core.Unit {
	ids := sortedUnitIDs(g.gs.Units[team])
	out := make([]core.Unit, 0, len(ids))
	for _, id := range ids {
		out = append(out, *g.gs.Units[team][id])
	}
	return out
}

// Buildings returns value copies of a team's living buildings, ordered by
// id.
func (g *Gateway) Buildings(team core.Team) []core.Building {
	ids := sortedBuildingIDs(g.gs.Buildings[team])
	out := make([]core.Building, 0, len(ids))
	for _, id := range ids {
		out = append(out, *g.gs.Buildings[team][id])
	}
	return out
}

// UnitIDs returns a team's living unit ids in ascending order.
func (g *Gateway) UnitIDs(team core.Team) []int {
	return sortedUnitIDs(g.gs.Units[team])
}

// BuildingIDs returns a team's living building ids in ascending order.
func (g *Gateway) BuildingIDs(team core.Team) []int {
	return sortedBuildingIDs(g.gs.Buildings[team])
}

// UnitByID returns a copy of the unit with the given id, either team's.
func (g *Gateway) UnitByID(id int) (core.Unit, bool) {
	u := g.gs.UnitByID(id)
	if u == nil {
		return core.Unit{}, false
	}
	return *u, true
}

// BuildingByID returns a copy of the building with the given id.
func (g *Gateway) BuildingByID(id int) (core.Building, bool) {
	b := g.gs.BuildingByID(id)
	if b == nil {
		return core.Building{}, false
	}
	return *b, true
}

// TeamOfUnit resolves a unit id to its owning team.
func (g *Gateway) TeamOfUnit(id int) (core.Team, bool) { return g.gs.TeamOfUnit(id) }

// TeamOfBuilding resolves a building id to its owning team.
func (g *Gateway) TeamOfBuilding(id int) (core.Team, bool) { return g.gs.TeamOfBuilding(id) }

// UnitFreeGrid returns a copy of the unit occupancy grid, indexed [x][y];
// true means a unit could stand there as far as occupancy is concerned.
func (g *Gateway) UnitFreeGrid() [][]bool { return g.gs.Occupancy.UnitFreeGrid() }

// BuildingFreeGrid returns a copy of the building occupancy grid.
func (g *Gateway) BuildingFreeGrid() [][]bool { return g.gs.Occupancy.BuildingFreeGrid() }

// UnitsWithinRadius returns copies of a team's units within Chebyshev
// radius of (x, y). A negative radius yields nothing.
func (g *Gateway) UnitsWithinRadius(team core.Team, x, y, radius int) []core.Unit {
	if radius < 0 {
		return nil
	}
	var out []core.Unit
	for _, id := range sortedUnitIDs(g.gs.Units[team]) {
		u := g.gs.Units[team][id]
		if core.WithinChebyshev(u.X, u.Y, x, y, radius) {
			out = append(out, *u)
		}
	}
	return out
}

// BuildingsWithinRadius returns copies of a team's buildings within
// Chebyshev radius of (x, y).
func (g *Gateway) BuildingsWithinRadius(team core.Team, x, y, radius int) []core.Building {
	if radius < 0 {
		return nil
	}
	var out []core.Building
	for _, id := range sortedBuildingIDs(g.gs.Buildings[team]) {
		b := g.gs.Buildings[team][id]
		if core.WithinChebyshev(b.X, b.Y, x, y, radius) {
			out = append(out, *b)
		}
	}
	return out
}

func sortedUnitIDs(m map[int]*core.Unit) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func sortedBuildingIDs(m map[int]*core.Building) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ---------------------------------------------------------------------------
// Spawn and build
// ---------------------------------------------------------------------------

// CanSpawnUnit reports whether the caller may spawn a unit of the given
// kind from one of its buildings: the building must belong to the caller
// and be spawn-capable, the archetype must allow that building kind, the
// building's own tile must be free for the unit, and the caller must
// afford the cost.
func (g *Gateway) CanSpawnUnit(kind core.UnitKind, buildingID int) bool {
	a, ok := core.UnitArchetypeOf(kind)
	if !ok {
		return false
	}
	b, ok := g.gs.Buildings[g.team][buildingID]
	if !ok {
		return false
	}
	ba := b.Archetype()
	if !ba.Spawnable || !a.CanSpawnFrom(ba.Kind) {
		return false
	}
	if !g.gs.UnitPlaceable(a, b.X, b.Y) {
		return false
	}
	return g.gs.Balances[g.team] >= a.Cost
}

// SpawnUnit spawns a unit of the given kind at its building's tile and
// debits the ledger. The new unit cannot move or act until next upkeep.
func (g *Gateway) SpawnUnit(kind core.UnitKind, buildingID int) bool {
	if !g.CanSpawnUnit(kind, buildingID) {
		return false
	}
	b := g.gs.Buildings[g.team][buildingID]
	u := g.gs.PlaceUnit(g.team, kind, b.X, b.Y, 1)
	if u == nil {
		return false
	}
	g.gs.Balances[g.team] -= u.Archetype().Cost
	g.logger.Debug().Int("unit_id", u.ID).Str("kind", string(kind)).Msg("unit spawned")
	return true
}

// CanBuildBuilding reports whether the caller may construct a building of
// the given kind at (x, y). The main castle is never buildable.
func (g *Gateway) CanBuildBuilding(kind core.BuildingKind, x, y int) bool {
	if kind == core.MainCastle {
		return false
	}
	a, ok := core.BuildingArchetypeOf(kind)
	if !ok {
		return false
	}
	if !g.gs.BuildingPlaceable(a, x, y) {
		return false
	}
	return g.gs.Balances[g.team] >= a.Cost
}

// BuildBuilding constructs a building at (x, y) and debits the ledger.
func (g *Gateway) BuildBuilding(kind core.BuildingKind, x, y int) bool {
	if !g.CanBuildBuilding(kind, x, y) {
		return false
	}
	b := g.gs.PlaceBuilding(g.team, kind, x, y, 1)
	if b == nil {
		return false
	}
	g.gs.Balances[g.team] -= b.Archetype().Cost
	g.logger.Debug().Int("building_id", b.ID).Str("kind", string(kind)).Msg("building constructed")
	return true
}

// ---------------------------------------------------------------------------
// Movement
// ---------------------------------------------------------------------------

// CanMoveUnit reports whether the caller's unit may step one tile in the
// given direction: destination in bounds, walkable terrain, unit-free
// (unless staying put), and enough movement left to pay the destination
// terrain's cost.
func (g *Gateway) CanMoveUnit(unitID int, dir core.Direction) bool {
	u, ok := g.gs.Units[g.team][unitID]
	if !ok {
		return false
	}
	destX, destY := dir.Offset(u.X, u.Y)
	t, inBounds := g.gs.Map.TerrainAt(destX, destY)
	if !inBounds {
		return false
	}
	if !u.Archetype().Walkable.Contains(t) {
		return false
	}
	if !dir.IsStay() && !g.gs.Occupancy.UnitFree(destX, destY) {
		return false
	}
	return u.MovementLeft >= t.MovementCost()
}

// MoveUnit steps the unit one tile and decrements its movement pool by the
// destination terrain's cost.
func (g *Gateway) MoveUnit(unitID int, dir core.Direction) bool {
	if !g.CanMoveUnit(unitID, dir) {
		return false
	}
	u := g.gs.Units[g.team][unitID]
	destX, destY := dir.Offset(u.X, u.Y)
	t, _ := g.gs.Map.TerrainAt(destX, destY)
	u.MovementLeft -= t.MovementCost()
	return g.gs.RelocateUnit(u, destX, destY)
}

// PossibleMoveDirections lists every direction CanMoveUnit allows for the
// caller's unit.
func (g *Gateway) PossibleMoveDirections(unitID int) []core.Direction {
	var dirs []core.Direction
	for _, d := range core.Directions {
		if g.CanMoveUnit(unitID, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// ---------------------------------------------------------------------------
// Attacks
// ---------------------------------------------------------------------------

// CanUnitAttackLocation reports whether the caller's unit may attack the
// point (x, y): valid attacker, remaining action, point in bounds and
// within attack range.
func (g *Gateway) CanUnitAttackLocation(attackerID, x, y int) bool {
	u, ok := g.gs.Units[g.team][attackerID]
	if !ok {
		return false
	}
	if !g.gs.Map.InBounds(x, y) {
		return false
	}
	if u.ActionsLeft <= 0 {
		return false
	}
	return core.WithinChebyshev(u.X, u.Y, x, y, u.Archetype().AttackRange)
}

// CanUnitAttackUnit reports whether the caller's unit may attack an enemy
// unit at its current position.
func (g *Gateway) CanUnitAttackUnit(attackerID, targetID int) bool {
	target, ok := g.gs.Units[g.team.Opponent()][targetID]
	if !ok {
		return false
	}
	return g.CanUnitAttackLocation(attackerID, target.X, target.Y)
}

// CanUnitAttackBuilding reports whether the caller's unit may attack an
// enemy building at its position.
func (g *Gateway) CanUnitAttackBuilding(attackerID, targetID int) bool {
	target, ok := g.gs.Buildings[g.team.Opponent()][targetID]
	if !ok {
		return false
	}
	return g.CanUnitAttackLocation(attackerID, target.X, target.Y)
}

// UnitAttackLocation performs an area attack centered on (x, y). Attacking
// an empty point still consumes the action and succeeds. There is no
// friendly fire; only enemies inside the damage radius are hit, and
// surviving enemy units retaliate per the combat rules.
func (g *Gateway) UnitAttackLocation(attackerID, x, y int) bool {
	if !g.CanUnitAttackLocation(attackerID, x, y) {
		return false
	}
	return g.combat.UnitAttackPoint(g.gs.Units[g.team][attackerID], x, y)
}

// UnitAttackUnit attacks the target enemy unit's current location.
func (g *Gateway) UnitAttackUnit(attackerID, targetID int) bool {
	if !g.CanUnitAttackUnit(attackerID, targetID) {
		return false
	}
	target := g.gs.Units[g.team.Opponent()][targetID]
	return g.UnitAttackLocation(attackerID, target.X, target.Y)
}

// UnitAttackBuilding attacks the target enemy building's location.
func (g *Gateway) UnitAttackBuilding(attackerID, targetID int) bool {
	if !g.CanUnitAttackBuilding(attackerID, targetID) {
		return false
	}
	target := g.gs.Buildings[g.team.Opponent()][targetID]
	return g.UnitAttackLocation(attackerID, target.X, target.Y)
}

// CanBuildingAttackLocation reports whether the caller's building may
// attack the point (x, y).
func (g *Gateway) CanBuildingAttackLocation(attackerID, x, y int) bool {
	b, ok := g.gs.Buildings[g.team][attackerID]
	if !ok {
		return false
	}
	if !g.gs.Map.InBounds(x, y) {
		return false
	}
	if b.ActionsLeft <= 0 {
		return false
	}
	return core.WithinChebyshev(b.X, b.Y, x, y, b.Archetype().AttackRange)
}

// CanBuildingAttackUnit reports whether the caller's building may attack an
// enemy unit. Buildings can never target other buildings.
func (g *Gateway) CanBuildingAttackUnit(attackerID, targetID int) bool {
	target, ok := g.gs.Units[g.team.Opponent()][targetID]
	if !ok {
		return false
	}
	return g.CanBuildingAttackLocation(attackerID, target.X, target.Y)
}

// BuildingAttackLocation performs a building's area attack on (x, y),
// hitting enemy units only, with no retaliation.
func (g *Gateway) BuildingAttackLocation(attackerID, x, y int) bool {
	if !g.CanBuildingAttackLocation(attackerID, x, y) {
		return false
	}
	return g.combat.BuildingAttackPoint(g.gs.Buildings[g.team][attackerID], x, y)
}

// BuildingAttackUnit attacks the target enemy unit's current location.
func (g *Gateway) BuildingAttackUnit(attackerID, targetID int) bool {
	if !g.CanBuildingAttackUnit(attackerID, targetID) {
		return false
	}
	target := g.gs.Units[g.team.Opponent()][targetID]
	return g.BuildingAttackLocation(attackerID, target.X, target.Y)
}

// ---------------------------------------------------------------------------
// Healing
// ---------------------------------------------------------------------------

// CanHealUnit reports whether the caller's healer may heal an ally unit:
// the healer must be of a healer archetype, have a remaining action, and
// the target must be an ally within the healer's attack range.
func (g *Gateway) CanHealUnit(healerID, targetID int) bool {
	healer, ok := g.gs.Units[g.team][healerID]
	if !ok {
		return false
	}
	target, ok := g.gs.Units[g.team][targetID]
	if !ok {
		return false
	}
	a := healer.Archetype()
	if !a.IsHealer() {
		return false
	}
	if healer.ActionsLeft <= 0 {
		return false
	}
	return core.WithinChebyshev(healer.X, healer.Y, target.X, target.Y, a.AttackRange)
}

// HealUnit consumes one of the healer's actions and raises the target's
// health by the healer archetype's heal amount, clamped to the target
// archetype's maximum. A target already at or above its maximum (e.g. an
// exploration overheal) is left unchanged.
func (g *Gateway) HealUnit(healerID, targetID int) bool {
	if !g.CanHealUnit(healerID, targetID) {
		return false
	}
	healer := g.gs.Units[g.team][healerID]
	target := g.gs.Units[g.team][targetID]

	healer.ActionsLeft--
	healed := common.Min(target.Health+healer.Archetype().HealAmount, target.Archetype().Health)
	target.Health = common.Max(target.Health, healed)
	return true
}

// ---------------------------------------------------------------------------
// Engineering
// ---------------------------------------------------------------------------

// CanBuildBridge reports whether the caller's unit is an engineer standing
// on a water tile.
func (g *Gateway) CanBuildBridge(engineerID int) bool {
	u, ok := g.gs.Units[g.team][engineerID]
	if !ok {
		return false
	}
	if u.Kind != core.Engineer {
		return false
	}
	return g.gs.Map.IsTerrain(u.X, u.Y, core.Water)
}

// BuildBridge permanently converts the engineer's own tile from water to
// bridge and disbands the engineer. The terrain change is global and
// irreversible.
func (g *Gateway) BuildBridge(engineerID int) bool {
	if !g.CanBuildBridge(engineerID) {
		return false
	}
	u := g.gs.Units[g.team][engineerID]
	g.gs.Map.SetTerrain(u.X, u.Y, core.Bridge)
	g.gs.DeleteUnit(g.team, engineerID)
	g.logger.Debug().Int("x", u.X).Int("y", u.Y).Msg("bridge built")
	return true
}

// ---------------------------------------------------------------------------
// Exploration
// ---------------------------------------------------------------------------

// CanExplore reports whether the caller's explorer unit stands on the tile
// of one of the caller's explorer buildings.
func (g *Gateway) CanExplore(explorerID, buildingID int) bool {
	u, ok := g.gs.Units[g.team][explorerID]
	if !ok || u.Kind != core.Explorer {
		return false
	}
	b, ok := g.gs.Buildings[g.team][buildingID]
	if !ok || b.Kind != core.ExplorerBuilding {
		return false
	}
	return u.X == b.X && u.Y == b.Y
}

// consumeExplorer disbands the explorer; exploration always spends the
// explorer, whichever branch runs and whether or not it then succeeds.
func (g *Gateway) consumeExplorer(explorerID, buildingID int) bool {
	if !g.CanExplore(explorerID, buildingID) {
		return false
	}
	g.gs.DeleteUnit(g.team, explorerID)
	return true
}

// ExploreForGold spends the explorer and credits the caller with half its
// current balance.
func (g *Gateway) ExploreForGold(explorerID, buildingID int) bool {
	if !g.consumeExplorer(explorerID, buildingID) {
		return false
	}
	g.gs.Balances[g.team] += g.gs.Balances[g.team] / 2
	return true
}

// ExploreForHealth spends the explorer and sets a target ally unit's health
// to 150% of its archetype maximum.
func (g *Gateway) ExploreForHealth(explorerID, buildingID, targetID int) bool {
	if !g.consumeExplorer(explorerID, buildingID) {
		return false
	}
	target, ok := g.gs.Units[g.team][targetID]
	if !ok {
		return false
	}
	target.Health = common.CeilDiv(3*target.Archetype().Health, 2)
	return true
}

// ExploreForAttack spends the explorer and permanently adds a fixed bonus
// to a target ally unit's damage.
func (g *Gateway) ExploreForAttack(explorerID, buildingID, targetID int) bool {
	if !g.consumeExplorer(explorerID, buildingID) {
		return false
	}
	target, ok := g.gs.Units[g.team][targetID]
	if !ok {
		return false
	}
	target.Damage += ExploreStatBonus
	return true
}

// ExploreForDefense spends the explorer and permanently adds a fixed bonus
// to a target ally unit's defense.
func (g *Gateway) ExploreForDefense(explorerID, buildingID, targetID int) bool {
	if !g.consumeExplorer(explorerID, buildingID) {
		return false
	}
	target, ok := g.gs.Units[g.team][targetID]
	if !ok {
		return false
	}
	target.Defense += ExploreStatBonus
	return true
}

// ExploreStatBonus is the permanent stat gain granted by the attack and
// defense exploration branches.
const ExploreStatBonus = 2

// ---------------------------------------------------------------------------
// Sell, disband, destroy
// ---------------------------------------------------------------------------

// CanSellUnit reports whether the caller's unit is healthy enough to sell.
func (g *Gateway) CanSellUnit(unitID int) bool {
	u, ok := g.gs.Units[g.team][unitID]
	if !ok {
		return false
	}
	a := u.Archetype()
	return float64(u.Health) >= g.gs.cfg.SellHealthPercent*float64(a.Health)
}

// SellUnit sells a unit for the discounted refund.
func (g *Gateway) SellUnit(unitID int) bool {
	return g.gs.SellUnit(g.team, unitID)
}

// CanSellBuilding reports whether the caller's building may be sold. The
// home castle never can.
func (g *Gateway) CanSellBuilding(buildingID int) bool {
	b, ok := g.gs.Buildings[g.team][buildingID]
	if !ok || buildingID == g.gs.CastleIDs[g.team] {
		return false
	}
	a := b.Archetype()
	return float64(b.Health) >= g.gs.cfg.SellHealthPercent*float64(a.Health)
}

// SellBuilding sells a building for the discounted refund.
func (g *Gateway) SellBuilding(buildingID int) bool {
	return g.gs.SellBuilding(g.team, buildingID)
}

// DisbandUnit removes one of the caller's units with no refund.
func (g *Gateway) DisbandUnit(unitID int) bool {
	if _, ok := g.gs.Units[g.team][unitID]; !ok {
		return false
	}
	g.gs.DeleteUnit(g.team, unitID)
	return true
}

// DestroyBuilding removes one of the caller's buildings with no refund.
// The home castle is exempt.
func (g *Gateway) DestroyBuilding(buildingID int) bool {
	if _, ok := g.gs.Buildings[g.team][buildingID]; !ok {
		return false
	}
	if buildingID == g.gs.CastleIDs[g.team] {
		return false
	}
	g.gs.DeleteBuilding(g.team, buildingID)
	return true
}
