package game

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/castlewars/engine/internal/game/core"
)

// CombatResolver implements the shared area-damage and retaliation
// algorithm. Every attack variant, whatever it was aimed at, resolves here
// as an area attack centered on a target point.
type CombatResolver struct {
	gs     *GameState
	logger zerolog.Logger
}

func NewCombatResolver(gs *GameState, logger zerolog.Logger) *CombatResolver {
	return &CombatResolver{
		gs:     gs,
		logger: logger.With().Str("component", "CombatResolver").Logger(),
	}
}

// hitList collects the ids of a team's units or buildings within radius of
// (x, y), in ascending id order. Ids are allocated monotonically, so this
// matches creation order and keeps retaliation deterministic across runs.
func hitUnits(units map[int]*core.Unit, x, y, radius int) []int {
	var ids []int
	for id, u := range units {
		if core.WithinChebyshev(u.X, u.Y, x, y, radius) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func hitBuildings(buildings map[int]*core.Building, x, y, radius int) []int {
	var ids []int
	for id, b := range buildings {
		if core.WithinChebyshev(b.X, b.Y, x, y, radius) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// UnitAttackPoint resolves a unit's attack on a target point:
//
//  1. The attacker needs a remaining action and the point must be inside
//     its attack range.
//  2. Every enemy unit and building within the attacker's damage radius of
//     the point is collected.
//  3. One action is consumed, even when nothing is hit.
//  4. The attacker's damage lands on everything collected; whatever dies is
//     removed immediately and cannot retaliate.
//  5. Each surviving hit enemy unit, in collection order, deals its defense
//     back to the attacker; the first lethal retaliation ends the loop.
//     Buildings never retaliate.
func (cr *CombatResolver) UnitAttackPoint(attacker *core.Unit, x, y int) bool {
	a := attacker.Archetype()
	if attacker.ActionsLeft <= 0 {
		return false
	}
	if !core.WithinChebyshev(attacker.X, attacker.Y, x, y, a.AttackRange) {
		return false
	}

	enemy := attacker.Team.Opponent()
	unitsHit := hitUnits(cr.gs.Units[enemy], x, y, a.DamageRadius)
	buildingsHit := hitBuildings(cr.gs.Buildings[enemy], x, y, a.DamageRadius)

	attacker.ActionsLeft--

	survivors := unitsHit[:0]
	for _, id := range unitsHit {
		killed, _ := cr.gs.DamageUnit(id, attacker.Damage)
		if !killed {
			survivors = append(survivors, id)
		}
	}

	for _, id := range buildingsHit {
		destroyed, _ := cr.gs.DamageBuilding(id, attacker.Damage)
		if destroyed {
			cr.logger.Debug().
				Int("attacker_id", attacker.ID).
				Int("building_id", id).
				Msg("building destroyed")
		}
	}

	for _, id := range survivors {
		defender := cr.gs.Units[enemy][id]
		if defender == nil {
			continue
		}
		killed, _ := cr.gs.DamageUnit(attacker.ID, defender.Defense)
		if killed {
			cr.logger.Debug().
				Int("attacker_id", attacker.ID).
				Int("defender_id", id).
				Msg("attacker fell to retaliation")
			break
		}
	}

	return true
}

// BuildingAttackPoint resolves a building's attack on a target point.
// Buildings only ever hit enemy units and never suffer retaliation.
func (cr *CombatResolver) BuildingAttackPoint(attacker *core.Building, x, y int) bool {
	a := attacker.Archetype()
	if attacker.ActionsLeft <= 0 {
		return false
	}
	if !core.WithinChebyshev(attacker.X, attacker.Y, x, y, a.AttackRange) {
		return false
	}

	enemy := attacker.Team.Opponent()
	unitsHit := hitUnits(cr.gs.Units[enemy], x, y, a.DamageRadius)

	attacker.ActionsLeft--

	for _, id := range unitsHit {
		cr.gs.DamageUnit(id, attacker.Damage)
	}

	return true
}
