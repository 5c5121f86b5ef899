// Package bots ships simple built-in agents. They exist to exercise the
// engine end to end and to give a new agent author a working opponent,
// not to play well.
package bots

import (
	"github.com/castlewars/engine/internal/game"
	"github.com/castlewars/engine/internal/game/core"
)

// Idler never acts. Useful as a punching bag and for draw scenarios.
type Idler struct{}

func (Idler) PlayTurn(*game.Gateway) {}

// Rusher plays the shortest plan in the game: keep a farm economy going,
// spawn warriors at the castle and march everything straight at the enemy
// castle, attacking whatever gets in range on the way.
type Rusher struct{}

func (Rusher) PlayTurn(gw *game.Gateway) {
	me := gw.Team()
	castleID := gw.CastleID(me)

	buildFarm(gw)

	if gw.CanSpawnUnit(core.Warrior, castleID) {
		gw.SpawnUnit(core.Warrior, castleID)
	}

	enemyCastle := gw.MapCopy().CastleLoc(gw.EnemyTeam())
	for _, u := range gw.Units(me) {
		fight(gw, u.ID)
		advance(gw, u.ID, enemyCastle)
		// A step may have brought a fresh target into range.
		fight(gw, u.ID)
	}
}

// buildFarm places one farm next to our castle when affordable and the
// spot is open.
func buildFarm(gw *game.Gateway) {
	castle, ok := gw.BuildingByID(gw.CastleID(gw.Team()))
	if !ok {
		return
	}
	for _, d := range core.Directions {
		if d.IsStay() {
			continue
		}
		x, y := d.Offset(castle.X, castle.Y)
		if gw.CanBuildBuilding(core.Farm1, x, y) {
			gw.BuildBuilding(core.Farm1, x, y)
			return
		}
	}
}

// fight spends the unit's actions on whatever enemy is reachable,
// preferring the castle, then buildings, then units.
func fight(gw *game.Gateway, unitID int) {
	enemy := gw.EnemyTeam()
	enemyCastleID := gw.CastleID(enemy)

	for {
		switch {
		case gw.CanUnitAttackBuilding(unitID, enemyCastleID):
			gw.UnitAttackBuilding(unitID, enemyCastleID)
		case attackAnyBuilding(gw, unitID):
		case attackAnyUnit(gw, unitID):
		default:
			return
		}
		if u, ok := gw.UnitByID(unitID); !ok || u.ActionsLeft <= 0 {
			return
		}
	}
}

func attackAnyBuilding(gw *game.Gateway, unitID int) bool {
	for _, b := range gw.Buildings(gw.EnemyTeam()) {
		if gw.CanUnitAttackBuilding(unitID, b.ID) {
			return gw.UnitAttackBuilding(unitID, b.ID)
		}
	}
	return false
}

func attackAnyUnit(gw *game.Gateway, unitID int) bool {
	for _, t := range gw.Units(gw.EnemyTeam()) {
		if gw.CanUnitAttackUnit(unitID, t.ID) {
			return gw.UnitAttackUnit(unitID, t.ID)
		}
	}
	return false
}

// advance spends the unit's movement stepping greedily toward the target,
// stopping when no step shrinks the distance.
func advance(gw *game.Gateway, unitID int, target core.Coord) {
	for {
		u, ok := gw.UnitByID(unitID)
		if !ok || u.MovementLeft <= 0 {
			return
		}
		best := core.Stay
		bestDist := core.Chebyshev(u.X, u.Y, target.X, target.Y)
		for _, d := range gw.PossibleMoveDirections(unitID) {
			if d.IsStay() {
				continue
			}
			x, y := d.Offset(u.X, u.Y)
			if dist := core.Chebyshev(x, y, target.X, target.Y); dist < bestDist {
				best, bestDist = d, dist
			}
		}
		if best.IsStay() || !gw.MoveUnit(unitID, best) {
			return
		}
	}
}
