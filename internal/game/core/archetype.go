package core

// Archetypes are immutable static stat tables. Instances reference them by
// kind; lookups go through UnitArchetypeOf / BuildingArchetypeOf. The tables
// are plain value records rather than behavior-carrying types so that replay
// documents and map files can refer to them by name.

// UnitKind names a unit archetype.
type UnitKind string

const (
	Knight    UnitKind = "KNIGHT"
	Warrior   UnitKind = "WARRIOR"
	Swordsman UnitKind = "SWORDSMAN"
	Defender  UnitKind = "DEFENDER"
	Catapult  UnitKind = "CATAPULT"

	Sailor  UnitKind = "SAILOR"
	Raider  UnitKind = "RAIDER"
	Captain UnitKind = "CAPTAIN"
	Galley  UnitKind = "GALLEY"

	Explorer UnitKind = "EXPLORER"
	Engineer UnitKind = "ENGINEER"

	LandHealer1  UnitKind = "LAND_HEALER_1"
	LandHealer2  UnitKind = "LAND_HEALER_2"
	LandHealer3  UnitKind = "LAND_HEALER_3"
	WaterHealer1 UnitKind = "WATER_HEALER_1"
	WaterHealer2 UnitKind = "WATER_HEALER_2"
	WaterHealer3 UnitKind = "WATER_HEALER_3"
)

// BuildingKind names a building archetype.
type BuildingKind string

const (
	MainCastle       BuildingKind = "MAIN_CASTLE"
	Port             BuildingKind = "PORT"
	ExplorerBuilding BuildingKind = "EXPLORER_BUILDING"
	Farm1            BuildingKind = "FARM_1"
	Farm2            BuildingKind = "FARM_2"
	Farm3            BuildingKind = "FARM_3"
)

// UnitArchetype is the immutable stat record shared by every unit of a kind.
type UnitArchetype struct {
	Kind           UnitKind
	Health         int
	Cost           int
	AttackRange    int // how far the unit may target
	Cooldown       int // carried for balance data, not enforced
	Damage         int
	Defense        int
	ActionsPerTurn int
	MoveRange      int
	DamageRadius   int // area-of-effect radius around the targeted point
	HealAmount     int
	SpawnFrom      []BuildingKind // nil means any spawn-capable building
	Walkable       TerrainSet
}

// IsHealer reports whether units of this archetype heal instead of attack.
func (a UnitArchetype) IsHealer() bool { return a.HealAmount > 0 }

// CanSpawnFrom reports whether the archetype may be spawned from the given
// building kind. A nil SpawnFrom list allows any spawn-capable building.
func (a UnitArchetype) CanSpawnFrom(b BuildingKind) bool {
	if a.SpawnFrom == nil {
		return true
	}
	for _, k := range a.SpawnFrom {
		if k == b {
			return true
		}
	}
	return false
}

// BuildingArchetype is the immutable stat record shared by every building of
// a kind.
type BuildingArchetype struct {
	Kind           BuildingKind
	Health         int
	Cost           int
	AttackRange    int
	DamageRadius   int
	Cooldown       int
	Damage         int
	Defense        int
	ActionsPerTurn int
	Spawnable      bool
	Placeable      TerrainSet
}

// IsFarm reports whether buildings of this kind produce per-turn income.
func (a BuildingArchetype) IsFarm() bool {
	return a.Kind == Farm1 || a.Kind == Farm2 || a.Kind == Farm3
}

var unitArchetypes = map[UnitKind]UnitArchetype{
	Knight:    {Kind: Knight, Health: 10, Cost: 1, AttackRange: 1, Cooldown: 1, Damage: 1, Defense: 1, ActionsPerTurn: 1, MoveRange: 1, Walkable: WalkableLand},
	Warrior:   {Kind: Warrior, Health: 10, Cost: 2, AttackRange: 1, Cooldown: 1, Damage: 2, Defense: 2, ActionsPerTurn: 1, MoveRange: 1, Walkable: WalkableLand},
	Swordsman: {Kind: Swordsman, Health: 10, Cost: 4, AttackRange: 1, Cooldown: 1, Damage: 3, Defense: 3, ActionsPerTurn: 1, MoveRange: 1, Walkable: WalkableLand},
	Defender:  {Kind: Defender, Health: 15, Cost: 3, AttackRange: 1, Cooldown: 1, Damage: 1, Defense: 2, ActionsPerTurn: 1, MoveRange: 1, Walkable: WalkableLand},
	Catapult:  {Kind: Catapult, Health: 10, Cost: 4, AttackRange: 10, Cooldown: 1, Damage: 1, Defense: 2, ActionsPerTurn: 1, MoveRange: 1, Walkable: WalkableLand},

	Sailor:  {Kind: Sailor, Health: 10, Cost: 1, AttackRange: 1, Cooldown: 1, Damage: 1, Defense: 1, ActionsPerTurn: 1, MoveRange: 1, SpawnFrom: []BuildingKind{Port}, Walkable: WalkableWater},
	Raider:  {Kind: Raider, Health: 10, Cost: 2, AttackRange: 1, Cooldown: 1, Damage: 2, Defense: 2, ActionsPerTurn: 1, MoveRange: 1, SpawnFrom: []BuildingKind{Port}, Walkable: WalkableWater},
	Captain: {Kind: Captain, Health: 10, Cost: 4, AttackRange: 1, Cooldown: 1, Damage: 3, Defense: 3, ActionsPerTurn: 1, MoveRange: 1, SpawnFrom: []BuildingKind{Port}, Walkable: WalkableWater},
	Galley:  {Kind: Galley, Health: 10, Cost: 1, AttackRange: 1, Cooldown: 1, Damage: 1, Defense: 1, ActionsPerTurn: 1, MoveRange: 1, SpawnFrom: []BuildingKind{Port}, Walkable: WalkableWater},

	Explorer: {Kind: Explorer, Health: 1, Cost: 10, Cooldown: 1, ActionsPerTurn: 1, MoveRange: 2, SpawnFrom: []BuildingKind{MainCastle}, Walkable: AllTerrain},
	Engineer: {Kind: Engineer, Health: 5, Cost: 2, ActionsPerTurn: 1, MoveRange: 1, Walkable: EngineerTiles},

	LandHealer1:  {Kind: LandHealer1, Health: 10, Cost: 3, AttackRange: 2, Cooldown: 1, Defense: 1, ActionsPerTurn: 1, MoveRange: 2, DamageRadius: 1, HealAmount: 5, Walkable: WalkableLand},
	WaterHealer1: {Kind: WaterHealer1, Health: 10, Cost: 3, AttackRange: 2, Cooldown: 1, Defense: 1, ActionsPerTurn: 1, MoveRange: 2, DamageRadius: 1, HealAmount: 5, SpawnFrom: []BuildingKind{Port}, Walkable: WalkableWater},
	LandHealer2:  {Kind: LandHealer2, Health: 10, Cost: 4, AttackRange: 2, Cooldown: 1, Defense: 1, ActionsPerTurn: 1, MoveRange: 2, DamageRadius: 1, HealAmount: 6, Walkable: WalkableLand},
	WaterHealer2: {Kind: WaterHealer2, Health: 10, Cost: 4, AttackRange: 2, Cooldown: 1, Defense: 1, ActionsPerTurn: 1, MoveRange: 2, DamageRadius: 1, HealAmount: 6, SpawnFrom: []BuildingKind{Port}, Walkable: WalkableWater},
	LandHealer3:  {Kind: LandHealer3, Health: 10, Cost: 5, AttackRange: 2, Cooldown: 1, Defense: 1, ActionsPerTurn: 1, MoveRange: 2, DamageRadius: 1, HealAmount: 7, Walkable: WalkableLand},
	WaterHealer3: {Kind: WaterHealer3, Health: 10, Cost: 5, AttackRange: 2, Cooldown: 1, Defense: 1, ActionsPerTurn: 1, MoveRange: 2, DamageRadius: 1, HealAmount: 7, SpawnFrom: []BuildingKind{Port}, Walkable: WalkableWater},
}

var buildingArchetypes = map[BuildingKind]BuildingArchetype{
	// The castle is placed at map load and can never be built, sold or
	// voluntarily destroyed; its cost is zero so the economic-value
	// tie-break stays symmetric.
	MainCastle:       {Kind: MainCastle, Health: 30, Cost: 0, DamageRadius: 1, ActionsPerTurn: 1, Spawnable: true, Placeable: LandTiles},
	Port:             {Kind: Port, Health: 20, Cost: 10, DamageRadius: 1, ActionsPerTurn: 1, Spawnable: true, Placeable: WaterBuildable},
	ExplorerBuilding: {Kind: ExplorerBuilding, Health: 20, Cost: 30, Cooldown: 1, Placeable: LandTiles},
	Farm1:            {Kind: Farm1, Health: 10, Cost: 3, DamageRadius: 1, ActionsPerTurn: 1, Spawnable: true, Placeable: LandTiles},
	Farm2:            {Kind: Farm2, Health: 15, Cost: 5, DamageRadius: 1, ActionsPerTurn: 1, Spawnable: true, Placeable: LandTiles},
	Farm3:            {Kind: Farm3, Health: 20, Cost: 7, DamageRadius: 1, ActionsPerTurn: 1, Spawnable: true, Placeable: LandTiles},
}

// UnitArchetypeOf looks up the stat record for a unit kind.
func UnitArchetypeOf(k UnitKind) (UnitArchetype, bool) {
	a, ok := unitArchetypes[k]
	return a, ok
}

// BuildingArchetypeOf looks up the stat record for a building kind.
func BuildingArchetypeOf(k BuildingKind) (BuildingArchetype, bool) {
	a, ok := buildingArchetypes[k]
	return a, ok
}

// UnitKinds returns every registered unit kind. Order is unspecified.
func UnitKinds() []UnitKind {
	kinds := make([]UnitKind, 0, len(unitArchetypes))
	for k := range unitArchetypes {
		kinds = append(kinds, k)
	}
	return kinds
}

// BuildingKinds returns every registered building kind. Order is unspecified.
func BuildingKinds() []BuildingKind {
	kinds := make([]BuildingKind, 0, len(buildingArchetypes))
	for k := range buildingArchetypes {
		kinds = append(kinds, k)
	}
	return kinds
}
