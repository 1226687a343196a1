package populate

// Monster types by difficulty tier
var (
	Tier1Monsters = []string{"dungeon_rat", "slime", "goblin"}
	Tier2Monsters = []string{"goblin_shaman", "goblin_thrower", "spider", "mushroom", "bat"}
	Tier3Monsters = []string{"skeleton", "wolf", "lizard", "eye", "badlama"}
	Tier4Monsters = []string{"crawler_killer", "shadow_stalker", "mimic", "flesh_golem"}
	Tier5Monsters = []string{"living_armor", "plague_bearer", "lava_elemental", "void_spawn"}

	Bosses = []string{"skeleton_lord", "dragon_king", "spider_queen", "the_butcher", "mordecai", "mongo"}
)

// Prop types by theme
var (
	DungeonProps  = []string{"barrel", "crate", "pot", "torch", "bone_pile", "skull_pile", "rubble_heap"}
	TreasureProps = []string{"chest", "treasure_chest", "scattered_coins", "ancient_scroll"}
	SpookyProps   = []string{"blood_pool", "coiled_chains", "manacles", "discarded_sword", "forgotten_shield"}
	NatureProps   = []string{"moss_patch", "glowing_mushrooms", "water_puddle", "thorny_vines"}
	CampProps     = []string{"campfire", "abandoned_campfire", "rat_nest", "moldy_bread"}
)

// Distance bands from spawn selecting the monster tier.
const (
	Tier2Distance = 30.0
	Tier3Distance = 60.0
	Tier4Distance = 100.0
	Tier5Distance = 150.0
)

// Placement tunables.
const (
	// SafeZoneRadius keeps monsters away from spawn.
	SafeZoneRadius = 15.0

	// MonsterDensityDivisor yields roughly one monster per N floor tiles.
	MonsterDensityDivisor = 100

	// PropDensityDivisor yields roughly one prop per N floor tiles.
	PropDensityDivisor = 50

	// MonsterSpacing and PropSpacing are the minimum distances between a
	// new placement and anything already placed.
	MonsterSpacing = 5.0
	PropSpacing    = 2.0

	// BossDistance and BossChance control rare boss spawns in far areas.
	BossDistance = 120.0
	BossChance   = 0.02
)

// Cluster tunables.
const (
	MaxClusters           = 20
	ClusterDensityDivisor = 500
	ClusterMinDistance    = 40.0
	ClusterSpacing        = 10.0
	ClusterSampleStride   = 50
	ClusterMinSize        = 3
	ClusterMaxSize        = 5
	ClusterOffsetRange    = 4.0
)

// Prop theme bands by distance from spawn.
const (
	PropBandNear = 30.0
	PropBandMid  = 80.0
	PropBandFar  = 130.0
)

// Prop transform jitter.
const (
	PropJitter   = 0.3
	PropScaleMin = 0.8
	PropScaleMax = 1.2
	MaxRotation  = 6.28
)

// Log messages
const (
	LogMsgMapPopulated = "Map populated"
)
