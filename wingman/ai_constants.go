package wingman

// AI Constants for Wingman Behavior
// These constants control steering gains, engagement geometry and target
// scoring. Keeping them together makes tuning and testing straightforward.

const (
	// Target Lock
	LockThreshold = 0.5 // Seconds of continuous in-range engagement before weapons are ready

	// Fire Alignment
	// threshold = FireAlignBase - (1 - accuracy) * FireAlignAccuracySpan
	FireAlignBase         = 0.9
	FireAlignAccuracySpan = 0.2
	DefendFireCone        = 0.8 // Dot product cone for opportunistic fire while evading

	// Attack Geometry
	BackOffDistance       = 50.0 // Standoff when closer than the minimum attack distance
	PredictionTime        = 0.5  // Seconds of linear target extrapolation
	AggressiveOffset      = 0.3  // Attack offset factor for aggressive runs
	BaseOffset            = 0.3  // Attack offset factor before evasiveness
	EvasivenessOffset     = 0.5  // Additional offset factor per unit of evasiveness
	AggressiveRangeFactor = 0.3  // Fraction of the min..max attack span used when aggressive
	StandardRangeFactor   = 0.6  // Fraction of the min..max attack span otherwise
	AttackOffsetReroll    = 2.0  // Seconds between redraws of the attack offset angle

	// Retargeting
	RetargetChance      = 0.005 // Per-tick chance of voluntary re-selection in AttackAll
	ProtectScanInterval = 3.0   // Seconds between opportunistic scans while protecting

	// Target Scoring Weights (used by scoreTarget)
	ScoreFrontWeight        = 0.5   // Multiplier of the in-front dot product bonus
	ScoreSharedTargetBonus  = 2.0   // Bonus for the leader's current target
	ScoreThreatBonus        = 1.0   // Bonus for candidates threatening the protectee
	ThreateningDistance     = 200.0 // Candidates this close to the protectee are threatening
	HostileSelfPenalty      = 0.5   // Distance multiplier for threats targeting this agent
	HostileProtecteePenalty = 0.3   // Distance multiplier for threats targeting the protectee
	ProtecteeRangeFactor    = 1.5   // Range multiplier for threats to the protectee

	// Follow
	FollowAfterburnerDistance = 100.0 // Afterburner when farther than this from the slot
	FollowMatchDistance       = 20.0  // Match leader velocity inside this distance

	// Return To Carrier
	CarrierApproachDistance    = 300.0 // Start slowing down inside this range
	CarrierHoverDistance       = 100.0 // Hold the hover point inside this range
	CarrierAfterburnerDistance = 500.0 // Afterburner beyond this range
	CarrierMaxApproachSpeed    = 15.0  // Speed cap while approaching
	CarrierHoverUp             = 30.0
	CarrierHoverBack           = 40.0

	// Idle
	IdleStopSpeed = 0.1 // Below this speed the agent stops braking

	// Steering Gains
	AimGain          = 3.0 // Yaw and pitch gain in aimAtDirection
	RollGain         = 2.0 // Roll gain in aimAtDirection and levelOut
	LevelPitchGain   = 1.0
	LevelPitchCap    = 0.5
	SpeedErrorWindow = 10.0 // Speed error that saturates thrust in controlSpeed
	SpeedDeadband    = 0.5

	// flyToPosition
	FlyAlignedDot     = 0.7   // Heading alignment for full thrust
	FlyFacingAwayDot  = -0.3  // Below this alignment the agent reverses
	FlySlowDistance   = 100.0 // Thrust tapers linearly inside this distance
	FlyReverseThrust  = -0.3
	FlyTurningThrust  = 0.3 // Thrust while turning toward the target
	FlyFineDistance   = 30.0
	FlyFineNormWindow = 10.0 // Offset that saturates the fine strafe corrections

	// Evasion
	EvadeBaseDistance  = 100.0
	EvadeDistanceSwing = 50.0
	EvadeGlanceLevel   = 0.7 // Glance back at the threat when the glance term exceeds this

	// Protective Orbit
	OrbitBehind = 40.0
	OrbitAbove  = 20.0
	OrbitSwing  = 30.0

	// Collision Avoidance
	AvoidanceThreshold = 0.01 // Summed repulsion below this magnitude is ignored

	// Sentinel Values
	MaxSearchDistance = 999999.0  // Sentinel for "no target found" in nearest-object searches
	WorstScore        = -999999.0 // Sentinel for "no candidate scored" in best-candidate searches
)
