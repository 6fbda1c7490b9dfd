package server

// Simulation Constants
// These constants drive the reference simulation that hosts the wingman AI:
// flight model, weapons and scenario layout.

const (
	// Flight Model
	MaxThrust         = 60.0  // Forward acceleration at full thrust (units/s²)
	StrafeThrust      = 30.0  // Lateral and vertical acceleration at full deflection
	AfterburnerFactor = 2.0   // Thrust and speed cap multiplier with afterburner lit
	LinearDrag        = 0.5   // Fraction of velocity lost per second
	MaxSpeed          = 120.0 // Speed cap without afterburner
	PitchRate         = 1.2   // Radians per second at full deflection
	YawRate           = 1.2
	RollRate          = 2.0

	// Weapons
	WeaponRange    = 300.0
	WeaponCone     = 0.9  // Minimum dot product between heading and line of fire
	WeaponDamage   = 10.0 // Health removed per hit
	WeaponCooldown = 0.25 // Seconds between shots

	// Scenario Layout
	LeaderCircuitRadius = 600.0
	LeaderSpeed         = 40.0
	LeaderTargetRange   = 800.0 // Leader picks the nearest hostile inside this range
	CarrierHealth       = 1000.0
	FormationSpacing    = 40.0

	// Spatial Grid
	GridCellSize = 200.0 // Must be at least the largest avoidance distance

	// Client Connection
	ClientSendBuffer = 256
)
