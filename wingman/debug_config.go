package wingman

import "go.uber.org/zap"

// Debug flags for various subsystems
var (
	DebugWeapons = false // Set to true to log every weapon decision at debug level
)

// logWeaponDecision logs weapon firing decisions when debugging is enabled
func (a *Agent) logWeaponDecision(decision, reason string, dist float64) {
	if DebugWeapons {
		a.log.Debug("weapon decision",
			zap.String("decision", decision),
			zap.String("reason", reason),
			zap.Stringer("target", a.currentTarget),
			zap.Float64("dist", dist),
			zap.Bool("locked", a.locked))
	}
}
