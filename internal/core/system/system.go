package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseMovement    Phase = iota // 0: parallel position + sprite updates
	PhaseCollision                // 1: parallel broad phase, produces interaction results
	PhaseInteraction              // 2: sequential result drain, mutates health/flags/level
	PhaseCleanup                  // 3: reap dead and spent entities
)

func (p Phase) String() string {
	switch p {
	case PhaseMovement:
		return "movement"
	case PhaseCollision:
		return "collision"
	case PhaseInteraction:
		return "interaction"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
