package entity

import "github.com/dungeoncore/server/internal/anim"

// Asset keys of the stock sprite sheet.
const (
	AssetFloor      anim.Frame = "floor_1"
	AssetWall       anim.Frame = "wall_mid"
	AssetLadder     anim.Frame = "floor_ladder"
	AssetExit       anim.Frame = "crate"
	AssetProjectile anim.Frame = "weapon_throwing_axe"
)

var (
	enemyFrames = []anim.Frame{
		"big_zombie_idle_anim_f0",
		"big_zombie_idle_anim_f1",
		"big_zombie_idle_anim_f2",
		"big_zombie_idle_anim_f3",
	}
	playerIdleFrames = []anim.Frame{
		"wizzard_f_idle_anim_f0",
		"wizzard_f_idle_anim_f1",
		"wizzard_f_idle_anim_f2",
		"wizzard_f_idle_anim_f3",
	}
	playerRunFrames = []anim.Frame{
		"wizzard_f_run_anim_f0",
		"wizzard_f_run_anim_f1",
		"wizzard_f_run_anim_f2",
		"wizzard_f_run_anim_f3",
	}
	wellFrames = []anim.Frame{
		"wall_fountain_mid_blue_anim_f0",
		"wall_fountain_mid_blue_anim_f1",
		"wall_fountain_mid_blue_anim_f2",
	}
	explosionFrames = []anim.Frame{
		"explosion_f0",
		"explosion_f1",
		"explosion_f2",
		"explosion_f3",
	}
)

// Explosion timing.
const (
	ExplosionDuration  = 1.0
	ExplosionFrameTime = 0.2
)

// ExplosionFrames returns the frames of the enemy death animation.
func ExplosionFrames() []anim.Frame {
	out := make([]anim.Frame, len(explosionFrames))
	copy(out, explosionFrames)
	return out
}

// staticFrameTime is the period of single-frame sprites; they never visibly
// change so the value only has to be positive.
const staticFrameTime = 1.0
