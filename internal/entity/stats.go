package entity

import "time"

// Stats holds the tunables of every variant. Speeds are in pixels per
// millisecond, frame times in seconds.
type Stats struct {
	Player     PlayerStats     `yaml:"player"`
	Enemy      EnemyStats      `yaml:"enemy"`
	Well       WellStats       `yaml:"well"`
	Projectile ProjectileStats `yaml:"projectile"`
	Ladder     LadderStats     `yaml:"ladder"`
	Exit       ExitStats       `yaml:"exit"`
}

type PlayerStats struct {
	MaxHealth       int           `yaml:"max_health"`
	Damage          int           `yaml:"damage"`
	Speed           float64       `yaml:"speed"`
	IdleFrameTime   float64       `yaml:"idle_frame_time"`
	MovingFrameTime float64       `yaml:"moving_frame_time"`
	HitCooldown     time.Duration `yaml:"hit_cooldown"`
	AttackCooldown  time.Duration `yaml:"attack_cooldown"`
}

type EnemyStats struct {
	Health          int           `yaml:"health"`
	Damage          int           `yaml:"damage"`
	Speed           float64       `yaml:"speed"`
	DetectionRadius float64       `yaml:"detection_radius"`
	FrameTime       float64       `yaml:"frame_time"`
	WanderChance    float64       `yaml:"wander_chance"` // per tick
	HitCooldown     time.Duration `yaml:"hit_cooldown"`
}

type WellStats struct {
	HealAmount int     `yaml:"heal_amount"`
	FrameTime  float64 `yaml:"frame_time"`
}

type ProjectileStats struct {
	Speed  float64 `yaml:"speed"`
	Damage int     `yaml:"damage"`
}

type LadderStats struct {
	AdvancesLevel bool `yaml:"advances_level"`
}

type ExitStats struct {
	WinsGame bool `yaml:"wins_game"`
}

// DefaultStats returns the stock dungeon tuning.
func DefaultStats() Stats {
	return Stats{
		Player: PlayerStats{
			MaxHealth:       100,
			Damage:          10,
			Speed:           0.3,
			IdleFrameTime:   0.5,
			MovingFrameTime: 0.2,
			HitCooldown:     500 * time.Millisecond,
			AttackCooldown:  500 * time.Millisecond,
		},
		Enemy: EnemyStats{
			Health:          50,
			Damage:          5,
			Speed:           0.05,
			DetectionRadius: 10000,
			FrameTime:       0.2,
			WanderChance:    0.05,
			HitCooldown:     500 * time.Millisecond,
		},
		Well: WellStats{
			HealAmount: 10,
			FrameTime:  0.2,
		},
		Projectile: ProjectileStats{
			Speed:  1,
			Damage: 10,
		},
	}
}
