package game

import "github.com/dungeoncore/server/internal/entity"

// Command is one discrete player input.
type Command int

const (
	MoveLeft Command = iota
	MoveRight
	MoveUp
	MoveDown
	StopLeft
	StopRight
	StopUp
	StopDown
	Attack
)

var commandNames = [...]string{"move_left", "move_right", "move_up", "move_down", "stop_left", "stop_right", "stop_up", "stop_down", "attack"}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Apply hands cmd to the player. Commands are ignored outside a running
// game. An attack on cooldown does nothing.
func (g *Game) Apply(cmd Command) {
	if g.state != StateRunning {
		return
	}
	p := g.store.Player()
	if p == nil {
		return
	}
	switch cmd {
	case MoveLeft:
		p.MoveLeft()
	case MoveRight:
		p.MoveRight()
	case MoveUp:
		p.MoveUp()
	case MoveDown:
		p.MoveDown()
	case StopLeft:
		p.StopLeft()
	case StopRight:
		p.StopRight()
	case StopUp:
		p.StopUp()
	case StopDown:
		p.StopDown()
	case Attack:
		g.attack(p)
	}
}

func (g *Game) attack(p *entity.Player) {
	proj, ok := p.Attack()
	if !ok {
		return
	}
	g.store.AddEntity(proj)
}
