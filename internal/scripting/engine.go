package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dungeoncore/server/internal/entity"
)

// Engine wraps a single gopher-lua VM holding the combat rules.
// Single-goroutine access only (interaction pipeline).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Load core scripts first, then the rules
	for _, sub := range []string{"core", "combat"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// --- Combat Rules Bridge ---

// Damage calls Lua calc_damage({target, base}). Falls back to base when the
// function is missing or fails.
func (e *Engine) Damage(target entity.Kind, base int) int {
	t := e.vm.NewTable()
	t.RawSetString("target", lua.LString(target.String()))
	t.RawSetString("base", lua.LNumber(base))

	v, ok := e.callTable("calc_damage", t)
	if !ok {
		return base
	}
	return max(0, v)
}

// Heal calls Lua calc_heal({amount, health, max_health}). Falls back to
// amount when the function is missing or fails.
func (e *Engine) Heal(amount, health, maxHealth int) int {
	t := e.vm.NewTable()
	t.RawSetString("amount", lua.LNumber(amount))
	t.RawSetString("health", lua.LNumber(health))
	t.RawSetString("max_health", lua.LNumber(maxHealth))

	v, ok := e.callTable("calc_heal", t)
	if !ok {
		return amount
	}
	return max(0, v)
}

// callTable calls a Lua function with one table argument and reads back a
// number. ok is false when the call could not produce one.
func (e *Engine) callTable(name string, arg *lua.LTable) (int, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return 0, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("func", name), zap.String("type", result.Type().String()))
		return 0, false
	}
	return int(n), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
