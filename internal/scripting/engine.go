package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for gameplay formulas.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)

	// Load core scripts first, then feature scripts
	for _, sub := range []string{"core", "gameplay"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// NewEngineFromString creates a Lua engine from a single script chunk.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
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

// ScoreFor calls the Lua calc_score function for a scoring kind
// such as "asteroid.big" or "ufo".
func (e *Engine) ScoreFor(kind string) (int, error) {
	fn := e.vm.GetGlobal("calc_score")
	if fn == lua.LNil {
		return 0, fmt.Errorf("lua function calc_score not found")
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(kind)); err != nil {
		e.log.Error("lua calc_score error", zap.String("kind", kind), zap.Error(err))
		return 0, fmt.Errorf("calc_score %s: %w", kind, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("calc_score %s: no score for kind", kind)
	}
	return int(n), nil
}

// NextSpawnInterval calls the Lua next_spawn_interval function with the
// current asteroid spawn interval in seconds. A non-positive result means
// the ramp has bottomed out; a missing function, a script error or a
// non-numeric result is an error.
func (e *Engine) NextSpawnInterval(current time.Duration) (time.Duration, bool, error) {
	fn := e.vm.GetGlobal("next_spawn_interval")
	if fn == lua.LNil {
		return current, false, fmt.Errorf("lua function next_spawn_interval not found")
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(current.Seconds())); err != nil {
		e.log.Error("lua next_spawn_interval error", zap.Error(err))
		return current, false, fmt.Errorf("next_spawn_interval %s: %w", current, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		return current, false, fmt.Errorf("next_spawn_interval %s: returned %s, want number", current, result.Type())
	}
	next := time.Duration(float64(n) * float64(time.Second)).Round(time.Millisecond)
	if next <= 0 {
		return current, false, nil
	}
	return next, true, nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
