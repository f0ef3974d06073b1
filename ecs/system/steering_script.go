package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/rampage/ecs"
	"github.com/milk9111/rampage/ecs/component"
	"github.com/milk9111/rampage/prefabs"
)

// A steering script defines behaviors(ctx) returning an array of
// {kind, weight, radius} maps. This line calls it once per run.
const steeringDispatchScript = `
__out := behaviors(__ctx)
`

type steeringScript struct {
	compiled *tengo.Compiled
	err      error
}

// SteeringScripts compiles each steering script once and runs it per entity
// per tick. A script that fails to load or run falls back to the prefab's
// built-in behaviors.
type SteeringScripts struct {
	cache map[string]*steeringScript
	load  func(string) ([]byte, error)
}

func NewSteeringScripts() *SteeringScripts {
	return &SteeringScripts{
		cache: make(map[string]*steeringScript),
		load:  prefabs.LoadScript,
	}
}

// Invalidate forgets a compiled script so the next tick reloads it. An empty
// path forgets all of them.
func (s *SteeringScripts) Invalidate(path string) {
	if s == nil {
		return
	}
	if path == "" {
		s.cache = make(map[string]*steeringScript)
		return
	}
	for key := range s.cache {
		if strings.HasSuffix(path, key) || strings.HasSuffix(key, path) {
			delete(s.cache, key)
		}
	}
}

// Behaviors returns this tick's behavior list for an AI. The result is always
// a fresh slice the caller may keep.
func (s *SteeringScripts) Behaviors(ctx *Context, e ecs.Entity, st *component.Steering) []component.Behavior {
	base := append([]component.Behavior(nil), st.Base...)
	if s == nil || strings.TrimSpace(st.Script) == "" {
		return base
	}
	rt := s.get(ctx, st.Script)
	if rt.err != nil {
		return base
	}

	in := map[string]any{
		"x":          st.TrackedPosition.X,
		"y":          st.TrackedPosition.Y,
		"target_x":   st.Target.X,
		"target_y":   st.Target.Y,
		"has_target": st.HasTarget,
		"max_speed":  st.MaxSpeed,
		"rampage":    ctx.Rampage.Active,
		"wanted":     ctx.Wanted.Level,
	}
	if err := rt.compiled.Set("__ctx", in); err != nil {
		ctx.Log.Warn().Err(err).Stringer("entity", e).Str("script", st.Script).Msg("steering script input")
		return base
	}
	if err := rt.compiled.Run(); err != nil {
		ctx.Log.Warn().Err(err).Stringer("entity", e).Str("script", st.Script).Msg("steering script run")
		return base
	}
	out, err := decodeBehaviors(rt.compiled.Get("__out").Array())
	if err != nil {
		ctx.Log.Warn().Err(err).Stringer("entity", e).Str("script", st.Script).Msg("steering script output")
		return base
	}
	return out
}

func (s *SteeringScripts) get(ctx *Context, path string) *steeringScript {
	if rt, ok := s.cache[path]; ok {
		return rt
	}
	rt := &steeringScript{}
	rt.compiled, rt.err = s.compile(path)
	if rt.err != nil {
		ctx.Log.Error().Err(rt.err).Str("script", path).Msg("load steering script")
	}
	s.cache[path] = rt
	return rt
}

func (s *SteeringScripts) compile(path string) (*tengo.Compiled, error) {
	src, err := s.load(path)
	if err != nil {
		return nil, fmt.Errorf("steering script %q: %w", path, err)
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + steeringDispatchScript))
	if err := script.Add("__ctx", map[string]any{}); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("steering script %q: %w", path, err)
	}
	return compiled, nil
}

func decodeBehaviors(raw []any) ([]component.Behavior, error) {
	out := make([]component.Behavior, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("behavior %d: want map, got %T", i, item)
		}
		kind, _ := m["kind"].(string)
		switch component.BehaviorKind(kind) {
		case component.BehaviorSeek, component.BehaviorFlee, component.BehaviorSeparation, component.BehaviorAvoid:
		default:
			return nil, fmt.Errorf("behavior %d: unknown kind %q", i, kind)
		}
		out = append(out, component.Behavior{
			Kind:   component.BehaviorKind(kind),
			Weight: asFloat(m["weight"]),
			Radius: asFloat(m["radius"]),
		})
	}
	return out, nil
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}
