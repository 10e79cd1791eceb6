package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const eventDispatchScript = `
if __phase == "event" {
	on_event(__engine, __event)
}
`

// RegisterScript compiles a tengo script defining on_event(engine, name)
// and registers it as the handler for name. The engine exposes sfx(code)
// and vfx(name, dx, dy).
func (r *EventRegistry) RegisterScript(name string, src []byte) error {
	if r == nil || strings.TrimSpace(name) == "" {
		return fmt.Errorf("events: register script %q: %w", name, ErrInvalidArgument)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + eventDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__event", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("events: compile script %q: %w: %w", name, ErrInvalidArgument, err)
	}
	// Run once without dispatching so script globals are defined.
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("events: run script %q: %w", name, err)
	}
	if !compiled.IsDefined("on_event") {
		return fmt.Errorf("events: script %q does not define on_event: %w", name, ErrInvalidArgument)
	}

	return r.Register(name, func(ctx EventContext) {
		if err := runEventScript(compiled, ctx); err != nil {
			log.Printf("events: entity=%s script %s: %v", ctx.Entity, ctx.Name, err)
		}
	})
}

func runEventScript(compiled *tengo.Compiled, ctx EventContext) error {
	if err := compiled.Set("__phase", "event"); err != nil {
		return err
	}
	if err := compiled.Set("__engine", buildEventEngine(ctx)); err != nil {
		return err
	}
	if err := compiled.Set("__event", ctx.Name); err != nil {
		return err
	}
	return compiled.Run()
}

func buildEventEngine(ctx EventContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["sfx"] = &tengo.UserFunction{Name: "sfx", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		code, _ := tengo.ToString(args[0])
		if strings.TrimSpace(code) == "" {
			return tengo.FalseValue, nil
		}
		PlaySFX(ctx.World, code)
		return tengo.TrueValue, nil
	}}

	values["vfx"] = &tengo.UserFunction{Name: "vfx", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name, _ := tengo.ToString(args[0])
		var dx, dy float64
		if len(args) > 1 {
			dx, _ = tengo.ToFloat64(args[1])
		}
		if len(args) > 2 {
			dy, _ = tengo.ToFloat64(args[2])
		}
		if SpawnCameraVFX(ctx.World, name, dx, dy) == 0 {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["entity"] = &tengo.Int{Value: int64(ctx.Entity)}

	return &tengo.ImmutableMap{Value: values}
}
