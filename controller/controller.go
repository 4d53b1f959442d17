// Package controller drives muscles from a tengo script.
//
// A script defines update(engine) which runs once per fixed step. The engine
// map exposes:
//
//	engine.tick                 fixed steps taken so far
//	engine.time                 simulated seconds so far
//	engine.muscles              ids of the muscles being driven
//	engine.state                map kept between calls
//	engine.strength(id)         the muscle's maximum force
//	engine.force(id)            the commanded force
//	engine.set_intensity(id, f) commanded force as a fraction of strength
//	engine.contract(id)
//	engine.expand(id)
package controller

import (
	"embed"
	"fmt"
	"os"
	"sort"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/musclesim/muscle"
)

//go:embed scripts/*.tengo
var scriptsFS embed.FS

const dispatchScript = `
update(__engine)
`

// DefaultScript returns the built-in oscillating controller.
func DefaultScript() []byte {
	src, err := scriptsFS.ReadFile("scripts/oscillate.tengo")
	if err != nil {
		panic("controller: embedded script: " + err.Error())
	}
	return src
}

// Controller runs one compiled script.
type Controller struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// Load compiles the script at path, or the default script when path is empty.
func Load(path string) (*Controller, error) {
	if path == "" {
		return New(DefaultScript())
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("controller: load %s: %w", path, err)
	}
	c, err := New(src)
	if err != nil {
		return nil, err
	}
	c.path = path
	return c, nil
}

// New compiles src.
func New(src []byte) (*Controller, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), dispatchScript...))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("controller: compile: %w", err)
	}
	return &Controller{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Path returns the file the script was loaded from, or "" for the default.
func (c *Controller) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Reload recompiles the script from its file. The running script and its
// state are kept if the new one fails to compile.
func (c *Controller) Reload() error {
	if c == nil || c.path == "" {
		return nil
	}
	next, err := Load(c.path)
	if err != nil {
		return err
	}
	c.compiled = next.compiled
	return nil
}

// Update runs the script once for the given muscles.
func (c *Controller) Update(tick int, elapsed float64, muscles []*muscle.Muscle) error {
	if c == nil || c.compiled == nil {
		return nil
	}
	engine := c.engine(tick, elapsed, muscles)
	if err := c.compiled.Set("__engine", engine); err != nil {
		return fmt.Errorf("controller: set engine: %w", err)
	}
	if err := c.compiled.Run(); err != nil {
		return fmt.Errorf("controller: run: %w", err)
	}
	return nil
}

func (c *Controller) engine(tick int, elapsed float64, muscles []*muscle.Muscle) *tengo.ImmutableMap {
	byID := make(map[int]*muscle.Muscle, len(muscles))
	ids := make([]int, 0, len(muscles))
	for _, m := range muscles {
		if m == nil {
			continue
		}
		if _, ok := byID[m.ID()]; !ok {
			ids = append(ids, m.ID())
		}
		byID[m.ID()] = m
	}
	sort.Ints(ids)

	idObjects := make([]tengo.Object, 0, len(ids))
	for _, id := range ids {
		idObjects = append(idObjects, &tengo.Int{Value: int64(id)})
	}

	values := map[string]tengo.Object{
		"tick":    &tengo.Int{Value: int64(tick)},
		"time":    &tengo.Float{Value: elapsed},
		"muscles": &tengo.ImmutableArray{Value: idObjects},
		"state":   c.state,
	}

	values["set_intensity"] = &tengo.UserFunction{Name: "set_intensity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		m, ok := lookup(byID, args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		fraction, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "fraction", Expected: "float", Found: args[1].TypeName()}
		}
		m.SetIntensity(fraction)
		return tengo.TrueValue, nil
	}}

	values["contract"] = actionFunc("contract", byID, muscle.Contract)
	values["expand"] = actionFunc("expand", byID, muscle.Expand)

	values["strength"] = &tengo.UserFunction{Name: "strength", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		m, ok := lookup(byID, args[0])
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Float{Value: m.Data().Strength}, nil
	}}

	values["force"] = &tengo.UserFunction{Name: "force", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		m, ok := lookup(byID, args[0])
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Float{Value: m.Force()}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func actionFunc(name string, byID map[int]*muscle.Muscle, action muscle.Action) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		m, ok := lookup(byID, args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		m.SetAction(action)
		return tengo.TrueValue, nil
	}}
}

func lookup(byID map[int]*muscle.Muscle, obj tengo.Object) (*muscle.Muscle, bool) {
	id, ok := tengo.ToInt(obj)
	if !ok {
		return nil, false
	}
	m, ok := byID[id]
	return m, ok
}
