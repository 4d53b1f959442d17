// Package sim hosts a creature: it owns the ECS world, the physics space, the
// settings and the schedulers that drive the muscles.
package sim

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/musclesim/body"
	"github.com/milk9111/musclesim/controller"
	"github.com/milk9111/musclesim/ecs"
	"github.com/milk9111/musclesim/ecs/component"
	"github.com/milk9111/musclesim/ecs/system"
	"github.com/milk9111/musclesim/muscle"
	"github.com/milk9111/musclesim/physics"
	"github.com/milk9111/musclesim/settings"
	"github.com/milk9111/musclesim/telemetry"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrDuplicateAnchor = errors.New("sim: anchor already exists")
	ErrUnknownAnchor   = errors.New("sim: unknown anchor")
	ErrDuplicateMuscle = errors.New("sim: muscle already exists")
)

const groundHalfWidth = 500

// Options selects the files a simulation reads and writes. Empty fields use
// the built-in defaults; an empty TelemetryDir disables recording.
type Options struct {
	SettingsPath string
	ScriptPath   string
	TelemetryDir string
	// Watch hot-reloads the settings file and the controller script.
	Watch bool
}

// Simulation runs one creature.
type Simulation struct {
	world   *ecs.World
	physics *physics.World

	store      *settings.Store
	watcher    *settings.Watcher
	controller *controller.Controller
	recorder   *telemetry.Recorder

	clock     *system.Clock
	fixed     *ecs.Scheduler
	frame     *ecs.Scheduler
	telemetry *system.TelemetrySystem

	anchors map[muscle.AnchorKey]ecs.Entity
	muscles map[int]ecs.Entity

	accumulator float64
	started     bool
}

// New builds an empty simulation.
func New(opts Options) (*Simulation, error) {
	store, err := settings.NewStore(opts.SettingsPath)
	if err != nil {
		return nil, err
	}
	ctrl, err := controller.Load(opts.ScriptPath)
	if err != nil {
		return nil, err
	}
	recorder, err := telemetry.NewRecorder(opts.TelemetryDir)
	if err != nil {
		return nil, err
	}
	cfg := store.Config()
	if err := recorder.WriteConfig(cfg); err != nil {
		_ = recorder.Close()
		return nil, err
	}

	s := &Simulation{
		world:      ecs.NewWorld(),
		physics:    physics.NewWorld(cfg.Physics),
		store:      store,
		controller: ctrl,
		recorder:   recorder,
		clock:      &system.Clock{Dt: cfg.Physics.Dt},
		anchors:    make(map[muscle.AnchorKey]ecs.Entity),
		muscles:    make(map[int]ecs.Entity),
	}

	if opts.Watch {
		w, err := settings.NewWatcher(store.Path(), ctrl.Path())
		if err != nil {
			_ = recorder.Close()
			return nil, fmt.Errorf("sim: watch: %w", err)
		}
		s.watcher = w
	}

	s.telemetry = system.NewTelemetrySystem(recorder, s.clock, cfg.Simulation.TelemetryEvery)
	s.fixed = ecs.NewScheduler(
		system.NewControllerSystem(ctrl, s.clock),
		system.NewMuscleSystem(s.clock),
		system.NewPhysicsSystem(s.physics, s.clock),
		s.telemetry,
	)
	s.frame = ecs.NewScheduler(system.NewMuscleRenderSystem(s.physics, store.Preferences))
	return s, nil
}

// NewWithCreature builds a simulation and spawns c into it.
func NewWithCreature(opts Options, c Creature) (*Simulation, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err := s.Spawn(c); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Spawn adds every part and muscle of c. It stops at the first error.
func (s *Simulation) Spawn(c Creature) error {
	if c.Ground != nil {
		s.physics.AddGround(*c.Ground, groundHalfWidth)
	}
	for _, p := range c.Joints {
		if _, err := s.AddJoint(p.ID, p.Position()); err != nil {
			return err
		}
	}
	for _, p := range c.Bones {
		var err error
		if p.Legacy {
			_, err = s.AddLegacyBone(p.ID, p.Position())
		} else {
			_, err = s.AddBone(p.ID, p.Position())
		}
		if err != nil {
			return err
		}
	}
	for _, d := range c.Muscles {
		if _, err := s.AddMuscle(d); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) addAnchor(part component.AnchorPart) {
	e := ecs.CreateEntity(s.world)
	if err := ecs.Add(s.world, e, component.AnchorComponent.Kind(), &component.Anchor{Part: part}); err != nil {
		panic("sim: add anchor: " + err.Error())
	}
	s.anchors[part.Key()] = e
}

func (s *Simulation) checkAnchor(key muscle.AnchorKey) error {
	if _, ok := s.anchors[key]; ok {
		return fmt.Errorf("%w: %s %d", ErrDuplicateAnchor, key.Kind, key.ID)
	}
	return nil
}

// AddBone creates a bone centred at pos.
func (s *Simulation) AddBone(id int, pos r3.Vec) (*body.Bone, error) {
	if err := s.checkAnchor(muscle.AnchorKey{Kind: muscle.KindBone, ID: id}); err != nil {
		return nil, err
	}
	b := body.SpawnBone(s.physics, id, pos)
	s.addAnchor(b)
	return b, nil
}

// AddLegacyBone creates a bone that carries its mass on a separate weight.
func (s *Simulation) AddLegacyBone(id int, pos r3.Vec) (*body.Bone, error) {
	if err := s.checkAnchor(muscle.AnchorKey{Kind: muscle.KindBone, ID: id}); err != nil {
		return nil, err
	}
	b, err := body.SpawnLegacyBone(s.physics, id, pos)
	if err != nil {
		return nil, err
	}
	s.addAnchor(b)
	return b, nil
}

// AddJoint creates a joint at pos.
func (s *Simulation) AddJoint(id int, pos r3.Vec) (*body.Joint, error) {
	if err := s.checkAnchor(muscle.AnchorKey{Kind: muscle.KindJoint, ID: id}); err != nil {
		return nil, err
	}
	j := body.SpawnJoint(s.physics, id, pos)
	s.addAnchor(j)
	return j, nil
}

// Anchor returns the part registered under key.
func (s *Simulation) Anchor(key muscle.AnchorKey) (component.AnchorPart, bool) {
	e, ok := s.anchors[key]
	if !ok {
		return nil, false
	}
	ac, ok := ecs.Get(s.world, e, component.AnchorComponent.Kind())
	if !ok {
		return nil, false
	}
	return ac.Part, true
}

// AddMuscle binds and attaches a muscle for data between its two registered
// anchors. A muscle added after Start is prepared immediately.
func (s *Simulation) AddMuscle(data muscle.Data) (*muscle.Muscle, error) {
	if _, ok := s.muscles[data.ID]; ok {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateMuscle, data.ID)
	}
	kind := muscle.KindBone
	if data.AttachedToJoints() {
		kind = muscle.KindJoint
	}
	start, ok := s.Anchor(muscle.AnchorKey{Kind: kind, ID: data.StartID()})
	if !ok {
		return nil, fmt.Errorf("%w: muscle %d start %s %d", ErrUnknownAnchor, data.ID, kind, data.StartID())
	}
	end, ok := s.Anchor(muscle.AnchorKey{Kind: kind, ID: data.EndID()})
	if !ok {
		return nil, fmt.Errorf("%w: muscle %d end %s %d", ErrUnknownAnchor, data.ID, kind, data.EndID())
	}

	m := muscle.New(data, s.physics)
	if err := m.Bind(start, end); err != nil {
		return nil, fmt.Errorf("sim: bind muscle %d: %w", data.ID, err)
	}
	if err := m.Attach(); err != nil {
		return nil, fmt.Errorf("sim: attach muscle %d: %w", data.ID, err)
	}
	if s.started {
		m.PrepareForSimulation(s.store.Preferences())
	}

	e := ecs.CreateEntity(s.world)
	if err := ecs.Add(s.world, e, component.MuscleComponent.Kind(), &component.Muscle{Actuator: m}); err != nil {
		panic("sim: add muscle: " + err.Error())
	}
	s.muscles[data.ID] = e
	return m, nil
}

// Muscle returns the muscle with the given id.
func (s *Simulation) Muscle(id int) (*muscle.Muscle, bool) {
	e, ok := s.muscles[id]
	if !ok {
		return nil, false
	}
	mc, ok := ecs.Get(s.world, e, component.MuscleComponent.Kind())
	if !ok {
		return nil, false
	}
	return mc.Actuator, true
}

// Muscles returns every muscle ordered by id.
func (s *Simulation) Muscles() []*muscle.Muscle {
	ids := make([]int, 0, len(s.muscles))
	for id := range s.muscles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*muscle.Muscle, 0, len(ids))
	for _, id := range ids {
		if m, ok := s.Muscle(id); ok {
			out = append(out, m)
		}
	}
	return out
}

// RemoveMuscle destroys the muscle and forgets it. It reports whether the
// muscle existed.
func (s *Simulation) RemoveMuscle(id int) bool {
	m, ok := s.Muscle(id)
	if !ok {
		return false
	}
	m.Destroy()
	s.dropMuscle(id)
	return true
}

func (s *Simulation) dropMuscle(id int) {
	e := s.muscles[id]
	s.physics.RemoveSelector(id)
	ecs.DestroyEntity(s.world, e)
	delete(s.muscles, id)
	s.world.Events().Push(ecs.Event{Kind: ecs.EventMuscleRemoved, Entity: e, Data: id})
}

// RemoveAnchor deletes a bone or joint together with every muscle attached
// to it.
func (s *Simulation) RemoveAnchor(key muscle.AnchorKey) bool {
	part, ok := s.Anchor(key)
	if !ok {
		return false
	}
	attached := part.Muscles()
	part.Delete(s.physics)
	for _, m := range attached {
		// the far anchor still lists the muscle; detach it there
		for _, a := range []muscle.Anchor{m.Start(), m.End()} {
			if a != nil && a.Key() != key {
				a.Disconnect(m)
			}
		}
		s.dropMuscle(m.ID())
	}
	e := s.anchors[key]
	ecs.DestroyEntity(s.world, e)
	delete(s.anchors, key)
	s.world.Events().Push(ecs.Event{Kind: ecs.EventAnchorRemoved, Entity: e, Data: key})
	return true
}

// Start brings every muscle to life. Muscles read the contraction display
// preference once, here.
func (s *Simulation) Start() {
	prefs := s.store.Preferences()
	for _, m := range s.Muscles() {
		m.PrepareForSimulation(prefs)
	}
	s.started = true
}

// Started reports whether Start has been called.
func (s *Simulation) Started() bool {
	return s.started
}

// FixedUpdate runs one fixed step: controller, muscles, physics, telemetry.
func (s *Simulation) FixedUpdate() {
	s.fixed.Update(s.world)
	s.clock.Advance()
}

// Advance adds elapsed wall time and runs the fixed steps it covers, at most
// MaxFixedSteps of them. Time beyond that is dropped. It returns the number
// of steps run.
func (s *Simulation) Advance(elapsed float64) int {
	cfg := s.store.Config()
	dt := s.clock.Dt
	if dt <= 0 {
		return 0
	}
	s.accumulator += elapsed
	steps := 0
	for s.accumulator >= dt && steps < cfg.Simulation.MaxFixedSteps {
		s.FixedUpdate()
		s.accumulator -= dt
		steps++
	}
	if steps == cfg.Simulation.MaxFixedSteps && s.accumulator >= dt {
		s.accumulator = 0
	}
	return steps
}

// Update is the render step: it applies pending file changes and refreshes
// the muscle lines.
func (s *Simulation) Update() {
	s.reload()
	s.frame.Update(s.world)
}

func (s *Simulation) reload() {
	changed, err := s.watcher.Drain()
	if err != nil {
		log.Printf("sim: watch: %v", err)
	}
	for _, path := range changed {
		switch path {
		case s.store.Path():
			if err := s.store.Reload(); err != nil {
				log.Printf("sim: reload settings: %v", err)
				continue
			}
			s.applyConfig(s.store.Config())
			log.Printf("sim: reloaded settings from %s", path)
		case s.controller.Path():
			if err := s.controller.Reload(); err != nil {
				log.Printf("sim: reload script: %v", err)
				continue
			}
			log.Printf("sim: reloaded script from %s", path)
		}
	}
}

// applyConfig picks up the parts of cfg that can change while running.
func (s *Simulation) applyConfig(cfg settings.Config) {
	s.clock.Dt = cfg.Physics.Dt
	s.physics.Configure(cfg.Physics)
	s.telemetry.SetEvery(cfg.Simulation.TelemetryEvery)
}

// Reload re-reads the settings file and applies it.
func (s *Simulation) Reload() error {
	if err := s.store.Reload(); err != nil {
		return err
	}
	s.applyConfig(s.store.Config())
	return nil
}

// Events drains the events raised since the last call: muscle faults and
// removals.
func (s *Simulation) Events() []ecs.Event {
	return s.world.Events().Drain()
}

// Lines returns the muscle lines produced by the last Update.
func (s *Simulation) Lines() []component.LineRender {
	return system.Lines(s.world)
}

// Pick returns the muscle whose line covers point.
func (s *Simulation) Pick(point r3.Vec) (*muscle.Muscle, bool) {
	id, ok := s.physics.Pick(point)
	if !ok {
		return nil, false
	}
	return s.Muscle(id)
}

// Physics returns the physics world.
func (s *Simulation) Physics() *physics.World {
	return s.physics
}

// Store returns the settings store.
func (s *Simulation) Store() *settings.Store {
	return s.store
}

// Tick returns the number of fixed steps taken.
func (s *Simulation) Tick() int {
	return s.clock.Tick
}

// Close stops watching files and flushes telemetry.
func (s *Simulation) Close() error {
	if s == nil {
		return nil
	}
	return errors.Join(s.watcher.Close(), s.recorder.Close())
}
