package beans

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// Context is the bean container. It owns the descriptors handed to New, the
// singleton instances created by Start, and serves lookups for both scopes.
//
// A Context moves one way from not started to started. Start is serialized;
// once it has returned successfully every lookup is safe for concurrent use
// without further locking, because the definitions and the singleton map are
// never written again.
//
// Example:
//
//	ctx, err := beans.New(beans.List(
//	    beans.Bean[*FirstBean](),
//	    beans.Bean[*OtherBean](),
//	    beans.Bean[*PrototypeBean](),
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ctx.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
//	other, err := beans.GetBeanAs[*OtherBean](ctx)
type Context struct {
	id     string
	logger *slog.Logger

	descriptors  []*Descriptor
	definitions  map[string]*Descriptor
	byType       map[reflect.Type]string
	dependencies map[string][]string // resolved bean name per slot

	startMu    sync.Mutex
	running    atomic.Bool
	singletons map[string]any
}

// New creates a Context from the definitions supplied by src. Every
// definition is extracted into a Descriptor immediately, so metadata errors
// such as MultiplePostConstructError surface here, before any instance
// exists. The returned Context is not started.
func New(src Source, opts ...Option) (*Context, error) {
	if src == nil {
		return nil, ValidationError{Cause: ErrSourceNil}
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt.apply(o)
		}
	}

	defs, err := src.Definitions()
	if err != nil {
		return nil, err
	}

	c := &Context{
		id:           o.id,
		logger:       o.logger.With(slog.String("context", o.id)),
		descriptors:  make([]*Descriptor, 0, len(defs)),
		definitions:  make(map[string]*Descriptor, len(defs)),
		byType:       make(map[reflect.Type]string, len(defs)),
		dependencies: make(map[string][]string, len(defs)),
	}

	for _, def := range defs {
		d, err := Extract(def)
		if err != nil {
			return nil, err
		}

		if _, exists := c.definitions[d.name]; exists {
			return nil, DuplicateBeanError{Name: d.name}
		}
		if _, exists := c.byType[d.typ]; exists {
			return nil, DuplicateBeanError{Type: d.typ}
		}

		c.descriptors = append(c.descriptors, d)
		c.definitions[d.name] = d
		c.byType[d.typ] = d.name
	}

	// Slot targets need the complete type index, so they are resolved after
	// every definition is known.
	for _, d := range c.descriptors {
		targets := make([]string, len(d.slots))
		for i, slot := range d.slots {
			targets[i] = c.slotTarget(slot)
			if targets[i] == "" {
				return nil, ValidationError{
					Type:  d.typ,
					Cause: fmt.Errorf("slot %s: %w", slot.name, ErrUnnamedType),
				}
			}
		}
		c.dependencies[d.name] = targets
	}

	c.logger.Debug("context created", slog.Int("beans", len(c.descriptors)))

	return c, nil
}

// ID returns the identifier of the Context.
func (c *Context) ID() string {
	return c.id
}

// Start validates the dependency graph and brings up every singleton:
// all singletons are instantiated, then their dependencies are injected, then
// their post-construct hooks run. Instantiation never begins on a graph that
// failed validation.
//
// On failure the Context stays not started and keeps no instances. Calling
// Start on a started Context is a no-op.
func (c *Context) Start() error {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	if c.running.Load() {
		c.logger.Debug("context already started")
		return nil
	}

	begin := time.Now()

	if err := c.validate(); err != nil {
		c.logger.Warn("dependency graph validation failed", slog.Any("error", err))
		return err
	}

	singletons, err := c.startSingletons()
	if err != nil {
		c.logger.Warn("context start failed", slog.Any("error", err))
		return err
	}

	c.singletons = singletons
	c.running.Store(true)

	c.logger.Info("context started",
		slog.Int("beans", len(c.descriptors)),
		slog.Int("singletons", len(singletons)),
		slog.Duration("elapsed", time.Since(begin)),
	)

	return nil
}

// IsRunning reports whether Start has completed successfully.
func (c *Context) IsRunning() bool {
	return c.running.Load()
}

// ContainsBean reports whether a bean with the given name is defined.
// It fails with ContextNotStartedError before Start.
func (c *Context) ContainsBean(name string) (bool, error) {
	if !c.IsRunning() {
		return false, ContextNotStartedError{Operation: "ContainsBean"}
	}

	_, ok := c.definitions[name]
	return ok, nil
}

// GetBean returns the bean with the given name. Singletons return the
// instance created by Start; prototypes are constructed, injected and
// post-constructed anew on every call.
//
// It fails with ContextNotStartedError before Start and with
// NoSuchBeanDefinitionError for an unknown name.
func (c *Context) GetBean(name string) (any, error) {
	if !c.IsRunning() {
		return nil, ContextNotStartedError{Operation: "GetBean"}
	}

	d, ok := c.definitions[name]
	if !ok {
		return nil, NoSuchBeanDefinitionError{Name: name}
	}

	if d.IsSingleton() {
		return c.singletons[name], nil
	}

	return c.create(d, c.singletons)
}

// GetBeanByType resolves the bean name for t with the same rule used for
// dependency slots, looks the bean up by name and checks that the instance
// is assignable to t.
func (c *Context) GetBeanByType(t reflect.Type) (any, error) {
	if t == nil {
		return nil, ValidationError{Cause: ErrTypeNil}
	}

	instance, err := c.GetBean(c.NameOf(t))
	if err != nil {
		return nil, err
	}

	if actual := reflect.TypeOf(instance); !actual.AssignableTo(t) {
		return nil, TypeMismatchError{
			Expected: t,
			Actual:   actual,
			Context:  "bean lookup",
		}
	}

	return instance, nil
}

// IsSingleton reports whether the named bean is singleton-scoped. It reads
// metadata only and does not require a started Context.
func (c *Context) IsSingleton(name string) (bool, error) {
	d, ok := c.definitions[name]
	if !ok {
		return false, NoSuchBeanDefinitionError{Name: name}
	}
	return d.IsSingleton(), nil
}

// IsPrototype reports whether the named bean is prototype-scoped. It reads
// metadata only and does not require a started Context.
func (c *Context) IsPrototype(name string) (bool, error) {
	d, ok := c.definitions[name]
	if !ok {
		return false, NoSuchBeanDefinitionError{Name: name}
	}
	return d.IsPrototype(), nil
}

// NameOf returns the bean name a type resolves to: the name of the bean
// registered with exactly that type, otherwise DefaultName(t).
func (c *Context) NameOf(t reflect.Type) string {
	if name, ok := c.byType[t]; ok {
		return name
	}
	return DefaultName(t)
}

// BeanNames returns the defined bean names in registration order.
func (c *Context) BeanNames() []string {
	names := make([]string, len(c.descriptors))
	for i, d := range c.descriptors {
		names[i] = d.name
	}
	return names
}

// Descriptor returns the descriptor of the named bean.
func (c *Context) Descriptor(name string) (*Descriptor, error) {
	d, ok := c.definitions[name]
	if !ok {
		return nil, NoSuchBeanDefinitionError{Name: name}
	}
	return d, nil
}

// Descriptors returns all descriptors in registration order.
func (c *Context) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(c.descriptors))
	copy(out, c.descriptors)
	return out
}

// slotTarget resolves the bean name a dependency slot points at.
func (c *Context) slotTarget(s Slot) string {
	if s.target != "" {
		return s.target
	}
	return c.NameOf(s.typ)
}
