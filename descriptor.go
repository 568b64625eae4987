package beans

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/junioryono/beans/internal/reflection"
)

// Descriptor is the immutable metadata of a bean: its resolved name and
// scope, its dependency slots and its optional post-construct hook.
// Descriptors are produced by Extract and never change afterwards.
type Descriptor struct {
	name  string
	typ   reflect.Type
	scope Scope
	slots []Slot

	hookName string
	hook     func(instance any) error

	construct func() (any, error)
}

// Slot is a dependency declared by a bean. Its resolution key is the declared
// static type, unless Target names a bean explicitly.
type Slot struct {
	name   string
	typ    reflect.Type
	target string

	// index is the field path for struct-tag slots; set is the setter for
	// Inject options. Exactly one of them is non-nil.
	index []int
	set   func(instance, dep any)
}

// Name returns the field name, or "setter#N" for Inject options.
func (s Slot) Name() string { return s.name }

// Type returns the declared type of the slot.
func (s Slot) Type() reflect.Type { return s.typ }

// Target returns the explicit bean name of the slot, or "" when the slot is
// resolved by its declared type.
func (s Slot) Target() string { return s.target }

// IsField reports whether the slot is a struct field.
func (s Slot) IsField() bool { return s.index != nil }

func (s Slot) String() string {
	if s.target != "" {
		return fmt.Sprintf("%s %s (bean %q)", s.name, formatType(s.typ), s.target)
	}
	return fmt.Sprintf("%s %s", s.name, formatType(s.typ))
}

// Name returns the bean name.
func (d *Descriptor) Name() string { return d.name }

// Type returns the bean type.
func (d *Descriptor) Type() reflect.Type { return d.typ }

// Scope returns the bean scope.
func (d *Descriptor) Scope() Scope { return d.scope }

// IsSingleton reports whether the bean is singleton-scoped.
func (d *Descriptor) IsSingleton() bool { return d.scope == Singleton }

// IsPrototype reports whether the bean is prototype-scoped.
func (d *Descriptor) IsPrototype() bool { return d.scope == Prototype }

// Slots returns a copy of the dependency slots in declaration order:
// struct fields first, then Inject options.
func (d *Descriptor) Slots() []Slot {
	return slices.Clone(d.slots)
}

// PostConstruct returns the label of the post-construct hook: a method name,
// or "func" for a PostConstruct option. It is empty when there is no hook.
func (d *Descriptor) PostConstruct() string { return d.hookName }

// HasPostConstruct reports whether the bean has a post-construct hook.
func (d *Descriptor) HasPostConstruct() bool { return d.hook != nil }

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s{type: %s, scope: %s, slots: %d}", d.name, formatType(d.typ), d.scope, len(d.slots))
}

// Extract builds the Descriptor of a definition. It reads only static
// metadata: the Component tag, `inject` field tags, method sets and the
// definition options. Defaulting of name and scope happens here and nowhere
// else.
//
// Extract fails with MultiplePostConstructError when more than one
// post-construct hook is declared, and with ValidationError for any other
// malformed metadata.
func Extract(def Definition) (*Descriptor, error) {
	t := def.typ
	if t == nil {
		return nil, ValidationError{Cause: ErrTypeNil}
	}

	opts := &definitionOptions{}
	for _, opt := range def.opts {
		if opt != nil {
			opt.applyDefinitionOption(opts)
		}
	}

	if err := opts.validate(t); err != nil {
		return nil, ValidationError{Type: t, Cause: err}
	}

	info, err := analyzer.Analyze(t)
	if err != nil {
		return nil, ValidationError{Type: t, Cause: err}
	}

	d := &Descriptor{
		typ:   t,
		slots: slotsOf(info),
	}

	// Name: option, then tag, then the default rule.
	switch {
	case opts.name != "":
		d.name = opts.name
	case info.Name != "":
		d.name = info.Name
	default:
		d.name = DefaultName(t)
	}
	if d.name == "" {
		return nil, ValidationError{Type: t, Cause: ErrUnnamedType}
	}

	// Scope: option, then tag, then Singleton.
	switch {
	case opts.scope != nil:
		d.scope = *opts.scope
	case info.Scope != "":
		if err := d.scope.UnmarshalText([]byte(info.Scope)); err != nil {
			return nil, ValidationError{Type: t, Cause: err}
		}
	default:
		d.scope = Singleton
	}

	for i, s := range opts.setters {
		d.slots = append(d.slots, Slot{
			name:   "setter#" + strconv.Itoa(i+1),
			typ:    s.dep,
			target: s.target,
			set:    s.set,
		})
	}

	hooks := methodHooks(info)
	for _, h := range opts.hooks {
		hooks = append(hooks, namedHook{name: "func", call: h.call})
	}

	switch len(hooks) {
	case 0:
	case 1:
		d.hookName = hooks[0].name
		d.hook = hooks[0].call
	default:
		names := make([]string, len(hooks))
		for i, h := range hooks {
			names[i] = h.name
		}
		return nil, MultiplePostConstructError{TypeName: formatType(t), Hooks: names}
	}

	if opts.constructor != nil {
		d.construct = opts.constructor.call
	} else if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
		elem := t.Elem()
		d.construct = func() (any, error) {
			return reflect.New(elem).Interface(), nil
		}
	}

	return d, nil
}

type namedHook struct {
	name string
	call func(instance any) error
}

// slotsOf converts the analyzed inject fields into dependency slots.
func slotsOf(info *reflection.TypeInfo) []Slot {
	slots := make([]Slot, 0, len(info.Fields))
	for _, f := range info.Fields {
		slots = append(slots, Slot{
			name:   f.Name,
			typ:    f.Type,
			target: f.Target,
			index:  slices.Clone(f.Index),
		})
	}
	return slots
}

// methodHooks binds the analyzed post-construct methods.
func methodHooks(info *reflection.TypeInfo) []namedHook {
	hooks := make([]namedHook, 0, len(info.Hooks))
	for _, m := range info.Hooks {
		name := m.Name
		hooks = append(hooks, namedHook{
			name: name,
			call: func(instance any) error {
				out := reflect.ValueOf(instance).MethodByName(name).Call(nil)
				if len(out) == 1 && !out[0].IsNil() {
					return out[0].Interface().(error)
				}
				return nil
			},
		})
	}
	return hooks
}
