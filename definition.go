package beans

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// Definition describes one bean type handed to a Context: the type itself
// plus the options that override its declared metadata. Definitions are
// values; build them with Bean or BeanOf.
type Definition struct {
	typ  reflect.Type
	opts []DefinitionOption
}

// Bean creates a Definition for T. Struct types are registered as pointers,
// so Bean[FirstBean]() and Bean[*FirstBean]() describe the same bean.
//
//	beans.Bean[*FirstBean]()
//	beans.Bean[*PrototypeBean](beans.Name("counter"), beans.AsPrototype())
func Bean[T any](opts ...DefinitionOption) Definition {
	return BeanOf(reflect.TypeFor[T](), opts...)
}

// BeanOf creates a Definition for a reflected type. It is the entry point for
// discovery sources that produce lists of types.
func BeanOf(t reflect.Type, opts ...DefinitionOption) Definition {
	return Definition{
		typ:  normalizeType(t),
		opts: slices.Clone(opts),
	}
}

// Type returns the bean type of the definition.
func (d Definition) Type() reflect.Type {
	return d.typ
}

func (d Definition) String() string {
	return fmt.Sprintf("Bean(%s)", formatType(d.typ))
}

// normalizeType maps struct types to pointer-to-struct so every bean is
// addressable and its dependency fields can be assigned.
func normalizeType(t reflect.Type) reflect.Type {
	if t != nil && t.Kind() == reflect.Struct {
		return reflect.PointerTo(t)
	}
	return t
}

// A DefinitionOption overrides the metadata a bean type declares for itself.
type DefinitionOption interface {
	applyDefinitionOption(*definitionOptions)
}

type definitionOptions struct {
	name        string
	scope       *Scope
	hooks       []funcHook
	setters     []setterSlot
	constructor *constructorFunc
	owners      []ownedOption
	errs        []error
}

// ownedOption records the bean type a typed option was written for.
type ownedOption struct {
	option string
	owner  reflect.Type
}

type funcHook struct {
	call func(instance any) error
}

type setterSlot struct {
	dep    reflect.Type
	target string
	set    func(instance, dep any)
}

type constructorFunc struct {
	call func() (any, error)
}

// validate checks that typed options match the definition type.
func (o *definitionOptions) validate(t reflect.Type) error {
	if len(o.errs) > 0 {
		return errors.Join(o.errs...)
	}

	for _, owned := range o.owners {
		if owned.owner != t {
			return fmt.Errorf("%s: %w", owned.option, TypeMismatchError{
				Expected: t,
				Actual:   owned.owner,
				Context:  "definition option",
			})
		}
	}

	return nil
}

// Name is a DefinitionOption that sets the bean name, overriding both the
// Component tag and the default naming rule.
func Name(name string) DefinitionOption {
	return nameOption(name)
}

type nameOption string

func (o nameOption) String() string {
	return fmt.Sprintf("Name(%q)", string(o))
}

func (o nameOption) applyDefinitionOption(opts *definitionOptions) {
	if o == "" {
		opts.errs = append(opts.errs, errors.New("Name: bean name cannot be empty"))
		return
	}
	opts.name = string(o)
}

// WithScope is a DefinitionOption that sets the bean scope.
func WithScope(scope Scope) DefinitionOption {
	return scopeOption(scope)
}

// AsPrototype is shorthand for WithScope(Prototype).
func AsPrototype() DefinitionOption {
	return scopeOption(Prototype)
}

// AsSingleton is shorthand for WithScope(Singleton).
func AsSingleton() DefinitionOption {
	return scopeOption(Singleton)
}

type scopeOption Scope

func (o scopeOption) String() string {
	return fmt.Sprintf("WithScope(%s)", Scope(o))
}

func (o scopeOption) applyDefinitionOption(opts *definitionOptions) {
	scope := Scope(o)
	if !scope.IsValid() {
		opts.errs = append(opts.errs, ScopeError{Value: int(scope)})
		return
	}
	opts.scope = &scope
}

// PostConstruct is a DefinitionOption that registers fn as the bean's
// post-construct hook. T must be the bean type of the definition. A bean has
// at most one hook in total across this option, the PostConstructor
// interface and the Component tag.
func PostConstruct[T any](fn func(T) error) DefinitionOption {
	return postConstructOption[T]{fn: fn}
}

type postConstructOption[T any] struct {
	fn func(T) error
}

func (o postConstructOption[T]) String() string {
	return fmt.Sprintf("PostConstruct[%s]", formatType(reflect.TypeFor[T]()))
}

func (o postConstructOption[T]) applyDefinitionOption(opts *definitionOptions) {
	if o.fn == nil {
		opts.errs = append(opts.errs, fmt.Errorf("%s: hook cannot be nil", o))
		return
	}

	opts.owners = append(opts.owners, ownedOption{option: o.String(), owner: reflect.TypeFor[T]()})
	opts.hooks = append(opts.hooks, funcHook{
		call: func(instance any) error {
			return o.fn(instance.(T))
		},
	})
}

// Inject is a DefinitionOption that declares a dependency slot resolved by
// the declared type D and assigned through set. It is the setter form of an
// `inject` struct tag and works for beans that are not structs.
func Inject[T, D any](set func(T, D)) DefinitionOption {
	return injectOption[T, D]{set: set}
}

// InjectNamed is like Inject but resolves the dependency by bean name.
func InjectNamed[T, D any](name string, set func(T, D)) DefinitionOption {
	return injectOption[T, D]{target: name, set: set}
}

type injectOption[T, D any] struct {
	target string
	set    func(T, D)
}

func (o injectOption[T, D]) String() string {
	if o.target != "" {
		return fmt.Sprintf("InjectNamed[%s, %s](%q)",
			formatType(reflect.TypeFor[T]()), formatType(reflect.TypeFor[D]()), o.target)
	}
	return fmt.Sprintf("Inject[%s, %s]", formatType(reflect.TypeFor[T]()), formatType(reflect.TypeFor[D]()))
}

func (o injectOption[T, D]) applyDefinitionOption(opts *definitionOptions) {
	if o.set == nil {
		opts.errs = append(opts.errs, fmt.Errorf("%s: setter cannot be nil", o))
		return
	}

	opts.owners = append(opts.owners, ownedOption{option: o.String(), owner: reflect.TypeFor[T]()})
	opts.setters = append(opts.setters, setterSlot{
		dep:    reflect.TypeFor[D](),
		target: o.target,
		set: func(instance, dep any) {
			o.set(instance.(T), dep.(D))
		},
	})
}

// Constructor is a DefinitionOption that replaces the default construction
// path (allocating a zero struct) with fn. fn takes no arguments; the bean's
// dependencies are injected into the returned instance afterwards.
func Constructor[T any](fn func() (T, error)) DefinitionOption {
	return constructorOption[T]{fn: fn}
}

type constructorOption[T any] struct {
	fn func() (T, error)
}

func (o constructorOption[T]) String() string {
	return fmt.Sprintf("Constructor[%s]", formatType(reflect.TypeFor[T]()))
}

func (o constructorOption[T]) applyDefinitionOption(opts *definitionOptions) {
	if o.fn == nil {
		opts.errs = append(opts.errs, fmt.Errorf("%s: constructor cannot be nil", o))
		return
	}

	opts.owners = append(opts.owners, ownedOption{option: o.String(), owner: reflect.TypeFor[T]()})
	opts.constructor = &constructorFunc{
		call: func() (any, error) {
			return o.fn()
		},
	}
}
