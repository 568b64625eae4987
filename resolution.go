package beans

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
)

// startSingletons runs the startup pipeline over all singleton beans in
// registration order: instantiate every one, then inject every one, then run
// every post-construct hook. The returned map is published by Start only
// when all three phases succeed.
func (c *Context) startSingletons() (map[string]any, error) {
	var singletons []*Descriptor
	for _, d := range c.descriptors {
		if d.IsSingleton() {
			singletons = append(singletons, d)
		}
	}

	instances := make(map[string]any, len(singletons))

	for _, d := range singletons {
		instance, err := c.instantiate(d)
		if err != nil {
			return nil, err
		}
		instances[d.name] = instance
	}

	for _, d := range singletons {
		if err := c.inject(d, instances[d.name], instances); err != nil {
			return nil, err
		}
	}

	for _, d := range singletons {
		if err := c.postConstruct(d, instances[d.name]); err != nil {
			return nil, err
		}
	}

	return instances, nil
}

// create builds one fresh instance: construct, inject, post-construct.
func (c *Context) create(d *Descriptor, singletons map[string]any) (any, error) {
	instance, err := c.instantiate(d)
	if err != nil {
		return nil, err
	}

	if err := c.inject(d, instance, singletons); err != nil {
		return nil, err
	}

	if err := c.postConstruct(d, instance); err != nil {
		return nil, err
	}

	c.logger.Debug("prototype bean created", slog.String("bean", d.name))

	return instance, nil
}

// dependency resolves a slot target. Singletons come from the given map,
// prototypes are built fresh for every slot that needs one.
func (c *Context) dependency(name string, singletons map[string]any) (any, error) {
	d, ok := c.definitions[name]
	if !ok {
		return nil, NoSuchBeanDefinitionError{Name: name}
	}

	if d.IsSingleton() {
		instance, ok := singletons[name]
		if !ok {
			return nil, NoSuchBeanDefinitionError{Name: name}
		}
		return instance, nil
	}

	return c.create(d, singletons)
}

func (c *Context) instantiate(d *Descriptor) (instance any, err error) {
	if d.construct == nil {
		return nil, BeanInstantiationError{Bean: d.name, Type: d.typ, Cause: ErrNoConstructor}
	}

	defer func() {
		if r := recover(); r != nil {
			instance = nil
			err = BeanInstantiationError{
				Bean:  d.name,
				Type:  d.typ,
				Cause: PanicError{Value: r, Stack: debug.Stack()},
			}
		}
	}()

	instance, err = d.construct()
	if err != nil {
		return nil, BeanInstantiationError{Bean: d.name, Type: d.typ, Cause: err}
	}

	if isNil(instance) {
		return nil, BeanInstantiationError{Bean: d.name, Type: d.typ, Cause: ErrNilInstance}
	}

	c.logger.Debug("bean instantiated", slog.String("bean", d.name), slog.String("scope", d.scope.String()))

	return instance, nil
}

func (c *Context) inject(d *Descriptor, instance any, singletons map[string]any) error {
	targets := c.dependencies[d.name]

	for i, slot := range d.slots {
		dep, err := c.dependency(targets[i], singletons)
		if err != nil {
			return err
		}

		if err := assign(slot, instance, dep); err != nil {
			return BeanInjectionError{Bean: d.name, Slot: slot.name, Cause: err}
		}
	}

	if len(d.slots) > 0 {
		c.logger.Debug("bean dependencies injected", slog.String("bean", d.name), slog.Int("slots", len(d.slots)))
	}

	return nil
}

// assign stores dep into one slot of instance.
func assign(slot Slot, instance, dep any) (err error) {
	if actual := reflect.TypeOf(dep); !actual.AssignableTo(slot.typ) {
		return TypeMismatchError{Expected: slot.typ, Actual: actual, Context: "dependency slot"}
	}

	defer func() {
		if r := recover(); r != nil {
			err = PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	if slot.set != nil {
		slot.set(instance, dep)
		return nil
	}

	v := reflect.ValueOf(instance)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a struct pointer", ErrFieldNotSettable, formatType(v.Type()))
	}

	field, ferr := v.Elem().FieldByIndexErr(slot.index)
	if ferr != nil {
		return fmt.Errorf("%w: %v", ErrFieldNotSettable, ferr)
	}

	if !field.CanSet() {
		return fmt.Errorf("%w: field %s is not exported", ErrFieldNotSettable, slot.name)
	}

	field.Set(reflect.ValueOf(dep))
	return nil
}

func (c *Context) postConstruct(d *Descriptor, instance any) (err error) {
	if d.hook == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = PostConstructError{
				Bean:  d.name,
				Hook:  d.hookName,
				Cause: PanicError{Value: r, Stack: debug.Stack()},
			}
		}
	}()

	if err := d.hook(instance); err != nil {
		return PostConstructError{Bean: d.name, Hook: d.hookName, Cause: err}
	}

	c.logger.Debug("bean post-constructed", slog.String("bean", d.name), slog.String("hook", d.hookName))

	return nil
}

// isNil reports whether v is nil or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
