package beans

import (
	"fmt"
	"log/slog"
	"reflect"

	"go.uber.org/dig"
)

// Provide exports every bean of a started Context into a dig container.
// Each bean is provided twice: keyed by its type, and keyed by its bean name
// through dig.Name. Singletons resolve to the instance created by Start.
// Prototypes are built through GetBean; dig caches the first result, so a
// prototype yields one instance per dig container.
//
//	dc := dig.New()
//	if err := ctx.Provide(dc); err != nil {
//	    return err
//	}
//	err := dc.Invoke(func(o *OtherBean) { ... })
func (c *Context) Provide(dc *dig.Container) error {
	if !c.IsRunning() {
		return ContextNotStartedError{Operation: "Provide"}
	}
	if dc == nil {
		return fmt.Errorf("provide: nil dig container")
	}

	for _, d := range c.descriptors {
		ctor := c.digConstructor(d)

		if err := dc.Provide(ctor); err != nil {
			return fmt.Errorf("provide bean %s: %w", d.name, err)
		}
		if err := dc.Provide(ctor, dig.Name(d.name)); err != nil {
			return fmt.Errorf("provide bean %s by name: %w", d.name, err)
		}
	}

	c.logger.Debug("beans exported to dig", slog.Int("beans", len(c.descriptors)))

	return nil
}

// digConstructor builds a func() (T, error) for the bean, with T its
// registered type, so dig can key it by type.
func (c *Context) digConstructor(d *Descriptor) any {
	fnType := reflect.FuncOf(nil, []reflect.Type{d.typ, errorType}, false)
	name := d.name

	fn := reflect.MakeFunc(fnType, func([]reflect.Value) []reflect.Value {
		instance, err := c.GetBean(name)
		if err != nil {
			return []reflect.Value{reflect.Zero(d.typ), reflect.ValueOf(&err).Elem()}
		}
		return []reflect.Value{reflect.ValueOf(instance), reflect.Zero(errorType)}
	})

	return fn.Interface()
}
