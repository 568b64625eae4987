package beans

import (
	"reflect"
	"slices"
)

// Source supplies the bean definitions of a Context: an explicit list, a list
// of reflected types, a named module grouping other sources, or a scan over
// the registration Catalog.
type Source interface {
	Definitions() ([]Definition, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() ([]Definition, error)

// Definitions calls f.
func (f SourceFunc) Definitions() ([]Definition, error) {
	return f()
}

// Definitions makes a single Definition usable as a Source.
func (d Definition) Definitions() ([]Definition, error) {
	return []Definition{d}, nil
}

type listSource []Definition

func (l listSource) Definitions() ([]Definition, error) {
	return slices.Clone(l), nil
}

// List returns a Source yielding defs in the given order.
//
//	ctx, err := beans.New(beans.List(
//	    beans.Bean[*FirstBean](),
//	    beans.Bean[*OtherBean](),
//	))
func List(defs ...Definition) Source {
	return listSource(slices.Clone(defs))
}

// Types returns a Source yielding one definition per type, with the metadata
// each type declares for itself.
func Types(ts ...reflect.Type) Source {
	return SourceFunc(func() ([]Definition, error) {
		defs := make([]Definition, 0, len(ts))
		for _, t := range ts {
			if t == nil {
				return nil, ValidationError{Cause: ErrTypeNil}
			}
			defs = append(defs, BeanOf(t))
		}
		return defs, nil
	})
}

// Module groups sources under a name. Parts are flattened in order and nil
// parts are skipped. Errors from a part are wrapped in ModuleError.
//
// Example:
//
//	var StorageModule = beans.Module("storage",
//	    beans.Bean[*Database](),
//	    beans.Bean[*UserRepository](),
//	)
//
//	var AppModule = beans.Module("app",
//	    StorageModule,
//	    beans.Bean[*UserService](beans.AsPrototype()),
//	)
func Module(name string, parts ...Source) Source {
	return SourceFunc(func() ([]Definition, error) {
		var defs []Definition
		for _, part := range parts {
			if part == nil {
				continue
			}

			got, err := part.Definitions()
			if err != nil {
				return nil, ModuleError{Module: name, Cause: err}
			}
			defs = append(defs, got...)
		}
		return defs, nil
	})
}
