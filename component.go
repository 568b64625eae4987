package beans

import (
	"reflect"

	"github.com/junioryono/beans/internal/reflection"
)

// Component is a zero-size marker whose struct tag carries a bean's metadata.
// Embed it, or declare it as a blank field, in the bean struct:
//
//	type PrototypeBean struct {
//	    beans.Component `bean:"counter" scope:"prototype" postconstruct:"Init"`
//
//	    First *FirstBean `inject:""`
//	}
//
// Recognised tag keys:
//   - bean: explicit bean name
//   - scope: "singleton" or "prototype"
//   - postconstruct: comma-separated names of post-construct methods
//
// Definition options take precedence over tag values.
type Component struct{}

// PostConstructor is implemented by beans that need initialization after all
// of their dependencies have been injected. PostConstruct is invoked exactly
// once per instance. A non-nil error fails Start for singletons and the
// lookup for prototypes.
type PostConstructor interface {
	PostConstruct() error
}

var (
	componentType       = reflect.TypeFor[Component]()
	postConstructorType = reflect.TypeFor[PostConstructor]()
	errorType           = reflect.TypeFor[error]()
)

// analyzer caches the tag metadata of every bean type seen by Extract.
var analyzer = reflection.New(componentType, postConstructorType)
