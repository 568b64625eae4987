// Package beans provides a minimal inversion-of-control container for Go
// applications. Bean types declare their scope, name, dependencies and
// post-construct hook; a Context builds the instances, wires them, checks
// that the dependency graph is acyclic and runs the hooks.
//
// # Overview
//
// The container supports:
//   - Two scopes: Singleton and Prototype
//   - Field injection through `inject` struct tags
//   - Setter injection through the Inject option
//   - One post-construct hook per bean
//   - Cycle detection before any instance is created
//   - Discovery through lists, modules and an init-time catalog
//   - Export of started beans into a go.uber.org/dig container
//
// # Basic Usage
//
// Describe the beans, create a Context, start it and look beans up:
//
//	ctx, err := beans.New(beans.List(
//	    beans.Bean[*Database](),
//	    beans.Bean[*UserService](),
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ctx.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
//	users, err := beans.GetBeanAs[*UserService](ctx)
//
// # Declaring Beans
//
// A bean type is a struct used through a pointer. An optional Component
// marker field carries overrides, and `inject` tags mark dependencies:
//
//	type UserService struct {
//	    beans.Component `bean:"users" scope:"prototype" postconstruct:"Init"`
//
//	    DB    *Database `inject:""`
//	    Cache Cache     `inject:"redisCache"`
//	}
//
//	func (s *UserService) Init() error { ... }
//
// Without a bean tag the name is the type name with its first letter
// lower-cased: *UserService is "userService". Without a scope tag the bean
// is a Singleton. A PostConstruct() error method is a post-construct hook
// too; declaring more than one hook is an error.
//
// A dependency slot resolves by its declared type: the bean registered with
// that type, else the bean named after the type. Interface slots therefore
// find the implementation registered under the interface's default name.
// An `inject:"name"` tag targets a bean by name.
//
// # Definition Options
//
// Options override the declared metadata and add what tags cannot express:
//
//	beans.Bean[*PrototypeBean](
//	    beans.Name("counter"),
//	    beans.AsPrototype(),
//	    beans.PostConstruct(func(b *PrototypeBean) error { ... }),
//	)
//
//	beans.Bean[*Client](
//	    beans.Constructor(func() (*Client, error) { return NewClient() }),
//	    beans.Inject(func(c *Client, db *Database) { c.SetDB(db) }),
//	)
//
// # Scopes
//
//   - Singleton: created once by Start; every lookup returns that instance
//   - Prototype: created, injected and post-constructed on every lookup and
//     for every slot that depends on it
//
// # Startup
//
// Start validates the graph first. A missing dependency or a cycle fails
// Start before any instance exists. Singletons are then instantiated, then
// injected, then post-constructed, all in registration order. Lookups fail
// with ContextNotStartedError until Start has succeeded.
//
// # Discovery
//
// Sources hand definitions to New. Besides List and Types, modules group
// related beans, and the Catalog collects beans registered from init
// functions so they can be scanned by package:
//
//	func init() {
//	    beans.Register(beans.Bean[*UserService]())
//	}
//
//	ctx, err := beans.New(beans.Module("app",
//	    beans.Scan("example.com/app/services"),
//	    beans.Bean[*Database](),
//	))
//
// # Thread Safety
//
// Start is serialized. After Start returns, all lookups are safe for
// concurrent use.
//
// # Error Handling
//
// beans provides detailed error types for different failure scenarios:
//   - CycleError: the dependency graph is cyclic
//   - NoSuchBeanDefinitionError: no bean has the requested name
//   - ContextNotStartedError: lookup before Start
//   - MultiplePostConstructError: more than one post-construct hook
//   - BeanInstantiationError, BeanInjectionError, PostConstructError: a
//     bean failed while being built
package beans
