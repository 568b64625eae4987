package beans

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Catalog collects definitions registered at init time so they can later be
// discovered by package path.
//
//	func init() {
//	    beans.Register(beans.Bean[*UserService]())
//	}
//
//	ctx, err := beans.New(beans.Scan("example.com/app/services"))
type Catalog struct {
	mu   sync.RWMutex
	defs []Definition
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Register appends defs to the catalog.
func (c *Catalog) Register(defs ...Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.defs = append(c.defs, defs...)
}

// Definitions returns every registered definition in registration order.
func (c *Catalog) Definitions() ([]Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, d := range c.defs {
		if d.typ == nil {
			return nil, ValidationError{Cause: ErrTypeNil}
		}
	}

	return slices.Clone(c.defs), nil
}

// Scan returns a Source yielding the registered definitions whose bean type
// is declared in pkgPrefix or one of its sub-packages. The catalog is read
// when the Source is used, not when Scan is called.
func (c *Catalog) Scan(pkgPrefix string) Source {
	return SourceFunc(func() ([]Definition, error) {
		all, err := c.Definitions()
		if err != nil {
			return nil, err
		}

		var out []Definition
		for _, d := range all {
			if inPackage(packagePath(d), pkgPrefix) {
				out = append(out, d)
			}
		}
		return out, nil
	})
}

// packagePath returns the import path declaring the bean type. Pointer
// types report the path of their element.
func packagePath(d Definition) string {
	t := d.typ
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath()
}

func inPackage(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" || path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

var defaultCatalog = NewCatalog()

// DefaultCatalog returns the package-level Catalog used by Register and Scan.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Register adds defs to the default catalog. It is meant to be called from
// init functions.
func Register(defs ...Definition) {
	defaultCatalog.Register(defs...)
}

// Scan is DefaultCatalog().Scan(pkgPrefix).
func Scan(pkgPrefix string) Source {
	return defaultCatalog.Scan(pkgPrefix)
}
