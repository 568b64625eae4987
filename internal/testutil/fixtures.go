package testutil

import (
	"github.com/junioryono/beans"
)

// DefaultBeans returns the definitions of the basic scenario: FirstBean,
// OtherBean depending on it, and the "counter" prototype.
func DefaultBeans() []beans.Definition {
	return []beans.Definition{
		beans.Bean[*FirstBean](),
		beans.Bean[*OtherBean](),
		beans.Bean[*PrototypeBean](),
	}
}

// LoopBeans returns the definitions of two beans that depend on each other.
func LoopBeans() []beans.Definition {
	return []beans.Definition{
		beans.Bean[*FirstLoopBean](),
		beans.Bean[*SecondLoopBean](),
	}
}

// GreeterBeans returns an interface implementation and its client.
func GreeterBeans() []beans.Definition {
	return []beans.Definition{
		beans.Bean[*EnglishGreeter](),
		beans.Bean[*GreeterClient](),
	}
}

func init() {
	beans.Register(DefaultBeans()...)
}
