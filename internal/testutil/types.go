package testutil

import (
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/junioryono/beans"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
	ErrHook        = errors.New("post-construct error")
)

// FirstBean is a singleton without dependencies. Its post-construct hook
// assigns an ID and counts its own calls.
type FirstBean struct {
	ID    string
	Hooks int
}

func (b *FirstBean) PostConstruct() error {
	b.Hooks++
	b.ID = uuid.NewString()
	return nil
}

// OtherBean depends on FirstBean through a field slot.
type OtherBean struct {
	beans.Component

	First *FirstBean `inject:""`

	// FirstSeen records whether the dependency was present when the hook ran.
	FirstSeen bool
}

func (b *OtherBean) PostConstruct() error {
	b.FirstSeen = b.First != nil
	return nil
}

var prototypeCount atomic.Int64

// PrototypeCount returns how many PrototypeBean hooks have run since the
// last ResetPrototypeCount.
func PrototypeCount() int64 {
	return prototypeCount.Load()
}

// ResetPrototypeCount zeroes the PrototypeBean counter.
func ResetPrototypeCount() {
	prototypeCount.Store(0)
}

// PrototypeBean is the prototype named "counter". Every post-construct
// increments a package counter.
type PrototypeBean struct {
	beans.Component `bean:"counter" scope:"prototype" postconstruct:"Init"`

	ID string
}

func (b *PrototypeBean) Init() {
	b.ID = uuid.NewString()
	prototypeCount.Add(1)
}

// FirstLoopBean and SecondLoopBean depend on each other.
type FirstLoopBean struct {
	beans.Component `bean:"loop1"`

	Second *SecondLoopBean `inject:""`
}

type SecondLoopBean struct {
	beans.Component `bean:"loop2" scope:"prototype"`

	First *FirstLoopBean `inject:""`
}

// SelfLoopBean depends on itself.
type SelfLoopBean struct {
	Self *SelfLoopBean `inject:""`
}

// Greeter is resolved through an interface slot. The implementation is
// registered under the name "greeter".
type Greeter interface {
	Greet(name string) string
}

type EnglishGreeter struct {
	beans.Component `bean:"greeter"`
}

func (g *EnglishGreeter) Greet(name string) string {
	return "Hello, " + name
}

// GreeterClient depends on the Greeter interface.
type GreeterClient struct {
	Greeter Greeter `inject:""`
}

// CounterClient is a singleton holding a prototype dependency.
type CounterClient struct {
	Counter *PrototypeBean `inject:""`
}

// NamedClient targets a bean by explicit name.
type NamedClient struct {
	Counter *PrototypeBean `inject:"counter"`
}

// UnregisteredBean is never part of a test context.
type UnregisteredBean struct{}

// MissingDepBean depends on a bean that is not defined.
type MissingDepBean struct {
	Missing *UnregisteredBean `inject:""`
}

// HiddenDepBean declares an unexported dependency field.
type HiddenDepBean struct {
	first *FirstBean `inject:""`
}

// First returns the unexported dependency.
func (b *HiddenDepBean) First() *FirstBean {
	return b.first
}

// DoubleHookBean declares two post-construct hooks.
type DoubleHookBean struct {
	beans.Component `postconstruct:"Init"`
}

func (b *DoubleHookBean) Init()                {}
func (b *DoubleHookBean) PostConstruct() error { return nil }

// FailingHookBean fails in its post-construct hook.
type FailingHookBean struct{}

func (b *FailingHookBean) PostConstruct() error {
	return ErrHook
}

// PanickingHookBean panics in its post-construct hook.
type PanickingHookBean struct{}

func (b *PanickingHookBean) PostConstruct() error {
	panic("post-construct panic")
}

// ValueSlotBean declares a dependency slot of a non-pointer type.
type ValueSlotBean struct {
	Value FirstBean `inject:""`
}

// SetterBean receives its dependency through an Inject option.
type SetterBean struct {
	first *FirstBean
}

func (b *SetterBean) SetFirst(first *FirstBean) {
	b.first = first
}

// First returns the injected dependency.
func (b *SetterBean) First() *FirstBean {
	return b.first
}
