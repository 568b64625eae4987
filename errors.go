package beans

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/junioryono/beans/internal/graph"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are base errors wrapped by the typed errors below. Match them with
// errors.Is; match the typed errors with errors.As.

var (
	// Lifecycle errors.
	ErrContextNotStarted = errors.New("application context is not started")

	// Lookup errors.
	ErrBeanNotFound = errors.New("no such bean definition")

	// Definition errors.
	ErrSourceNil   = errors.New("definition source cannot be nil")
	ErrTypeNil     = errors.New("bean type cannot be nil")
	ErrUnnamedType = errors.New("type has no name; set a bean name explicitly")

	// Wiring errors.
	ErrNoConstructor     = errors.New("no accessible no-argument construction path")
	ErrNilInstance       = errors.New("construction produced a nil instance")
	ErrFieldNotSettable  = errors.New("dependency field cannot be set")
	ErrMultiplePostHooks = errors.New("bean declares more than one post-construct hook")
)

var (
	_ error = ContextNotStartedError{}
	_ error = NoSuchBeanDefinitionError{}
	_ error = MissingDependencyError{}
	_ error = MultiplePostConstructError{}
	_ error = BeanInstantiationError{}
	_ error = BeanInjectionError{}
	_ error = PostConstructError{}
	_ error = DuplicateBeanError{}
	_ error = TypeMismatchError{}
	_ error = ValidationError{}
	_ error = ModuleError{}
	_ error = ScopeError{}
	_ error = PanicError{}
	_ error = CycleError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// CycleError reports a cycle in the dependency graph. Node names a bean on
// the cycle; Path is the traversal chain that closed it.
type CycleError = graph.CycleError

// ContextNotStartedError indicates an operation that requires a started Context.
type ContextNotStartedError struct {
	Operation string
}

func (e ContextNotStartedError) Error() string {
	if e.Operation == "" {
		return ErrContextNotStarted.Error()
	}
	return fmt.Sprintf("%s: %v", e.Operation, ErrContextNotStarted)
}

func (e ContextNotStartedError) Unwrap() error {
	return ErrContextNotStarted
}

// NoSuchBeanDefinitionError indicates an unknown bean name.
type NoSuchBeanDefinitionError struct {
	Name string
}

func (e NoSuchBeanDefinitionError) Error() string {
	return fmt.Sprintf("no such bean definition: %s", e.Name)
}

func (e NoSuchBeanDefinitionError) Unwrap() error {
	return ErrBeanNotFound
}

// MissingDependencyError indicates a dependency slot whose target bean is not
// defined. It is reported by Start before any instance is created.
type MissingDependencyError struct {
	Bean       string
	Dependency string
}

func (e MissingDependencyError) Error() string {
	return fmt.Sprintf("bean %q depends on %q: %v", e.Bean, e.Dependency,
		NoSuchBeanDefinitionError{Name: e.Dependency})
}

func (e MissingDependencyError) Unwrap() error {
	return NoSuchBeanDefinitionError{Name: e.Dependency}
}

// MultiplePostConstructError indicates a type declaring more than one
// post-construct hook. It is raised while the descriptor is extracted.
type MultiplePostConstructError struct {
	TypeName string
	Hooks    []string
}

func (e MultiplePostConstructError) Error() string {
	return fmt.Sprintf("%s declares %d post-construct hooks [%s]; at most one is allowed",
		e.TypeName, len(e.Hooks), strings.Join(e.Hooks, ", "))
}

func (e MultiplePostConstructError) Unwrap() error {
	return ErrMultiplePostHooks
}

// BeanInstantiationError wraps a failure of a bean's construction path.
type BeanInstantiationError struct {
	Bean  string
	Type  reflect.Type
	Cause error
}

func (e BeanInstantiationError) Error() string {
	return fmt.Sprintf("failed to instantiate bean %q (%s): %v", e.Bean, formatType(e.Type), e.Cause)
}

func (e BeanInstantiationError) Unwrap() error {
	return e.Cause
}

// BeanInjectionError wraps a failure to assign a dependency slot.
type BeanInjectionError struct {
	Bean  string
	Slot  string
	Cause error
}

func (e BeanInjectionError) Error() string {
	return fmt.Sprintf("failed to inject %s into bean %q: %v", e.Slot, e.Bean, e.Cause)
}

func (e BeanInjectionError) Unwrap() error {
	return e.Cause
}

// PostConstructError wraps a failure of a bean's post-construct hook.
type PostConstructError struct {
	Bean  string
	Hook  string
	Cause error
}

func (e PostConstructError) Error() string {
	return fmt.Sprintf("post-construct %s of bean %q failed: %v", e.Hook, e.Bean, e.Cause)
}

func (e PostConstructError) Unwrap() error {
	return e.Cause
}

// DuplicateBeanError indicates two definitions sharing a bean name or type.
type DuplicateBeanError struct {
	Name string
	Type reflect.Type
}

func (e DuplicateBeanError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("bean %q already defined", e.Name)
	}
	return fmt.Sprintf("bean type %s already defined", formatType(e.Type))
}

// TypeMismatchError indicates a value that does not satisfy a requested type.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
	Context  string // "bean lookup", "dependency slot", "definition option", etc.
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Context, formatType(e.Expected), formatType(e.Actual))
}

// ValidationError indicates a malformed definition.
type ValidationError struct {
	Type  reflect.Type
	Cause error
}

func (e ValidationError) Error() string {
	if e.Type != nil {
		return fmt.Sprintf("%s: %v", formatType(e.Type), e.Cause)
	}
	return e.Cause.Error()
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

// ModuleError wraps errors from a named module source.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// ScopeError indicates an invalid scope value.
type ScopeError struct {
	Value any
}

func (e ScopeError) Error() string {
	return fmt.Sprintf("invalid bean scope: %v", e.Value)
}

// PanicError captures a panic raised by user code (constructor, setter or
// post-construct hook) together with its stack trace.
type PanicError struct {
	Value any
	Stack []byte
}

func (e PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// IsNotFound reports whether err is caused by an unknown bean name.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBeanNotFound)
}

// IsNotStarted reports whether err is caused by using a Context before Start.
func IsNotStarted(err error) bool {
	return errors.Is(err, ErrContextNotStarted)
}

// IsCycle reports whether err is caused by a dependency cycle.
func IsCycle(err error) bool {
	var cycle *CycleError
	return errors.As(err, &cycle)
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}
