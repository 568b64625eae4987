package beans

import (
	"fmt"
	"reflect"
)

// GetBeanAs is a generic helper that looks a bean up by type T.
//
// T is resolved to a bean name the same way dependency slots are, so
// GetBeanAs[*FirstBean] finds the bean named "firstBean". An interface type
// finds the bean named after the interface.
func GetBeanAs[T any](c *Context) (T, error) {
	var zero T

	instance, err := c.GetBeanByType(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	return as[T](instance)
}

// GetBeanNamed is a generic helper that looks a bean up by name and checks
// that it is a T.
func GetBeanNamed[T any](c *Context, name string) (T, error) {
	var zero T

	instance, err := c.GetBean(name)
	if err != nil {
		return zero, err
	}

	return as[T](instance)
}

// MustGetBean looks a bean up by type T and panics if it cannot.
func MustGetBean[T any](c *Context) T {
	bean, err := GetBeanAs[T](c)
	if err != nil {
		panic(fmt.Sprintf("failed to get bean %s: %v", formatType(reflect.TypeFor[T]()), err))
	}
	return bean
}

func as[T any](instance any) (T, error) {
	result, ok := instance.(T)
	if !ok {
		var zero T
		return zero, TypeMismatchError{
			Expected: reflect.TypeFor[T](),
			Actual:   reflect.TypeOf(instance),
			Context:  "bean lookup",
		}
	}
	return result, nil
}
