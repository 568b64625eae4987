package beans_test

import (
	"reflect"
	"testing"

	"github.com/junioryono/beans"
	"github.com/junioryono/beans/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainValue struct{ N int }

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		d, err := beans.Extract(beans.Bean[*testutil.FirstBean]())
		require.NoError(t, err)

		assert.Equal(t, "firstBean", d.Name())
		assert.Equal(t, reflect.TypeFor[*testutil.FirstBean](), d.Type())
		assert.Equal(t, beans.Singleton, d.Scope())
		assert.True(t, d.IsSingleton())
		assert.False(t, d.IsPrototype())
		assert.Empty(t, d.Slots())
		assert.Equal(t, "PostConstruct", d.PostConstruct())
		assert.True(t, d.HasPostConstruct())
	})

	t.Run("struct types are registered as pointers", func(t *testing.T) {
		t.Parallel()

		d, err := beans.Extract(beans.Bean[testutil.FirstBean]())
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeFor[*testutil.FirstBean](), d.Type())
	})

	t.Run("component tag", func(t *testing.T) {
		t.Parallel()

		d, err := beans.Extract(beans.Bean[*testutil.PrototypeBean]())
		require.NoError(t, err)

		assert.Equal(t, "counter", d.Name())
		assert.True(t, d.IsPrototype())
		assert.Equal(t, "Init", d.PostConstruct())
	})

	t.Run("field slots", func(t *testing.T) {
		t.Parallel()

		d, err := beans.Extract(beans.Bean[*testutil.NamedClient]())
		require.NoError(t, err)

		slots := d.Slots()
		require.Len(t, slots, 1)
		assert.Equal(t, "Counter", slots[0].Name())
		assert.Equal(t, reflect.TypeFor[*testutil.PrototypeBean](), slots[0].Type())
		assert.Equal(t, "counter", slots[0].Target())
		assert.True(t, slots[0].IsField())
		assert.False(t, d.HasPostConstruct())
		assert.Equal(t, "", d.PostConstruct())
	})

	t.Run("options override tags", func(t *testing.T) {
		t.Parallel()

		d, err := beans.Extract(beans.Bean[*testutil.PrototypeBean](
			beans.Name("renamed"),
			beans.AsSingleton(),
		))
		require.NoError(t, err)

		assert.Equal(t, "renamed", d.Name())
		assert.True(t, d.IsSingleton())
	})

	t.Run("scope option", func(t *testing.T) {
		t.Parallel()

		d, err := beans.Extract(beans.Bean[*testutil.FirstBean](beans.WithScope(beans.Prototype)))
		require.NoError(t, err)
		assert.True(t, d.IsPrototype())
	})

	t.Run("setter slots follow field slots", func(t *testing.T) {
		t.Parallel()

		d, err := beans.Extract(beans.Bean[*testutil.OtherBean](
			beans.InjectNamed("counter", func(*testutil.OtherBean, *testutil.PrototypeBean) {}),
		))
		require.NoError(t, err)

		slots := d.Slots()
		require.Len(t, slots, 2)
		assert.Equal(t, "First", slots[0].Name())
		assert.Equal(t, "setter#1", slots[1].Name())
		assert.Equal(t, "counter", slots[1].Target())
		assert.False(t, slots[1].IsField())
	})

	t.Run("non struct bean", func(t *testing.T) {
		t.Parallel()

		d, err := beans.Extract(beans.Bean[testutil.Greeter]())
		require.NoError(t, err)
		assert.Equal(t, "greeter", d.Name())
		assert.Empty(t, d.Slots())
	})

	t.Run("slots are copied", func(t *testing.T) {
		t.Parallel()

		d, err := beans.Extract(beans.Bean[*testutil.OtherBean]())
		require.NoError(t, err)

		slots := d.Slots()
		slots[0] = beans.Slot{}
		assert.Equal(t, "First", d.Slots()[0].Name())
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		d, err := beans.Extract(beans.Bean[*testutil.OtherBean]())
		require.NoError(t, err)
		assert.Equal(t, "otherBean{type: *OtherBean, scope: Singleton, slots: 1}", d.String())
		assert.Equal(t, "First *FirstBean", d.Slots()[0].String())
	})
}

func TestExtract_Errors(t *testing.T) {
	t.Parallel()

	t.Run("multiple post-construct hooks", func(t *testing.T) {
		t.Parallel()

		_, err := beans.Extract(beans.Bean[*testutil.DoubleHookBean]())
		require.Error(t, err)
		assert.ErrorIs(t, err, beans.ErrMultiplePostHooks)

		multi := testutil.AssertErrorType[beans.MultiplePostConstructError](t, err)
		assert.Equal(t, "*DoubleHookBean", multi.TypeName)
		assert.Equal(t, []string{"Init", "PostConstruct"}, multi.Hooks)
	})

	t.Run("option hook adds to declared hooks", func(t *testing.T) {
		t.Parallel()

		_, err := beans.Extract(beans.Bean[*testutil.FirstBean](
			beans.PostConstruct(func(*testutil.FirstBean) error { return nil }),
		))

		multi := testutil.AssertErrorType[beans.MultiplePostConstructError](t, err)
		assert.Equal(t, []string{"PostConstruct", "func"}, multi.Hooks)
	})

	tests := []struct {
		name   string
		def    beans.Definition
		target error
	}{
		{"nil type", beans.BeanOf(nil), beans.ErrTypeNil},
		{"unnamed type", beans.BeanOf(reflect.TypeFor[*struct{ N int }]()), beans.ErrUnnamedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := beans.Extract(tt.def)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			testutil.AssertErrorType[beans.ValidationError](t, err)
		})
	}

	invalid := []struct {
		name string
		def  beans.Definition
	}{
		{"value slot", beans.Bean[*testutil.ValueSlotBean]()},
		{"empty name option", beans.Bean[*testutil.FirstBean](beans.Name(""))},
		{"invalid scope option", beans.Bean[*testutil.FirstBean](beans.WithScope(beans.Scope(7)))},
		{"nil hook option", beans.Bean[*plainValue](beans.PostConstruct[*plainValue](nil))},
		{"nil setter option", beans.Bean[*plainValue](beans.Inject[*plainValue, *testutil.FirstBean](nil))},
		{"nil constructor option", beans.Bean[*plainValue](beans.Constructor[*plainValue](nil))},
		{"invalid scope tag", beans.Bean[*badScope]()},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := beans.Extract(tt.def)
			require.Error(t, err)
			testutil.AssertErrorType[beans.ValidationError](t, err)
		})
	}

	t.Run("option written for another type", func(t *testing.T) {
		t.Parallel()

		_, err := beans.Extract(beans.Bean[*plainValue](
			beans.Constructor(func() (*testutil.FirstBean, error) { return &testutil.FirstBean{}, nil }),
		))

		mismatch := testutil.AssertErrorType[beans.TypeMismatchError](t, err)
		assert.Equal(t, "definition option", mismatch.Context)
		assert.Equal(t, reflect.TypeFor[*plainValue](), mismatch.Expected)
		assert.Equal(t, reflect.TypeFor[*testutil.FirstBean](), mismatch.Actual)
	})
}

type badScope struct {
	beans.Component `scope:"request"`
}

func TestDefaultName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeFor[testutil.FirstBean](), "firstBean"},
		{reflect.TypeFor[*testutil.FirstBean](), "firstBean"},
		{reflect.TypeFor[**testutil.FirstBean](), "firstBean"},
		{reflect.TypeFor[testutil.Greeter](), "greeter"},
		{reflect.TypeFor[plainValue](), "plainValue"},
		{reflect.TypeFor[*struct{}](), ""},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, beans.DefaultName(tt.typ), "%v", tt.typ)
	}

	assert.Equal(t, "prototypeBean", beans.NameOf[*testutil.PrototypeBean]())
}

func TestDefinition(t *testing.T) {
	t.Parallel()

	d := beans.Bean[testutil.FirstBean](beans.AsPrototype())
	assert.Equal(t, reflect.TypeFor[*testutil.FirstBean](), d.Type())
	assert.Equal(t, "Bean(*FirstBean)", d.String())

	defs, err := d.Definitions()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, d.Type(), defs[0].Type())
}
