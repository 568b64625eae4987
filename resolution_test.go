package beans_test

import (
	"errors"
	"testing"

	"github.com/junioryono/beans"
	"github.com/junioryono/beans/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingConstructed struct{ ready bool }

type recordingBean struct {
	First *testutil.FirstBean `inject:""`
	order []string
}

func (r *recordingBean) PostConstruct() error {
	r.order = append(r.order, "post-construct")
	return nil
}

func TestResolution_Instantiation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		def   beans.Definition
		cause error
	}{
		{
			name: "constructor error",
			def: beans.Bean[*failingConstructed](beans.Constructor(func() (*failingConstructed, error) {
				return nil, testutil.ErrConstructor
			})),
			cause: testutil.ErrConstructor,
		},
		{
			name: "nil instance",
			def: beans.Bean[*failingConstructed](beans.Constructor(func() (*failingConstructed, error) {
				return nil, nil
			})),
			cause: beans.ErrNilInstance,
		},
		{
			name:  "no construction path",
			def:   beans.Bean[testutil.Greeter](),
			cause: beans.ErrNoConstructor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := testutil.NewContextBuilder(t).WithBeans(tt.def).MustBuild()

			err := ctx.Start()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.cause)

			inst := testutil.AssertErrorType[beans.BeanInstantiationError](t, err)
			assert.Equal(t, tt.def.Type(), inst.Type)
			assert.False(t, ctx.IsRunning())
		})
	}

	t.Run("constructor panic", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*failingConstructed](beans.Constructor(func() (*failingConstructed, error) {
				panic(testutil.ErrTest)
			})),
		).MustBuild()

		err := ctx.Start()
		var p beans.PanicError
		require.ErrorAs(t, err, &p)
		assert.NotEmpty(t, p.Stack)
		assert.ErrorIs(t, err, testutil.ErrTest)
		assert.False(t, ctx.IsRunning())
	})

	t.Run("constructor result is used", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*failingConstructed](beans.Constructor(func() (*failingConstructed, error) {
				return &failingConstructed{ready: true}, nil
			})),
		).MustStart()

		bean := testutil.AssertBeanResolvable[*failingConstructed](t, ctx)
		assert.True(t, bean.ready)
	})

	t.Run("interface bean with constructor", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[testutil.Greeter](beans.Constructor(func() (testutil.Greeter, error) {
				return &testutil.EnglishGreeter{}, nil
			})),
			beans.Bean[*testutil.GreeterClient](),
		).MustStart()

		client := testutil.AssertBeanResolvable[*testutil.GreeterClient](t, ctx)
		assert.Equal(t, "Hello, Go", client.Greeter.Greet("Go"))
	})
}

func TestResolution_Injection(t *testing.T) {
	t.Parallel()

	t.Run("unexported field", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*testutil.FirstBean](),
			beans.Bean[*testutil.HiddenDepBean](),
		).MustBuild()

		err := ctx.Start()
		require.Error(t, err)
		assert.ErrorIs(t, err, beans.ErrFieldNotSettable)

		inj := testutil.AssertErrorType[beans.BeanInjectionError](t, err)
		assert.Equal(t, "hiddenDepBean", inj.Bean)
		assert.Equal(t, "first", inj.Slot)
		assert.False(t, ctx.IsRunning())
	})

	t.Run("explicit target of the wrong type", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*testutil.FirstBean](beans.Name("counter")),
			beans.Bean[*testutil.NamedClient](),
		).MustBuild()

		err := ctx.Start()
		inj := testutil.AssertErrorType[beans.BeanInjectionError](t, err)
		assert.Equal(t, "Counter", inj.Slot)

		var mismatch beans.TypeMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "dependency slot", mismatch.Context)
	})

	t.Run("setter", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*testutil.FirstBean](),
			beans.Bean[*testutil.SetterBean](beans.Inject((*testutil.SetterBean).SetFirst)),
		).MustStart()

		first := testutil.AssertBeanResolvable[*testutil.FirstBean](t, ctx)
		setter := testutil.AssertBeanResolvable[*testutil.SetterBean](t, ctx)
		assert.Same(t, first, setter.First())
	})

	t.Run("named setter", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*testutil.FirstBean](beans.Name("primary")),
			beans.Bean[*testutil.SetterBean](beans.InjectNamed("primary", (*testutil.SetterBean).SetFirst)),
		).MustStart()

		setter := testutil.AssertBeanResolvable[*testutil.SetterBean](t, ctx)
		require.NotNil(t, setter.First())
	})

	t.Run("setter panic", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*testutil.FirstBean](),
			beans.Bean[*testutil.SetterBean](beans.Inject(func(*testutil.SetterBean, *testutil.FirstBean) {
				panic("setter panic")
			})),
		).MustBuild()

		err := ctx.Start()
		inj := testutil.AssertErrorType[beans.BeanInjectionError](t, err)
		assert.Equal(t, "setter#1", inj.Slot)

		var p beans.PanicError
		require.ErrorAs(t, err, &p)
		assert.Equal(t, "setter panic", p.Value)
	})

	t.Run("dependencies are injected before the hook", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*testutil.FirstBean](),
			beans.Bean[*recordingBean](beans.AsPrototype()),
		).MustStart()

		bean := testutil.AssertBeanResolvable[*recordingBean](t, ctx)
		require.NotNil(t, bean.First)
		assert.Equal(t, []string{"post-construct"}, bean.order)
	})
}

func TestResolution_PostConstruct(t *testing.T) {
	t.Parallel()

	t.Run("singleton hook error fails start", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(beans.Bean[*testutil.FailingHookBean]()).MustBuild()

		err := ctx.Start()
		require.Error(t, err)
		assert.ErrorIs(t, err, testutil.ErrHook)

		hook := testutil.AssertErrorType[beans.PostConstructError](t, err)
		assert.Equal(t, "failingHookBean", hook.Bean)
		assert.Equal(t, "PostConstruct", hook.Hook)
		assert.False(t, ctx.IsRunning())
	})

	t.Run("prototype hook error fails lookup", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*testutil.FailingHookBean](beans.AsPrototype()),
		).MustStart()

		_, err := ctx.GetBean("failingHookBean")
		assert.ErrorIs(t, err, testutil.ErrHook)
		assert.True(t, ctx.IsRunning())
	})

	t.Run("hook panic", func(t *testing.T) {
		t.Parallel()

		ctx := testutil.NewContextBuilder(t).WithBeans(beans.Bean[*testutil.PanickingHookBean]()).MustBuild()

		err := ctx.Start()
		hook := testutil.AssertErrorType[beans.PostConstructError](t, err)
		assert.Equal(t, "PostConstruct", hook.Hook)

		var p beans.PanicError
		require.ErrorAs(t, err, &p)
		assert.Equal(t, "post-construct panic", p.Value)
	})

	t.Run("option hook", func(t *testing.T) {
		t.Parallel()

		calls := 0
		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*failingConstructed](beans.PostConstruct(func(b *failingConstructed) error {
				calls++
				b.ready = true
				return nil
			})),
		).MustStart()

		bean := testutil.AssertBeanResolvable[*failingConstructed](t, ctx)
		assert.True(t, bean.ready)
		assert.Equal(t, 1, calls)
	})

	t.Run("failed start keeps no instances", func(t *testing.T) {
		t.Parallel()

		fail := true
		ctx := testutil.NewContextBuilder(t).WithBeans(
			beans.Bean[*testutil.FirstBean](),
			beans.Bean[*failingConstructed](beans.PostConstruct(func(*failingConstructed) error {
				if fail {
					return errors.New("not yet")
				}
				return nil
			})),
		).MustBuild()

		require.Error(t, ctx.Start())
		assert.False(t, ctx.IsRunning())

		fail = false
		require.NoError(t, ctx.Start())

		first := testutil.AssertBeanResolvable[*testutil.FirstBean](t, ctx)
		assert.Equal(t, 1, first.Hooks, "the retry builds fresh singletons")
	})
}
