package reflection

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Struct tag keys read by the Analyzer.
const (
	TagBean          = "bean"
	TagScope         = "scope"
	TagPostConstruct = "postconstruct"
	TagInject        = "inject"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Analyzer performs reflection-based analysis of bean types.
// It caches analysis results for performance.
type Analyzer struct {
	marker reflect.Type
	hook   reflect.Type

	mu    sync.RWMutex
	cache map[reflect.Type]*TypeInfo
}

// TypeInfo contains the metadata a bean type declares about itself.
// It is shared between callers and must not be modified.
type TypeInfo struct {
	Type reflect.Type

	// From the marker field tag.
	Name  string
	Scope string

	// Fields are the `inject` tagged fields in declaration order.
	Fields []FieldInfo

	// Hooks are the post-construct methods: those named in the marker tag,
	// then the hook interface method when the type implements it.
	Hooks []MethodInfo
}

// FieldInfo describes an injectable struct field.
type FieldInfo struct {
	Name     string
	Type     reflect.Type
	Target   string // From inject:"name" tag
	Index    []int
	Exported bool
}

// MethodInfo describes a post-construct method.
type MethodInfo struct {
	Name         string
	ReturnsError bool
}

// New creates a new Analyzer. marker is the type of the metadata field;
// hook is a single-method interface whose method is always a post-construct
// hook of the types implementing it.
func New(marker, hook reflect.Type) *Analyzer {
	return &Analyzer{
		marker: marker,
		hook:   hook,
		cache:  make(map[reflect.Type]*TypeInfo),
	}
}

// Analyze extracts the metadata of t. Types other than pointer-to-struct
// carry no tags; only their hook interface is inspected.
func (a *Analyzer) Analyze(t reflect.Type) (*TypeInfo, error) {
	if t == nil {
		return nil, fmt.Errorf("type cannot be nil")
	}

	// Check cache first
	a.mu.RLock()
	if cached, ok := a.cache[t]; ok {
		a.mu.RUnlock()
		return cached, nil
	}
	a.mu.RUnlock()

	info := &TypeInfo{Type: t}

	var hookNames []string
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct {
		names, err := a.analyzeFields(info, t.Elem())
		if err != nil {
			return nil, err
		}
		hookNames = names
	}

	if err := a.analyzeHooks(info, hookNames); err != nil {
		return nil, err
	}

	return a.cacheAndReturn(t, info), nil
}

// analyzeFields reads the marker tag and the injectable fields. It returns
// the hook method names listed in the marker tag.
func (a *Analyzer) analyzeFields(info *TypeInfo, structType reflect.Type) ([]string, error) {
	var hookNames []string
	markerSeen := false

	for _, field := range reflect.VisibleFields(structType) {
		if field.Type == a.marker {
			if markerSeen {
				return nil, fmt.Errorf("field %s: more than one %s marker", field.Name, a.marker.Name())
			}
			markerSeen = true

			info.Name = strings.TrimSpace(field.Tag.Get(TagBean))
			info.Scope = strings.TrimSpace(field.Tag.Get(TagScope))
			hookNames = parseList(field.Tag.Get(TagPostConstruct))
			continue
		}

		target, ok := field.Tag.Lookup(TagInject)
		if !ok {
			continue
		}

		switch field.Type.Kind() {
		case reflect.Pointer, reflect.Interface:
		default:
			return nil, fmt.Errorf("field %s: dependency slot of type %v must be a pointer or an interface",
				field.Name, field.Type)
		}

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name,
			Type:     field.Type,
			Target:   strings.TrimSpace(target),
			Index:    slices.Clone(field.Index),
			Exported: field.IsExported(),
		})
	}

	return hookNames, nil
}

// analyzeHooks validates the named post-construct methods and adds the hook
// interface method when t implements it.
func (a *Analyzer) analyzeHooks(info *TypeInfo, names []string) error {
	if a.hook != nil && a.hook.NumMethod() == 1 && info.Type.Implements(a.hook) {
		if name := a.hook.Method(0).Name; !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	// Methods of concrete types carry the receiver as first parameter.
	receiver := 1
	if info.Type.Kind() == reflect.Interface {
		receiver = 0
	}

	for _, name := range names {
		m, ok := info.Type.MethodByName(name)
		if !ok {
			return fmt.Errorf("post-construct method %s not found", name)
		}

		mt := m.Type
		if mt.NumIn() != receiver || mt.NumOut() > 1 || (mt.NumOut() == 1 && mt.Out(0) != errType) {
			return fmt.Errorf("post-construct method %s must have signature func() or func() error", name)
		}

		info.Hooks = append(info.Hooks, MethodInfo{
			Name:         name,
			ReturnsError: mt.NumOut() == 1,
		})
	}

	return nil
}

func (a *Analyzer) cacheAndReturn(t reflect.Type, info *TypeInfo) *TypeInfo {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Another goroutine may have analyzed the same type.
	if cached, ok := a.cache[t]; ok {
		return cached
	}

	a.cache[t] = info
	return info
}

// Clear removes all cached results.
func (a *Analyzer) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cache = make(map[reflect.Type]*TypeInfo)
}

// Len returns the number of cached results.
func (a *Analyzer) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.cache)
}

// parseList splits a comma-separated tag value, dropping blanks and
// duplicates.
func parseList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" && !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}
