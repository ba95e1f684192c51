package rulemap

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/brunokim/polygrammar/ir"
)

// visitorMethodPrefix is the Go-exported spelling of the spec's
// "visit_<name-with-hyphens-to-underscores>" convention: Go method names
// must start with an uppercase letter to be reflectable across package
// boundaries, so "visit_" becomes "Visit_", and hyphens in rule names
// still become underscores.
const visitorMethodPrefix = "Visit_"

func visitorMethodName(ruleName string) string {
	return visitorMethodPrefix + strings.ReplaceAll(ruleName, "-", "_")
}

// bindVisitor matches visitor's Visit_<rule> methods against rt.Rules and
// populates rt.Methods. A matched method may declare any parameter list,
// variadic (func(args ...any) any) or fixed and typed (e.g. func(name
// string, body any) any): it is invoked by reflection with one argument per
// result value the rule's body accumulated, so its parameters must accept
// that many values of those types (spec §9 "Visitor polymorphism").
func bindVisitor(rt *Runtime, visitor any, opts Options) error {
	rt.Methods = ir.MethodMap{}
	if visitor == nil {
		return nil
	}

	rv := reflect.ValueOf(visitor)
	bound := map[string]bool{}

	for name := range rt.Rules {
		methodName := visitorMethodName(name)
		m := rv.MethodByName(methodName)
		if !m.IsValid() {
			continue
		}
		rt.Methods[name] = wrapVisitorMethod(m)
		bound[methodName] = true
	}

	var unused []string
	rvType := rv.Type()
	for i := 0; i < rvType.NumMethod(); i++ {
		name := rvType.Method(i).Name
		if !strings.HasPrefix(name, visitorMethodPrefix) || bound[name] {
			continue
		}
		unused = append(unused, name)
	}
	if len(unused) == 0 {
		return nil
	}

	switch opts.OnUnusedVisitorMethods {
	case OnUnusedIgnore:
		return nil
	case OnUnusedWarn:
		for _, name := range unused {
			rt.Warnings = append(rt.Warnings, fmt.Sprintf("visitor method %q does not match any rule", name))
		}
		return nil
	default:
		return fmt.Errorf("unused visitor method(s): %v", unused)
	}
}

func wrapVisitorMethod(m reflect.Value) ir.VisitorFunc {
	return func(args ...any) any {
		in := make([]reflect.Value, len(args))
		for i, a := range args {
			if a == nil {
				in[i] = reflect.Zero(m.Type().In(m.Type().NumIn() - 1).Elem())
			} else {
				in[i] = reflect.ValueOf(a)
			}
		}
		out := m.Call(in)
		if len(out) == 0 {
			return nil
		}
		return out[0].Interface()
	}
}
