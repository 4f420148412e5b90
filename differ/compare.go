package differ

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/erraggy/reachmeta/internal/maputil"
	"github.com/erraggy/reachmeta/metadata"
)

func sortChanges(changes []Change) {
	slices.SortStableFunc(changes, func(a, b Change) int {
		return cmp.Compare(a.Path, b.Path)
	})
}

// diffKeyed reports removed and added keys between two keyed sets.
func diffKeyed[T any](source, target map[string]T, removed, added func(key string, v T)) {
	for _, key := range maputil.SortedKeys(source) {
		if _, ok := target[key]; !ok {
			removed(key, source[key])
		}
	}
	for _, key := range maputil.SortedKeys(target) {
		if _, ok := source[key]; !ok {
			added(key, target[key])
		}
	}
}

func diffClasses(source, target metadata.ClassConfig) []Change {
	var changes []Change
	src := maputil.KeySet(source.Classes(), metadata.ClassUsage.Key)
	dst := maputil.KeySet(target.Classes(), metadata.ClassUsage.Key)

	diffKeyed(src, dst,
		func(name string, c metadata.ClassUsage) {
			changes = append(changes, Change{
				Path: name, Type: ChangeTypeRemoved, Category: CategoryClass, Severity: SeverityError,
				OldValue: c, Message: fmt.Sprintf("class %s removed", name),
			})
		},
		func(name string, c metadata.ClassUsage) {
			changes = append(changes, Change{
				Path: name, Type: ChangeTypeAdded, Category: CategoryClass, Severity: SeverityInfo,
				NewValue: c, Message: fmt.Sprintf("class %s added", name),
			})
		})

	for _, name := range maputil.SortedKeys(src) {
		if t, ok := dst[name]; ok {
			changes = append(changes, diffClass(src[name], t)...)
		}
	}
	return changes
}

func diffClass(source, target metadata.ClassUsage) []Change {
	var changes []Change
	name := source.Name

	diffKeyed(
		maputil.KeySet(source.Methods, metadata.MethodUsage.String),
		maputil.KeySet(target.Methods, metadata.MethodUsage.String),
		func(sig string, m metadata.MethodUsage) {
			changes = append(changes, Change{
				Path: name + "#" + sig, Type: ChangeTypeRemoved, Category: CategoryMethod, Severity: SeverityError,
				OldValue: m, Message: fmt.Sprintf("method %s removed", sig),
			})
		},
		func(sig string, m metadata.MethodUsage) {
			changes = append(changes, Change{
				Path: name + "#" + sig, Type: ChangeTypeAdded, Category: CategoryMethod, Severity: SeverityInfo,
				NewValue: m, Message: fmt.Sprintf("method %s added", sig),
			})
		})

	diffKeyed(
		maputil.KeySet(source.Fields, metadata.FieldUsage.String),
		maputil.KeySet(target.Fields, metadata.FieldUsage.String),
		func(field string, f metadata.FieldUsage) {
			changes = append(changes, Change{
				Path: name + "#" + field, Type: ChangeTypeRemoved, Category: CategoryField, Severity: SeverityError,
				OldValue: f, Message: fmt.Sprintf("field %s removed", field),
			})
		},
		func(field string, f metadata.FieldUsage) {
			changes = append(changes, Change{
				Path: name + "#" + field, Type: ChangeTypeAdded, Category: CategoryField, Severity: SeverityInfo,
				NewValue: f, Message: fmt.Sprintf("field %s added", field),
			})
		})

	before, after := source.Flags(), target.Flags()
	for _, flag := range metadata.AllFlags() {
		had, has := before.Has(flag), after.Has(flag)
		switch {
		case had && !has:
			changes = append(changes, Change{
				Path: name + "@" + flag.String(), Type: ChangeTypeModified, Category: CategoryFlag, Severity: SeverityWarning,
				OldValue: true, NewValue: false, Message: fmt.Sprintf("%s cleared", flag),
			})
		case !had && has:
			changes = append(changes, Change{
				Path: name + "@" + flag.String(), Type: ChangeTypeModified, Category: CategoryFlag, Severity: SeverityInfo,
				OldValue: false, NewValue: true, Message: fmt.Sprintf("%s set", flag),
			})
		}
	}
	return changes
}

func diffProxies(source, target metadata.ProxyConfig) []Change {
	var changes []Change
	diffKeyed(
		maputil.KeySet(source.Proxies(), metadata.ProxyUsage.Key),
		maputil.KeySet(target.Proxies(), metadata.ProxyUsage.Key),
		func(_ string, p metadata.ProxyUsage) {
			changes = append(changes, Change{
				Path: "proxy" + p.String(), Type: ChangeTypeRemoved, Category: CategoryProxy, Severity: SeverityError,
				OldValue: p, Message: fmt.Sprintf("proxy %s removed", p),
			})
		},
		func(_ string, p metadata.ProxyUsage) {
			changes = append(changes, Change{
				Path: "proxy" + p.String(), Type: ChangeTypeAdded, Category: CategoryProxy, Severity: SeverityInfo,
				NewValue: p, Message: fmt.Sprintf("proxy %s added", p),
			})
		})
	return changes
}

func patternKey(p metadata.ResourcePattern) string { return p.Pattern }

func diffResources(source, target metadata.ResourceConfig) []Change {
	var changes []Change

	diffKeyed(
		maputil.KeySet(source.Includes(), patternKey),
		maputil.KeySet(target.Includes(), patternKey),
		func(pattern string, p metadata.ResourcePattern) {
			changes = append(changes, Change{
				Path: "resources.includes[" + pattern + "]", Type: ChangeTypeRemoved, Category: CategoryResource,
				Severity: SeverityError, OldValue: p, Message: fmt.Sprintf("include %q removed", pattern),
			})
		},
		func(pattern string, p metadata.ResourcePattern) {
			changes = append(changes, Change{
				Path: "resources.includes[" + pattern + "]", Type: ChangeTypeAdded, Category: CategoryResource,
				Severity: SeverityInfo, NewValue: p, Message: fmt.Sprintf("include %q added", pattern),
			})
		})

	// a new exclude hides resources, a dropped one exposes them
	diffKeyed(
		maputil.KeySet(source.Excludes(), patternKey),
		maputil.KeySet(target.Excludes(), patternKey),
		func(pattern string, p metadata.ResourcePattern) {
			changes = append(changes, Change{
				Path: "resources.excludes[" + pattern + "]", Type: ChangeTypeRemoved, Category: CategoryResource,
				Severity: SeverityInfo, OldValue: p, Message: fmt.Sprintf("exclude %q removed", pattern),
			})
		},
		func(pattern string, p metadata.ResourcePattern) {
			changes = append(changes, Change{
				Path: "resources.excludes[" + pattern + "]", Type: ChangeTypeAdded, Category: CategoryResource,
				Severity: SeverityWarning, NewValue: p, Message: fmt.Sprintf("exclude %q added", pattern),
			})
		})

	src := maputil.KeySet(source.Bundles(), metadata.ResourceBundle.Key)
	dst := maputil.KeySet(target.Bundles(), metadata.ResourceBundle.Key)
	diffKeyed(src, dst,
		func(name string, b metadata.ResourceBundle) {
			changes = append(changes, Change{
				Path: "bundles[" + name + "]", Type: ChangeTypeRemoved, Category: CategoryBundle,
				Severity: SeverityError, OldValue: b, Message: fmt.Sprintf("bundle %s removed", name),
			})
		},
		func(name string, b metadata.ResourceBundle) {
			changes = append(changes, Change{
				Path: "bundles[" + name + "]", Type: ChangeTypeAdded, Category: CategoryBundle,
				Severity: SeverityInfo, NewValue: b, Message: fmt.Sprintf("bundle %s added", name),
			})
		})
	for _, name := range maputil.SortedKeys(src) {
		t, ok := dst[name]
		if !ok {
			continue
		}
		diffKeyed(
			maputil.KeySet(src[name].Locales, identity),
			maputil.KeySet(t.Locales, identity),
			func(locale string, _ string) {
				changes = append(changes, Change{
					Path: "bundles[" + name + "].locales[" + locale + "]", Type: ChangeTypeRemoved, Category: CategoryBundle,
					Severity: SeverityError, OldValue: locale, Message: fmt.Sprintf("bundle %s locale %s removed", name, locale),
				})
			},
			func(locale string, _ string) {
				changes = append(changes, Change{
					Path: "bundles[" + name + "].locales[" + locale + "]", Type: ChangeTypeAdded, Category: CategoryBundle,
					Severity: SeverityInfo, NewValue: locale, Message: fmt.Sprintf("bundle %s locale %s added", name, locale),
				})
			})
	}
	return changes
}

func identity(s string) string { return s }
