package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/erraggy/reachmeta/merge"
	"github.com/erraggy/reachmeta/metaerrors"
)

// ProxyUsage records a dynamic proxy class by its ordered interface list.
// The order is significant: it determines the generated proxy class.
type ProxyUsage struct {
	Interfaces []string `json:"interfaces"`
}

// NewProxyUsage returns a ProxyUsage with a copy of interfaces.
func NewProxyUsage(interfaces ...string) ProxyUsage {
	return ProxyUsage{Interfaces: slices.Clone(interfaces)}
}

// Key returns the interface list joined with commas. JVM type names never
// contain a comma, so distinct proxies have distinct keys.
func (p ProxyUsage) Key() string {
	return strings.Join(p.Interfaces, ",")
}

// Compare orders proxies element-wise by interface name.
func (p ProxyUsage) Compare(other ProxyUsage) int {
	return slices.Compare(p.Interfaces, other.Interfaces)
}

// Equal reports whether both proxies list the same interfaces in the same order.
func (p ProxyUsage) Equal(other ProxyUsage) bool {
	return slices.Equal(p.Interfaces, other.Interfaces)
}

// String renders the proxy as [I1,I2].
func (p ProxyUsage) String() string {
	return "[" + p.Key() + "]"
}

func compareProxies(a, b ProxyUsage) int { return a.Compare(b) }

// ProxyConfig is a dynamic proxy metadata document: a sorted set of
// ProxyUsage records.
type ProxyConfig struct {
	proxies []ProxyUsage
}

// NewProxyConfig returns a document holding proxies, deduplicated.
func NewProxyConfig(proxies ...ProxyUsage) ProxyConfig {
	return ProxyConfig{proxies: unionProxies(proxies)}
}

func unionProxies(sets ...[]ProxyUsage) []ProxyUsage {
	out := merge.Union(compareProxies, sets...)
	for i := range out {
		out[i] = NewProxyUsage(out[i].Interfaces...)
	}
	return out
}

// Kind returns KindProxy.
func (c ProxyConfig) Kind() Kind { return KindProxy }

// Len returns the number of proxies.
func (c ProxyConfig) Len() int { return len(c.proxies) }

// Proxies returns a copy of the proxies in canonical order.
func (c ProxyConfig) Proxies() []ProxyUsage {
	return unionProxies(c.proxies)
}

// All yields a copy of each proxy in canonical order.
func (c ProxyConfig) All() iter.Seq[ProxyUsage] {
	return func(yield func(ProxyUsage) bool) {
		for _, p := range c.proxies {
			if !yield(NewProxyUsage(p.Interfaces...)) {
				return
			}
		}
	}
}

// Contains reports whether every expected proxy is present.
func (c ProxyConfig) Contains(expected ...ProxyUsage) bool {
	for _, want := range expected {
		if _, found := slices.BinarySearchFunc(c.proxies, want, compareProxies); !found {
			return false
		}
	}
	return true
}

// Equal reports whether both documents hold the same proxies.
func (c ProxyConfig) Equal(other ProxyConfig) bool {
	return slices.EqualFunc(c.proxies, other.proxies, ProxyUsage.Equal)
}

// MergeWith returns the union of both documents. It never fails.
func (c ProxyConfig) MergeWith(other ProxyConfig) (ProxyConfig, error) {
	return ProxyConfig{proxies: unionProxies(c.proxies, other.proxies)}, nil
}

// MarshalJSON encodes the document in object form:
// [{"interfaces":["I1","I2"]}].
func (c ProxyConfig) MarshalJSON() ([]byte, error) {
	if c.proxies == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.proxies)
}

// UnmarshalJSON accepts both the object form and the legacy form in which each
// entry is a bare interface list: [["I1","I2"]].
func (c *ProxyConfig) UnmarshalJSON(data []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	proxies := make([]ProxyUsage, 0, len(entries))
	for i, raw := range entries {
		var p ProxyUsage
		if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &p.Interfaces); err != nil {
				return err
			}
		} else if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		if err := validateProxy(i, p); err != nil {
			return err
		}
		proxies = append(proxies, p)
	}
	*c = NewProxyConfig(proxies...)
	return nil
}

func validateProxy(i int, p ProxyUsage) error {
	at := fmt.Sprintf("[%d]", i)
	if len(p.Interfaces) == 0 {
		return &metaerrors.ValidationError{Path: at, Field: "interfaces", Index: i, Message: "proxy entry requires at least one interface"}
	}
	for j, name := range p.Interfaces {
		if strings.TrimSpace(name) == "" {
			return &metaerrors.ValidationError{
				Path:    at,
				Field:   fmt.Sprintf("interfaces[%d]", j),
				Index:   i,
				Message: "interface name must not be empty",
			}
		}
	}
	return nil
}
