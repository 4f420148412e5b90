package metadata

// Stats summarizes the content of a document.
type Stats struct {
	Entries          int `json:"entries" yaml:"entries"`
	Classes          int `json:"classes,omitempty" yaml:"classes,omitempty"`
	Methods          int `json:"methods,omitempty" yaml:"methods,omitempty"`
	Fields           int `json:"fields,omitempty" yaml:"fields,omitempty"`
	BlanketFlags     int `json:"blanketFlags,omitempty" yaml:"blanketFlags,omitempty"`
	Proxies          int `json:"proxies,omitempty" yaml:"proxies,omitempty"`
	ProxyInterfaces  int `json:"proxyInterfaces,omitempty" yaml:"proxyInterfaces,omitempty"`
	ResourceIncludes int `json:"resourceIncludes,omitempty" yaml:"resourceIncludes,omitempty"`
	ResourceExcludes int `json:"resourceExcludes,omitempty" yaml:"resourceExcludes,omitempty"`
	Bundles          int `json:"bundles,omitempty" yaml:"bundles,omitempty"`
}

// StatsOf counts the entries of doc.
func StatsOf(doc Document) Stats {
	var s Stats
	if doc == nil {
		return s
	}
	s.Entries = doc.Len()
	switch d := doc.(type) {
	case ClassConfig:
		s.Classes = len(d.classes)
		for _, c := range d.classes {
			s.Methods += len(c.Methods)
			s.Fields += len(c.Fields)
			s.BlanketFlags += c.Flags().Count()
		}
	case ProxyConfig:
		s.Proxies = len(d.proxies)
		for _, p := range d.proxies {
			s.ProxyInterfaces += len(p.Interfaces)
		}
	case ResourceConfig:
		s.ResourceIncludes = len(d.includes)
		s.ResourceExcludes = len(d.excludes)
		s.Bundles = len(d.bundles)
	}
	return s
}
