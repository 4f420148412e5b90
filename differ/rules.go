package differ

// BreakingChangeRule configures how a specific change type is treated.
type BreakingChangeRule struct {
	// Severity overrides the default severity for this change type.
	// If nil, the default severity is used.
	Severity *Severity

	// Ignore completely ignores this change type (not included in results).
	Ignore bool
}

// ChangeRules holds one rule per change type.
type ChangeRules struct {
	Added    *BreakingChangeRule
	Removed  *BreakingChangeRule
	Modified *BreakingChangeRule
}

// BreakingRulesConfig configures which changes are considered breaking
// and their severity levels.
//
// Example:
//
//	rules := &differ.BreakingRulesConfig{
//	    // classes are regenerated by every agent run, dropping one is expected
//	    Class: &differ.ChangeRules{
//	        Removed: &differ.BreakingChangeRule{Severity: differ.SeverityPtr(differ.SeverityWarning)},
//	    },
//	    Flag: &differ.ChangeRules{
//	        Modified: &differ.BreakingChangeRule{Ignore: true},
//	    },
//	}
//	d := differ.New()
//	d.BreakingRules = rules
type BreakingRulesConfig struct {
	// Class configures rules for class entries
	Class *ChangeRules
	// Member configures rules for methods and fields
	Member *ChangeRules
	// Flag configures rules for blanket access flags
	Flag *ChangeRules
	// Proxy configures rules for proxy interface lists
	Proxy *ChangeRules
	// Resource configures rules for resource patterns and bundles
	Resource *ChangeRules
}

// SeverityPtr returns a pointer to s, for use in BreakingChangeRule.
func SeverityPtr(s Severity) *Severity {
	return &s
}

func (c *BreakingRulesConfig) rulesFor(category ChangeCategory) *ChangeRules {
	switch category {
	case CategoryClass:
		return c.Class
	case CategoryMethod, CategoryField:
		return c.Member
	case CategoryFlag:
		return c.Flag
	case CategoryProxy:
		return c.Proxy
	case CategoryResource, CategoryBundle:
		return c.Resource
	default:
		return nil
	}
}

func (r *ChangeRules) ruleFor(t ChangeType) *BreakingChangeRule {
	switch t {
	case ChangeTypeAdded:
		return r.Added
	case ChangeTypeRemoved:
		return r.Removed
	default:
		return r.Modified
	}
}

// apply returns change with its severity overridden, and false when the
// change is ignored.
func (c *BreakingRulesConfig) apply(change Change) (Change, bool) {
	if c == nil {
		return change, true
	}
	rules := c.rulesFor(change.Category)
	if rules == nil {
		return change, true
	}
	rule := rules.ruleFor(change.Type)
	if rule == nil {
		return change, true
	}
	if rule.Ignore {
		return change, false
	}
	if rule.Severity != nil {
		change.Severity = *rule.Severity
	}
	return change, true
}
