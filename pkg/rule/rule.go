package rule

// Default values applied by Normalize.
const (
	DefaultPadLeft                      = ""
	DefaultPadRight                     = ""
	DefaultIgnoreIfUndefined            = true
	DefaultIgnoreIfUndefinedReplacement = ""
	DefaultArrayJoin                    = ""
	DefaultSwitchDefault                = ""
)

// Rule is a rule object as authored in a header or inline token.
// A nil field means the field was not set.
type Rule struct {
	PadLeft                      *string `json:"padLeft,omitempty"`
	PadRight                     *string `json:"padRight,omitempty"`
	IgnoreIfUndefined            *bool   `json:"ignoreIfUndefined,omitempty"`
	IgnoreIfUndefinedReplacement *string `json:"ignoreIfUndefinedReplacement,omitempty"`
	ArrayJoin                    *string `json:"arrayJoin,omitempty"`
	Switch                       *Switch `json:"switch,omitempty"`
}

// Switch maps literal context values to replacement text.
type Switch struct {
	Cases   map[string]string `json:"cases"`
	Default *string           `json:"default,omitempty"`
}

// Spec is a normalized rule: every field carries a concrete value.
type Spec struct {
	PadLeft                      string
	PadRight                     string
	IgnoreIfUndefined            bool
	IgnoreIfUndefinedReplacement string
	ArrayJoin                    string

	// Switch is nil when the rule has no switch.
	Switch *SwitchSpec
}

// SwitchSpec is a normalized switch.
type SwitchSpec struct {
	Cases   map[string]string
	Default string
}

// Select returns the replacement for value, falling back to the default
// when value is not one of the cases.
func (s *SwitchSpec) Select(value string) string {
	if replacement, ok := s.Cases[value]; ok {
		return replacement
	}
	return s.Default
}

// Normalize fills every unset field of r with its default.
// A nil rule yields the all-defaults Spec. r is not modified.
func Normalize(r *Rule) Spec {
	spec := Spec{
		PadLeft:                      DefaultPadLeft,
		PadRight:                     DefaultPadRight,
		IgnoreIfUndefined:            DefaultIgnoreIfUndefined,
		IgnoreIfUndefinedReplacement: DefaultIgnoreIfUndefinedReplacement,
		ArrayJoin:                    DefaultArrayJoin,
	}
	if r == nil {
		return spec
	}

	if r.PadLeft != nil {
		spec.PadLeft = *r.PadLeft
	}
	if r.PadRight != nil {
		spec.PadRight = *r.PadRight
	}
	if r.IgnoreIfUndefined != nil {
		spec.IgnoreIfUndefined = *r.IgnoreIfUndefined
	}
	if r.IgnoreIfUndefinedReplacement != nil {
		spec.IgnoreIfUndefinedReplacement = *r.IgnoreIfUndefinedReplacement
	}
	if r.ArrayJoin != nil {
		spec.ArrayJoin = *r.ArrayJoin
	}
	if r.Switch != nil {
		spec.Switch = normalizeSwitch(r.Switch)
	}

	return spec
}

func normalizeSwitch(s *Switch) *SwitchSpec {
	// Cases is shared with the raw rule; neither side writes to it.
	spec := &SwitchSpec{
		Cases:   s.Cases,
		Default: DefaultSwitchDefault,
	}
	if s.Default != nil {
		spec.Default = *s.Default
	}
	return spec
}

// Header maps rule names to the rules declared in a document header.
type Header map[string]*Rule

// Lookup returns the named rule and whether it exists.
func (h Header) Lookup(name string) (*Rule, bool) {
	r, ok := h[name]
	return r, ok
}
