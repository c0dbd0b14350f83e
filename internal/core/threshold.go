package core

import "strconv"

// Threshold is a bound on one declared field. Two shapes exist:
//
//   - numeric range: Min/Max set; a candidate value outside the range is
//     replaced with Escalate (e.g. bump severity when a score crosses a
//     bound)
//   - enumerated triggers: Triggers set; a candidate value matching any
//     trigger overrides TargetField with Value (TargetField defaults to
//     the thresholded field itself)
//
// Absence of a threshold for a field means no escalation logic for it.
type Threshold struct {
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Escalate    string   `json:"escalate,omitempty" yaml:"escalate,omitempty"`
	Triggers    []string `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	TargetField string   `json:"target_field,omitempty" yaml:"target_field,omitempty"`
	Value       string   `json:"value,omitempty" yaml:"value,omitempty"`
}

// clone returns a deep copy.
func (t Threshold) clone() Threshold {
	out := t
	if t.Min != nil {
		v := *t.Min
		out.Min = &v
	}
	if t.Max != nil {
		v := *t.Max
		out.Max = &v
	}
	if t.Triggers != nil {
		out.Triggers = append([]string(nil), t.Triggers...)
	}
	return out
}

// EvaluateThresholds applies a source's threshold map to a candidate
// field-value set and returns the derived overrides. The evaluation is
// pure: same inputs always produce the same overrides, and neither input
// is mutated.
func EvaluateThresholds(thresholds map[string]Threshold, candidate map[string]any) map[string]any {
	overrides := make(map[string]any)
	for field, th := range thresholds {
		value, ok := candidate[field]
		if !ok {
			continue
		}
		if th.Min != nil || th.Max != nil {
			num, ok := toFloat(value)
			if !ok {
				continue
			}
			out := false
			if th.Min != nil && num < *th.Min {
				out = true
			}
			if th.Max != nil && num > *th.Max {
				out = true
			}
			if out && th.Escalate != "" {
				target := th.TargetField
				if target == "" {
					target = field
				}
				overrides[target] = th.Escalate
			}
			continue
		}
		if len(th.Triggers) > 0 {
			str := toString(value)
			for _, trigger := range th.Triggers {
				if str == trigger {
					target := th.TargetField
					if target == "" {
						target = field
					}
					overrides[target] = th.Value
					break
				}
			}
		}
	}
	return overrides
}

// toFloat coerces numeric candidate values. Fabricated values may be
// float64, int, or numeric strings (the original snapshots stored numbers
// as strings).
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
