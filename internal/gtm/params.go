package gtm

import (
	"strconv"
	"strings"

	tagmanager "google.golang.org/api/tagmanager/v2"
)

// TemplateParam builds a TEMPLATE parameter. Values may contain variable
// references like {{Page URL}}.
func TemplateParam(key, value string) *tagmanager.Parameter {
	return &tagmanager.Parameter{Type: ParamTypeTemplate, Key: key, Value: value}
}

// BooleanParam builds a BOOLEAN parameter. The API wants the value as the
// string "true" or "false".
func BooleanParam(key string, value bool) *tagmanager.Parameter {
	return &tagmanager.Parameter{Type: ParamTypeBoolean, Key: key, Value: strconv.FormatBool(value)}
}

// IntegerParam builds an INTEGER parameter with a decimal string value.
func IntegerParam(key string, value int64) *tagmanager.Parameter {
	return &tagmanager.Parameter{Type: ParamTypeInteger, Key: key, Value: strconv.FormatInt(value, 10)}
}

// ListParam builds a LIST parameter holding the given items.
func ListParam(key string, items ...*tagmanager.Parameter) *tagmanager.Parameter {
	return &tagmanager.Parameter{Type: ParamTypeList, Key: key, List: items}
}

// MapParam builds a MAP parameter. Maps nested inside lists carry no key of
// their own.
func MapParam(items ...*tagmanager.Parameter) *tagmanager.Parameter {
	return &tagmanager.Parameter{Type: ParamTypeMap, Map: items}
}

// TagReferenceParam builds a TAG_REFERENCE parameter pointing at another tag
// by name.
func TagReferenceParam(key, tagName string) *tagmanager.Parameter {
	return &tagmanager.Parameter{Type: ParamTypeTagReference, Key: key, Value: tagName}
}

// TriggerReferenceParam builds a TRIGGER_REFERENCE parameter. Trigger
// references carry no key.
func TriggerReferenceParam(triggerID string) *tagmanager.Parameter {
	return &tagmanager.Parameter{Type: ParamTypeTriggerReference, Value: triggerID}
}

// EventParameter builds the nested map structure GA4 event parameters use: a
// MAP of two TEMPLATEs keyed "name" and "value".
func EventParameter(name, value string) *tagmanager.Parameter {
	return MapParam(TemplateParam("name", name), TemplateParam("value", value))
}

// EventParam is a GA4 event parameter name/value pair before encoding.
type EventParam struct {
	Name  string
	Value string
}

// EventParametersList encodes pairs as a list of GA4 event parameter maps.
func EventParametersList(pairs []EventParam) []*tagmanager.Parameter {
	out := make([]*tagmanager.Parameter, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, EventParameter(p.Name, p.Value))
	}
	return out
}

// ScrollPercentageList builds the verticalScrollPercentageList parameter for
// scroll depth triggers. Percentages are validated, deduplicated and sorted
// ascending; the list items are keyless TEMPLATEs.
func ScrollPercentageList(percentages []int) (*tagmanager.Parameter, error) {
	cleaned, err := ValidateScrollPercentages(percentages)
	if err != nil {
		return nil, err
	}
	items := make([]*tagmanager.Parameter, 0, len(cleaned))
	for _, pct := range cleaned {
		items = append(items, &tagmanager.Parameter{Type: ParamTypeTemplate, Value: strconv.Itoa(pct)})
	}
	return ListParam("verticalScrollPercentageList", items...), nil
}

// CustomEventFilter builds the customEventFilter condition for a custom event
// trigger: one EQUALS condition comparing {{_event}} to the literal name.
func CustomEventFilter(eventName string) ([]*tagmanager.Condition, error) {
	eventName = strings.TrimSpace(eventName)
	if eventName == "" {
		return nil, &ParameterFormatError{Key: "event_name", Expected: "a non-empty event name"}
	}
	return []*tagmanager.Condition{{
		Type: FilterEquals,
		Parameter: []*tagmanager.Parameter{
			TemplateParam("arg0", "{{_event}}"),
			TemplateParam("arg1", eventName),
		},
	}}, nil
}

// URLFilter builds a trigger condition comparing a variable reference against
// a pattern, e.g. URLFilter("{{Page URL}}", FilterContains, "/checkout").
func URLFilter(variable, filterType, pattern string) ([]*tagmanager.Condition, error) {
	if err := ValidateFilterType(filterType); err != nil {
		return nil, err
	}
	return []*tagmanager.Condition{{
		Type: filterType,
		Parameter: []*tagmanager.Parameter{
			TemplateParam("arg0", variable),
			TemplateParam("arg1", pattern),
		},
	}}, nil
}

// ClickFilter builds a click trigger condition against {{Click URL}}.
func ClickFilter(filterType, pattern string) ([]*tagmanager.Condition, error) {
	return URLFilter("{{Click URL}}", filterType, pattern)
}

// MergeParameters merges parameter lists by key; on duplicate keys the later
// parameter wins but keeps the position of the first occurrence. Keyless
// parameters are never deduplicated and sort after all keyed ones.
func MergeParameters(lists ...[]*tagmanager.Parameter) []*tagmanager.Parameter {
	order := make([]string, 0)
	byKey := make(map[string]*tagmanager.Parameter)
	keyless := make([]*tagmanager.Parameter, 0)
	for _, list := range lists {
		for _, p := range list {
			if p == nil {
				continue
			}
			if p.Key == "" {
				keyless = append(keyless, p)
				continue
			}
			if _, seen := byKey[p.Key]; !seen {
				order = append(order, p.Key)
			}
			byKey[p.Key] = p
		}
	}
	out := make([]*tagmanager.Parameter, 0, len(order)+len(keyless))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return append(out, keyless...)
}

// GA4ConfigTag assembles a GA4 Configuration tag (type gaawc).
func GA4ConfigTag(name, measurementID string, sendPageView bool, additional ...*tagmanager.Parameter) *tagmanager.Tag {
	params := []*tagmanager.Parameter{
		TemplateParam("measurementId", measurementID),
		BooleanParam("sendPageView", sendPageView),
	}
	if len(additional) > 0 {
		params = MergeParameters(params, additional)
	}
	return &tagmanager.Tag{Name: name, Type: TagGA4Config, Parameter: params}
}

// GA4EventTag assembles a GA4 Event tag (type gaawe) referencing a config tag
// by name.
func GA4EventTag(name, configTagName, eventName string, eventParams []EventParam, sendEcommerce bool) *tagmanager.Tag {
	params := []*tagmanager.Parameter{
		TagReferenceParam("measurementId", configTagName),
		TemplateParam("eventName", eventName),
	}
	if len(eventParams) > 0 {
		params = append(params, ListParam("eventParameters", EventParametersList(eventParams)...))
	}
	if sendEcommerce {
		params = append(params, BooleanParam("sendEcommerceData", true))
	}
	return &tagmanager.Tag{Name: name, Type: TagGA4Event, Parameter: params}
}
