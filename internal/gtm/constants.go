package gtm

// Trigger types accepted by the Tag Manager v2 API.
const (
	TriggerPageView          = "pageview"
	TriggerDOMReady          = "domReady"
	TriggerWindowLoaded      = "windowLoaded"
	TriggerCustomEvent       = "customEvent"
	TriggerClick             = "click"
	TriggerLinkClick         = "linkClick"
	TriggerFormSubmission    = "formSubmission"
	TriggerScrollDepth       = "scrollDepth"
	TriggerTimer             = "timer"
	TriggerHistoryChange     = "historyChange"
	TriggerJSError           = "jsError"
	TriggerElementVisibility = "elementVisibility"
	TriggerYouTubeVideo      = "youTubeVideo"
	TriggerInit              = "init"
	TriggerConsentInit       = "consentInit"
	TriggerTriggerGroup      = "triggerGroup"
)

// Tag types used by the builders.
const (
	TagGA4Config = "gaawc"
	TagGA4Event  = "gaawe"
	TagHTML      = "html"
	TagImage     = "img"
)

// Variable types.
const (
	VariableConstant        = "c"
	VariableDataLayer       = "v"
	VariableJavaScript      = "jsm"
	VariableURL             = "u"
	VariableCookie          = "k"
	VariableDOMElement      = "d"
	VariableCustomEvent     = "e"
	VariableLookupTable     = "smm"
	VariableGoogleTagConfig = "gtcs"
)

// Filter comparison operators for trigger conditions.
const (
	FilterEquals        = "EQUALS"
	FilterContains      = "CONTAINS"
	FilterStartsWith    = "STARTS_WITH"
	FilterEndsWith      = "ENDS_WITH"
	FilterMatchRegex    = "MATCH_REGEX"
	FilterGreater       = "GREATER"
	FilterGreaterEquals = "GREATER_OR_EQUALS"
	FilterLess          = "LESS"
	FilterLessEquals    = "LESS_OR_EQUALS"
	FilterCSSSelector   = "CSS_SELECTOR"
	FilterURLMatches    = "URL_MATCHES"
)

// Parameter node types.
const (
	ParamTypeTemplate         = "TEMPLATE"
	ParamTypeBoolean          = "BOOLEAN"
	ParamTypeInteger          = "INTEGER"
	ParamTypeList             = "LIST"
	ParamTypeMap              = "MAP"
	ParamTypeTagReference     = "TAG_REFERENCE"
	ParamTypeTriggerReference = "TRIGGER_REFERENCE"
)

// Field limits enforced by the validators.
const (
	MaxNameLength         = 255
	MaxNotesLength        = 5000
	MaxGA4EventNameLength = 40
	MinAccountIDDigits    = 10
)

var triggerTypes = map[string]bool{
	TriggerPageView:          true,
	TriggerDOMReady:          true,
	TriggerWindowLoaded:      true,
	TriggerCustomEvent:       true,
	TriggerClick:             true,
	TriggerLinkClick:         true,
	TriggerFormSubmission:    true,
	TriggerScrollDepth:       true,
	TriggerTimer:             true,
	TriggerHistoryChange:     true,
	TriggerJSError:           true,
	TriggerElementVisibility: true,
	TriggerYouTubeVideo:      true,
	TriggerInit:              true,
	TriggerConsentInit:       true,
	TriggerTriggerGroup:      true,
}

var filterTypes = map[string]bool{
	FilterEquals:        true,
	FilterContains:      true,
	FilterStartsWith:    true,
	FilterEndsWith:      true,
	FilterMatchRegex:    true,
	FilterGreater:       true,
	FilterGreaterEquals: true,
	FilterLess:          true,
	FilterLessEquals:    true,
	FilterCSSSelector:   true,
	FilterURLMatches:    true,
}
