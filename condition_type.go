package sassas

// ConditionKind classifies a condition type from the CONDITION TYPES section.
type ConditionKind uint8

const (
	ConditionError ConditionKind = iota
	ConditionWarning
	ConditionInfo
)

var conditionKindNames = map[string]ConditionKind{
	"ERROR":   ConditionError,
	"WARNING": ConditionWarning,
	"INFO":    ConditionInfo,
}

// ConditionType is one `name : kind` item from the CONDITION TYPES section,
// e.g. ILLEGAL_INSTR_ENCODING_ERROR : ERROR.
type ConditionType struct {
	Kind ConditionKind
	Name string
}

// ConditionTypeFromString builds a ConditionType from the kind spelling used
// in the source text. The kind string is matched case-sensitively; an unknown
// spelling reports false.
func ConditionTypeFromString(kind, name string) (ConditionType, bool) {
	k, ok := conditionKindNames[kind]
	if !ok {
		return ConditionType{}, false
	}
	return ConditionType{Kind: k, Name: name}, true
}

// ConditionKinds returns the valid kind spellings in a fixed order, for use
// in diagnostics.
func ConditionKinds() []string {
	return []string{"ERROR", "WARNING", "INFO"}
}
