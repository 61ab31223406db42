package models

// PreferenceKind names the scalar type stored under a preference key.
type PreferenceKind string

const (
	KindBool   PreferenceKind = "bool"
	KindString PreferenceKind = "string"
	KindInt    PreferenceKind = "int"
	KindLong   PreferenceKind = "long"
	KindFloat  PreferenceKind = "float"
)

// Preference is one persisted key-value setting. Value is the textual form
// of the scalar described by Kind.
type Preference struct {
	Key   string
	Kind  PreferenceKind
	Value string
}
