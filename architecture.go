package sassas

// ArchitectureDetail is one item from the ARCHITECTURE section. The section
// content does not drive instruction translation, so each item's value is
// kept as the raw source text rather than parsed further. Callers that need a
// specific item can interpret the value themselves.
type ArchitectureDetail struct {
	Name  string
	Value string
}

// Architecture holds the contents of the ARCHITECTURE section: the quoted
// architecture name and its item list, in source order.
type Architecture struct {
	Name    string
	Details []ArchitectureDetail
}
