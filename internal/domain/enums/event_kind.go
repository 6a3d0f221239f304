package enums

type EventKind string

const (
	EventKindMatchCreated EventKind = "match_created"
	EventKindPropReceived EventKind = "prop_received"
)
