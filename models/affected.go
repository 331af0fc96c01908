package models

// Values of data returned by Casdoor's add/update/delete actions.
const (
	Affected   = "Affected"
	Unaffected = "Unaffected"
)
