package fields

const (
	MsgInvalidInteger  = "Not a valid integer."
	MsgInvalidNumber   = "Not a valid number."
	MsgTooLarge        = "Number too large."
	MsgInvalidBoolean  = "Not a valid boolean."
	MsgInvalidDateTime = "Not a valid datetime."
	MsgInvalidPeriod   = "Not a valid period of time."
	MsgInvalidEmail    = "Not a valid email address."
	MsgInvalidUUID     = "Not a valid UUID."
	MsgInvalidList     = "Not a valid list."
	MsgInvalidMapping  = "Not a valid mapping type."
)
