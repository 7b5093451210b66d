package render

const (
	// Order states
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"

	// Payment states
	StatusPaid     = "paid"
	StatusRefunded = "refunded"

	// Stock states
	StatusAvailable  = "available"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
	StatusExpired    = "expired"

	// Stock levels
	LevelEmpty  = "empty"
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"

	// Display values
	MissingValue = "-"
	ZeroValue    = "0"
	Blank        = ""
)
