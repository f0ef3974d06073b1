package component

// TTL is a frame-based time-to-live. The lifetime system counts it down each
// unfrozen tick and destroys the entity at zero. Reason is only for logs.
type TTL struct {
	Frames int
	Reason string
}

var TTLComponent = NewComponent[TTL]()
