package system

// ConsumeHitStop burns one frozen tick. While it returns true the caller must
// skip the whole tick, combo decay included.
func ConsumeHitStop(ctx *Context) bool {
	if ctx == nil || ctx.HitStop <= 0 {
		return false
	}
	ctx.HitStop--
	return true
}
