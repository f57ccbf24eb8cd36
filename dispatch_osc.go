package vtcore

// dispatch_osc.go handles completed OSC payloads. §1 scopes window-title
// and similar OSC sequences out of the core's behavior, but per §4.6 they
// must still be accepted and silently ignored rather than treated as an
// error, so a host application layered on top can inspect OscPayload from
// the raw Event stream if it wants to (e.g. to set a window title) without
// the core itself acting on it.
func (e *Engine) dispatchOsc(payload string) {
	_ = payload
}
