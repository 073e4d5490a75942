package engine

// System is one stage of a tick. Systems run in registration order and
// receive the state they operate on through the frame; any fields on the
// system itself persist between ticks.
type System[S any] interface {
	Execute(frame *UpdateFrame[S])
}
