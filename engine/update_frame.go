package engine

type UpdateFrame[S any] struct {
	DeltaTime float64
	Tick      uint64
	State     *S
	Commands  *Commands
}
