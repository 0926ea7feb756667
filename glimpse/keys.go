package glimpse

//go:generate go tool stringer -type=Key -trimprefix=Key

type Key int

const (
	KeyEscape Key = iota
	KeyEnter
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyD
	KeyS
	KeyW
)
