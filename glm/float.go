package glm

type float interface {
	~float32 | ~float64
}

type numeric interface {
	float | ~int32 | ~uint32
}

// Rad is an angle in radians.
type Rad float32

func Clamp[T numeric](value, lo, hi T) T {
	return max(lo, min(hi, value))
}
