package pulse

func SetUniformCacheSize(size int) (restore func()) {
	previous := uniformCacheSize
	uniformCacheSize = size
	return func() { uniformCacheSize = previous }
}
