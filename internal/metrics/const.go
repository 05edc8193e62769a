package metrics

const Namespace = "trace_link"

const (
	LoginResultSuccess = "success"
	LoginResultFailure = "failure"
)

const (
	CacheTypeRedis  = "redis"
	CacheTypeMemory = "memory"
)
