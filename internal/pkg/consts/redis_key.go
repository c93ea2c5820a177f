package consts

const (
	SeedLockKey = "seed:lock"
	LLMPaceKey  = "seed:llm:pace"
)
