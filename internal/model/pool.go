package model

// PoolDescriptor is the pool a gauge rewards.
type PoolDescriptor struct {
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	ID      string `json:"pool_id"`
	Address string `json:"address"`
	AFactor string `json:"a_factor"`
}

// UnavailablePool is used when the pool behind a gauge could not be reached.
func UnavailablePool() PoolDescriptor {
	return PoolDescriptor{
		Name:    NotApplicable,
		Symbol:  NotApplicable,
		ID:      NotApplicable,
		Address: NotApplicable,
		AFactor: NotApplicable,
	}
}
