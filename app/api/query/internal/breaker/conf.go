package breaker

import "time"

// FileConf is the config-file form of Conf, with millisecond timeouts the
// way the service yaml expresses them.
type FileConf struct {
	FailureThreshold   int   `json:",default=5"`
	ResetTimeoutMs     int64 `json:",default=30000"`
	MonitoringWindowMs int64 `json:",default=60000"`
}

// New builds a breaker from the file config.
func (c FileConf) New() *Breaker {
	threshold := c.FailureThreshold
	if threshold < 1 {
		threshold = 1
	}
	return New(Conf{
		FailureThreshold: threshold,
		ResetTimeout:     time.Duration(c.ResetTimeoutMs) * time.Millisecond,
		MonitoringWindow: time.Duration(c.MonitoringWindowMs) * time.Millisecond,
	})
}
