package ports

type Metrics interface {
	CaptureFinished(result string)
	ApplyFinished(result string)
	SessionsReverted(count int)
	MigrationFinished(kind, result string)
}

type NopMetrics struct{}

func (NopMetrics) CaptureFinished(string)           {}
func (NopMetrics) ApplyFinished(string)             {}
func (NopMetrics) SessionsReverted(int)             {}
func (NopMetrics) MigrationFinished(string, string) {}
