package services

type LogHandler interface {
	Debug(text string)
	Info(text string)
	Warn(text string)
	Error(text string, err error)
	// Alert reports a security relevant failure, such as a gateway hash mismatch.
	Alert(text string, err error)
}
