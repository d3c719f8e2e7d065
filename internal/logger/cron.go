package logger

// CronLogger adapts Logger to cron.Logger. Cron's routine chatter goes to debug.
type CronLogger struct {
	L *Logger
}

func (c CronLogger) Info(msg string, keysAndValues ...any) {
	c.L.Debug("cron: "+msg, keysAndValues...)
}

func (c CronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.L.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
