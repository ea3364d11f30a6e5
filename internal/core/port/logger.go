package port

// Fields - структурированные данные, прикладываемые к записи лога.
type Fields map[string]interface{}

// LoggerPort - контракт системы логирования. Внедряется явно, чтобы
// тесты могли детерминированно перехватывать вывод.
type LoggerPort interface {
	Info(msg string, fields Fields)

	Warn(msg string, fields Fields)

	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)

	// WithFields возвращает новый логгер с уже добавленными полями.
	WithFields(fields Fields) LoggerPort
}
