package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log — общий логгер процесса. По умолчанию пишет в stdout,
// Setup может добавить файл.
var Log = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Setup настраивает Log: вывод в stdout и, если задан путь, дублирование
// в файл. Возвращает функцию закрытия файла для defer в main.
func Setup(filePath string) (func(), error) {
	var w io.Writer = os.Stdout
	closeFn := func() {}

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
		if err != nil {
			return nil, err
		}
		w = io.MultiWriter(os.Stdout, f)
		closeFn = func() { _ = f.Close() }
	}

	Log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return closeFn, nil
}
