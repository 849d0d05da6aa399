package log

import (
	"fmt"
	"log/slog"
)

const ErrorKey = "error"

func Error(err error) slog.Attr {
	return slog.String(ErrorKey, fmt.Sprintf("%+v", err))
}
