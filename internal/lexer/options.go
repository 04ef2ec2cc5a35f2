package lexer

import (
	"tsdoc/internal/diag"
	"tsdoc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем разбор)
}

func report(opts Options, code diag.Code, sev diag.Severity, r source.TextRange, msg string) {
	diag.Emit(opts.Reporter, diag.New(sev, code, r, msg))
}
