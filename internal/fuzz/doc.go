// Package fuzztests houses Go fuzz harnesses for the comment pipeline
// (source -> comments -> lexer -> parser) and the configuration loader.
// They guard against panics, hangs and ranges that escape their buffer.
//
// Назначение: прогонять произвольные байты через извлечение комментариев,
// разбор и загрузку конфигурации.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
