package domain

import "errors"

// Типизированные ошибки ядра. Хендлеры мапят их на HTTP статусы.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidProgress = errors.New("invalid progress value")
	ErrPersistence     = errors.New("persistence failure")
	ErrRender          = errors.New("render failure")
)
