// Утилитарные функции общего назначения
package utils

import "time"

func Ptr[T any](v T) *T {
	return &v
}

func TimePtr(t time.Time) *time.Time {
	return &t
}
