package ptr

// Ptr возвращает указатель на значение
func Ptr[T any](v T) *T {
	return &v
}

// Deref возвращает значение по указателю или zero-value, если указатель nil
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
