// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import "stockroom/internal/core/id"

// IDResponse is returned after creation.
type IDResponse struct {
	ID id.ID `json:"id"`
}

// ListResponse wraps a collection.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse builds a ListResponse, never with a nil slice.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// MapSlice converts every element of in with fn.
func MapSlice[S, T any](in []S, fn func(S) T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
