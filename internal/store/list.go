package store

import "slices"

type identifiable interface {
	GetID() int64
}

// replaceByID заменяет элемент с тем же id. Если его нет, список не меняется.
func replaceByID[T identifiable](items []T, item T) []T {
	i := slices.IndexFunc(items, func(existing T) bool {
		return existing.GetID() == item.GetID()
	})
	if i >= 0 {
		items[i] = item
	}

	return items
}

// removeByID удаляет элементы с указанным id.
func removeByID[T identifiable](items []T, id int64) []T {
	return slices.DeleteFunc(items, func(existing T) bool {
		return existing.GetID() == id
	})
}

func cloneEach[T any](items []T, clone func(T) T) []T {
	if items == nil {
		return nil
	}

	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}

	return out
}
