package models

import "slices"

// Material определяет учебный материал курса
type Material struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	FileLinks   []string `json:"fileLinks"`
	Links       []string `json:"links"`
}

func (m Material) GetID() int64 { return m.ID }

func (m Material) Clone() Material {
	m.FileLinks = slices.Clone(m.FileLinks)
	m.Links = slices.Clone(m.Links)
	return m
}
