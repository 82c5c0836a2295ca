package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/letsssgooo/classroom/internal/client"
	"github.com/letsssgooo/classroom/internal/domain/models"
)

// MaterialsState — учебные материалы и открытый материал.
type MaterialsState struct {
	Materials []models.Material
	Current   *models.Material
}

func cloneMaterials(s MaterialsState) MaterialsState {
	s.Materials = cloneEach(s.Materials, models.Material.Clone)
	if s.Current != nil {
		current := s.Current.Clone()
		s.Current = &current
	}

	return s
}

// materialEnvelope — ответ сервера на создание и изменение материала.
type materialEnvelope struct {
	Material models.Material `json:"material"`
}

// MaterialsSlice управляет учебными материалами.
type MaterialsSlice struct {
	*Slice[MaterialsState]

	gw *client.Gateway
}

func newMaterialsSlice(gw *client.Gateway, log *slog.Logger) *MaterialsSlice {
	return &MaterialsSlice{
		Slice: newSlice("materials", MaterialsState{}, cloneMaterials, log),
		gw:    gw,
	}
}

func (s *MaterialsSlice) FetchMaterials(ctx context.Context) *Task[[]models.Material] {
	return dispatch(ctx, s.Slice, operation[MaterialsState, []models.Material]{
		name:       "fetchMaterials",
		latestOnly: true,
		call: func(ctx context.Context) ([]models.Material, error) {
			return client.Call[[]models.Material](ctx, s.gw, client.Request{Path: "/materials"})
		},
		apply: func(state *MaterialsState, materials []models.Material) {
			state.Materials = cloneEach(materials, models.Material.Clone)
		},
	})
}

func (s *MaterialsSlice) FetchMaterial(ctx context.Context, id int64) *Task[models.Material] {
	return dispatch(ctx, s.Slice, operation[MaterialsState, models.Material]{
		name:       "fetchMaterial",
		latestOnly: true,
		call: func(ctx context.Context) (models.Material, error) {
			return client.Call[models.Material](ctx, s.gw, client.Request{Path: fmt.Sprintf("/materials/%d", id)})
		},
		apply: func(state *MaterialsState, material models.Material) {
			material = material.Clone()
			state.Current = &material
		},
	})
}

// CreateMaterial создаёт материал курса courseID с файлами.
func (s *MaterialsSlice) CreateMaterial(ctx context.Context, courseID int64, m models.Material, files []UploadFile) *Task[models.Material] {
	form := &client.Form{}
	form.Add("title", m.Title)
	form.Add("description", m.Description)
	form.Add("courseId", strconv.FormatInt(courseID, 10))
	for _, link := range m.Links {
		form.Add("links", link)
	}
	for _, file := range files {
		form.AddFile(filesField, file.Name, file.Data)
	}

	return dispatch(ctx, s.Slice, operation[MaterialsState, models.Material]{
		name: "createMaterial",
		call: func(ctx context.Context) (models.Material, error) {
			resp, err := client.Call[materialEnvelope](ctx, s.gw, client.Request{
				Method: http.MethodPost,
				Path:   "/materials",
				Form:   form,
			})
			return resp.Material, err
		},
		apply: func(state *MaterialsState, created models.Material) {
			state.Materials = append(state.Materials, created.Clone())
		},
	})
}

// UpdateMaterial меняет заголовок и описание материала, добавляет файлы files
// и удаляет прикреплённые файлы с номерами removeFiles.
func (s *MaterialsSlice) UpdateMaterial(ctx context.Context, m models.Material, files []UploadFile, removeFiles []int64) *Task[models.Material] {
	form := &client.Form{}
	form.Add("title", m.Title)
	form.Add("description", m.Description)
	for _, id := range removeFiles {
		form.Add("removeFiles[]", strconv.FormatInt(id, 10))
	}
	for _, file := range files {
		form.AddFile(filesField, file.Name, file.Data)
	}

	return dispatch(ctx, s.Slice, operation[MaterialsState, models.Material]{
		name: "updateMaterial",
		call: func(ctx context.Context) (models.Material, error) {
			resp, err := client.Call[materialEnvelope](ctx, s.gw, client.Request{
				Method: http.MethodPut,
				Path:   fmt.Sprintf("/materials/%d", m.ID),
				Form:   form,
			})
			return resp.Material, err
		},
		apply: func(state *MaterialsState, updated models.Material) {
			state.Materials = replaceByID(state.Materials, updated.Clone())
			if state.Current != nil && state.Current.ID == updated.ID {
				current := updated.Clone()
				state.Current = &current
			}
		},
	})
}

func (s *MaterialsSlice) DeleteMaterial(ctx context.Context, id int64) *Task[int64] {
	return dispatch(ctx, s.Slice, operation[MaterialsState, int64]{
		name: "deleteMaterial",
		call: func(ctx context.Context) (int64, error) {
			err := client.Do(ctx, s.gw, client.Request{
				Method: http.MethodDelete,
				Path:   fmt.Sprintf("/materials/%d", id),
			})
			return id, err
		},
		apply: func(state *MaterialsState, id int64) {
			state.Materials = removeByID(state.Materials, id)
			if state.Current != nil && state.Current.ID == id {
				state.Current = nil
			}
		},
	})
}
