package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/repository"
)

const maxStepsPerRequest = 10_000

func decodeQuery(dst any, src map[string][]string) error {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec.Decode(dst, src)
}

// ResetDTO keeps the current dimension for an omitted field.
type ResetDTO struct {
	Rows *int `schema:"rows"`
	Cols *int `schema:"cols"`
}

func ParseResetDTO(src map[string][]string) (ResetDTO, error) {
	var dto ResetDTO
	err := decodeQuery(&dto, src)
	return dto, err
}

func (dto ResetDTO) Dimensions(rows, cols int) (int, int) {
	if dto.Rows != nil {
		rows = *dto.Rows
	}
	if dto.Cols != nil {
		cols = *dto.Cols
	}
	return rows, cols
}

type SearchDTO struct {
	Mode string `schema:"mode,required"`
}

func ParseSearchDTO(src map[string][]string) (maze.Mode, error) {
	var dto SearchDTO
	if err := decodeQuery(&dto, src); err != nil {
		return maze.NoMode, err
	}
	return maze.ParseMode(dto.Mode)
}

type AdvanceDTO struct {
	Steps int `schema:"steps"`
}

func ParseAdvanceDTO(src map[string][]string) (AdvanceDTO, error) {
	dto := AdvanceDTO{Steps: 1}
	if err := decodeQuery(&dto, src); err != nil {
		return dto, err
	}
	if dto.Steps < 1 || dto.Steps > maxStepsPerRequest {
		return dto, ErrBadSteps
	}
	return dto, nil
}

type RunsFilterDTO struct {
	Mode  *string `schema:"mode"`
	Rows  *int    `schema:"rows"`
	Cols  *int    `schema:"cols"`
	Limit int     `schema:"limit"`
}

func ParseRunsFilter(src map[string][]string) (repository.SolveRunFilter, error) {
	var dto RunsFilterDTO
	if err := decodeQuery(&dto, src); err != nil {
		return repository.SolveRunFilter{}, err
	}
	filter := repository.SolveRunFilter{
		Rows:  dto.Rows,
		Cols:  dto.Cols,
		Limit: dto.Limit,
	}
	if dto.Mode != nil {
		mode, err := maze.ParseMode(*dto.Mode)
		if err != nil {
			return filter, err
		}
		s := mode.String()
		filter.Mode = &s
	}
	return filter, nil
}
