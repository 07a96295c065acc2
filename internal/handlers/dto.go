package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/sokoban-server/internal/repository"
	"github.com/vancomm/sokoban-server/internal/sokoban"
)

// NewGameDTO selects the level for a fresh session: either a built-in level
// by name (query) or a grid posted as a JSON body.
type NewGameDTO struct {
	LevelName string `schema:"level_name"`
}

type newGameBody struct {
	Grid []string `json:"grid"`
}

// ParseLevel resolves the request into a parsed board. Body grid wins over
// level_name; with neither, the default built-in level is used.
func ParseLevel(r *http.Request) (*sokoban.Level, error) {
	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if len(body) > 0 {
			var parsed newGameBody
			if err := json.Unmarshal(body, &parsed); err != nil {
				return nil, fmt.Errorf("request body must be a JSON object with a \"grid\" array: %w", err)
			}
			return sokoban.Parse(parsed.Grid)
		}
	}

	var dto NewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, r.URL.Query()); err != nil {
		return nil, err
	}
	if dto.LevelName == "" {
		dto.LevelName = sokoban.DefaultLevelName
	}
	return sokoban.BuiltinLevel(dto.LevelName)
}

type MoveDTO struct {
	Direction string `schema:"direction,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type SolveDTO struct {
	Algorithm     string  `schema:"algorithm"`
	MaxIterations int     `schema:"max_iterations"`
	TimeLimit     float64 `schema:"time_limit"`
}

func ParseSolveDTO(src map[string][]string) (SolveDTO, error) {
	var dto SolveDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type GameSessionDTO struct {
	GameSessionId string              `json:"game_session_id"`
	Grid          []string            `json:"grid"`
	LevelHash     string              `json:"level_hash"`
	Width         int                 `json:"width"`
	Height        int                 `json:"height"`
	BoxCount      int                 `json:"box_count"`
	Solved        bool                `json:"solved"`
	Moves         int                 `json:"moves"`
	Pushes        int                 `json:"pushes"`
	History       []sokoban.Direction `json:"history"`
	StartedAt     int64               `json:"started_at"`
	CompletedAt   *int64              `json:"completed_at,omitempty"`
}

func NewGameSessionDTO(s *repository.GameSession, board *sokoban.Level) *GameSessionDTO {
	var completedAt *int64
	if s.CompletedAt != nil {
		e := s.CompletedAt.UnixMilli()
		completedAt = &e
	}
	history := board.History()
	if history == nil {
		history = []sokoban.Direction{}
	}
	return &GameSessionDTO{
		GameSessionId: strconv.FormatInt(s.GameSessionId, 10),
		Grid:          board.Render(),
		LevelHash:     s.LevelHash,
		Width:         board.Width,
		Height:        board.Height,
		BoxCount:      board.BoxCount(),
		Solved:        board.Complete(),
		Moves:         board.Moves(),
		Pushes:        board.Pushes(),
		History:       history,
		StartedAt:     s.StartedAt.Time.UnixMilli(),
		CompletedAt:   completedAt,
	}
}

func (dto SolveDTO) TimeLimitDuration() time.Duration {
	return time.Duration(dto.TimeLimit * float64(time.Second))
}
