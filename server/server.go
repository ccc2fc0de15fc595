// Package server exposes the game engine over a WebSocket endpoint. Each
// connection gets its own engine worker goroutine, so concurrent clients
// analyze independent games.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"fourline/engine"
	"fourline/game"
)

type Server struct {
	config   Config
	upgrader websocket.Upgrader
}

func New(config Config) *Server {
	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	log.Info().Str("addr", s.config.Addr).Msg("listening")
	return http.ListenAndServe(s.config.Addr, mux)
}

// request is one client command. Position rows are listed top-down, the way
// a board is drawn, with 0 empty, 1 player one and 2 player two.
type request struct {
	Type     string  `json:"type"`
	Column   int     `json:"column,omitempty"`
	Turn     int     `json:"turn,omitempty"`
	States   int     `json:"states,omitempty"`
	Position [][]int `json:"position,omitempty"`
}

type response struct {
	Type      string            `json:"type"`
	OK        bool              `json:"ok"`
	Error     string            `json:"error,omitempty"`
	Position  [][]int           `json:"position,omitempty"`
	Turn      int               `json:"turn,omitempty"`
	Outcome   string            `json:"outcome,omitempty"`
	Generated int               `json:"generated,omitempty"`
	Scores    map[int]int64     `json:"scores,omitempty"`
	WinRates  map[int]float64   `json:"win_rates,omitempty"`
	Depth     int               `json:"depth,omitempty"`
	Nodes     int               `json:"nodes,omitempty"`
	Memory    int               `json:"memory,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	worker := engine.NewWorker(engine.NewGame())
	go worker.Run(ctx)

	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("client connected")
	for {
		var req request
		if err := conn.ReadJSON(&req); err != nil {
			log.Info().Str("remote", conn.RemoteAddr().String()).Msg("client disconnected")
			return
		}
		if err := conn.WriteJSON(s.dispatch(worker, req)); err != nil {
			return
		}
	}
}

// dispatch runs one command against the connection's engine. Commands run
// on the worker goroutine; only grow is asynchronous.
func (s *Server) dispatch(worker *engine.Worker, req request) response {
	resp := response{Type: req.Type, OK: true}

	switch req.Type {
	case "new_game":
		worker.Do(func(m *engine.GameManager) {
			*m = *engine.NewGame()
			s.fillPosition(&resp, m)
		})

	case "load":
		grid, turn, err := positionToGrid(req.Position, req.Turn)
		if err != nil {
			return fail(resp, err)
		}
		var loadErr error
		worker.Do(func(m *engine.GameManager) {
			loaded, err := engine.StartFromPosition(grid, turn)
			if err != nil {
				loadErr = err
				return
			}
			*m = *loaded
			s.fillPosition(&resp, m)
		})
		if loadErr != nil {
			return fail(resp, loadErr)
		}

	case "position":
		worker.Do(func(m *engine.GameManager) {
			s.fillPosition(&resp, m)
		})

	case "generate":
		states := req.States
		if states <= 0 {
			states = s.config.GrowBudget
		}
		worker.Do(func(m *engine.GameManager) {
			resp.Generated = m.TryGenerateStates(states)
		})

	case "grow":
		states := req.States
		if states <= 0 {
			states = s.config.GrowBudget
		}
		worker.Grow(states)

	case "explore":
		budget := time.Duration(s.config.ExploreBudgetMs) * time.Millisecond
		worker.Do(func(m *engine.GameManager) {
			m.ExploreFor(budget)
			resp.WinRates = m.RolloutScores()
		})

	case "move":
		var moveErr error
		worker.Do(func(m *engine.GameManager) {
			moveErr = m.MakeMove(req.Column)
			s.fillPosition(&resp, m)
		})
		if moveErr != nil {
			return fail(resp, moveErr)
		}

	case "scores":
		worker.Do(func(m *engine.GameManager) {
			resp.Scores = m.MoveScores()
		})

	case "win_rates":
		worker.Do(func(m *engine.GameManager) {
			resp.WinRates = m.RolloutScores()
		})

	case "size":
		worker.Do(func(m *engine.GameManager) {
			size := m.Size()
			resp.Depth = size.Depth
			resp.Nodes = size.Nodes
			resp.Memory = size.Memory
		})

	default:
		resp.OK = false
		resp.Error = "unknown command type"
	}

	return resp
}

func (s *Server) fillPosition(resp *response, m *engine.GameManager) {
	resp.Position = gridToPosition(m.GetPosition())
	resp.Turn = pieceToInt(m.Turn())
	resp.Outcome = m.IsGameOver().String()
}

func fail(resp response, err error) response {
	resp.OK = false
	resp.Error = err.Error()
	return resp
}

func pieceToInt(piece game.Piece) int {
	if piece == game.PlayerTwo {
		return 2
	}
	return 1
}

// gridToPosition reverses the engine's bottom-up rows into drawing order.
func gridToPosition(grid [game.Rows][game.Columns]uint8) [][]int {
	position := make([][]int, game.Rows)
	for row := 0; row < game.Rows; row++ {
		cells := make([]int, game.Columns)
		for col := 0; col < game.Columns; col++ {
			cells[col] = int(grid[game.Rows-1-row][col])
		}
		position[row] = cells
	}
	return position
}

func positionToGrid(position [][]int, turn int) ([game.Rows][game.Columns]uint8, game.Piece, error) {
	var grid [game.Rows][game.Columns]uint8
	if len(position) != game.Rows {
		return grid, 0, errors.Errorf("expected %d rows, got %d", game.Rows, len(position))
	}
	for row, cells := range position {
		if len(cells) != game.Columns {
			return grid, 0, errors.Errorf("row %d: expected %d columns, got %d", row, game.Columns, len(cells))
		}
		for col, cell := range cells {
			if cell < 0 || cell > 2 {
				return grid, 0, errors.Errorf("row %d column %d: invalid cell %d", row, col, cell)
			}
			grid[game.Rows-1-row][col] = uint8(cell)
		}
	}

	switch turn {
	case 1:
		return grid, game.PlayerOne, nil
	case 2:
		return grid, game.PlayerTwo, nil
	default:
		return grid, 0, errors.Errorf("invalid turn %d", turn)
	}
}
