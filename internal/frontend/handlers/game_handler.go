// Package handlers runs word grid games over Telnet connections.
package handlers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wordgrid/internal/frontend/telnet"
	"github.com/cory-johannsen/wordgrid/internal/game/command"
	"github.com/cory-johannsen/wordgrid/internal/game/session"
)

// GameHandler implements telnet.SessionHandler. Each connection plays its own
// session, which is discarded when the client disconnects.
type GameHandler struct {
	sessions    *session.Manager
	registry    *command.Registry
	defaultSeed string
	logger      *zap.Logger
}

// NewGameHandler creates a GameHandler. New connections start from
// defaultSeed, or from the current time when it is empty.
//
// Precondition: sessions and logger must be non-nil.
func NewGameHandler(sessions *session.Manager, defaultSeed string, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		sessions:    sessions,
		registry:    command.DefaultRegistry(),
		defaultSeed: defaultSeed,
		logger:      logger,
	}
}

// HandleSession plays one game until the client quits or disconnects.
//
// Postcondition: The session is removed from the manager. Returns nil on quit.
func (h *GameHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	sess, err := h.sessions.Create(h.defaultSeed)
	if err != nil {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Failed to start a game. Please try again later."))
		return err
	}
	defer func() {
		_ = h.sessions.Remove(sess.ID())
	}()

	logger := h.logger.With(
		zap.String("session", sess.ID()),
		zap.String("remote_addr", conn.RemoteAddr().String()),
	)
	logger.Info("game started", zap.String("seed", sess.SeedInput()))

	v := sess.Snapshot()
	if err := conn.WriteString(strings.ReplaceAll(welcomeBanner, "\n", "\r\n") + RenderBoard(v)); err != nil {
		return fmt.Errorf("writing welcome: %w", err)
	}
	if err := conn.WritePrompt(prompt(v)); err != nil {
		return fmt.Errorf("writing initial prompt: %w", err)
	}

	err = h.commandLoop(ctx, conn, sess, logger)
	logger.Info("game ended",
		zap.Int("words", len(sess.ScoredWords())),
		zap.Int("score", sess.TotalScore()),
	)
	return err
}

// commandLoop reads lines, dispatches commands and re-prompts.
//
// Postcondition: Returns nil on quit, ctx.Err() on cancellation, or a wrapped I/O error.
func (h *GameHandler) commandLoop(ctx context.Context, conn *telnet.Conn, sess *session.Session, logger *zap.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := conn.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading input: %w", err)
		}

		parsed := command.Parse(line)
		if parsed.Command == "" {
			if err := conn.WritePrompt(prompt(sess.Snapshot())); err != nil {
				return fmt.Errorf("writing prompt: %w", err)
			}
			continue
		}

		res, err := h.dispatch(parsed, conn, sess, logger)
		if err != nil {
			return err
		}
		if res.quit {
			return nil
		}
		if err := conn.WritePrompt(prompt(sess.Snapshot())); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}
	}
}

func (h *GameHandler) dispatch(parsed command.ParseResult, conn *telnet.Conn, sess *session.Session, logger *zap.Logger) (gameResult, error) {
	cmd, ok := h.registry.Resolve(parsed.Command)
	if !ok {
		return gameResult{}, writeError(conn, fmt.Sprintf("Unknown command %q. Type help for a list of commands.", parsed.Command))
	}
	fn, ok := gameHandlerMap[cmd.Handler]
	if !ok {
		logger.Error("command has no handler", zap.String("command", cmd.Name))
		return gameResult{}, writeError(conn, fmt.Sprintf("%s is not available.", cmd.Name))
	}

	logger.Debug("command", zap.String("command", cmd.Name), zap.Strings("args", parsed.Args))
	return fn(&gameContext{
		cmd:      cmd,
		parsed:   parsed,
		conn:     conn,
		sess:     sess,
		registry: h.registry,
		logger:   logger,
	})
}
