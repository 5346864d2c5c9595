package handlers

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wordgrid/internal/frontend/telnet"
	"github.com/cory-johannsen/wordgrid/internal/game/command"
	"github.com/cory-johannsen/wordgrid/internal/game/session"
)

// gameContext carries all inputs a command handler needs.
type gameContext struct {
	cmd      *command.Command
	parsed   command.ParseResult
	conn     *telnet.Conn
	sess     *session.Session
	registry *command.Registry
	logger   *zap.Logger
}

// gameResult is returned by every command handler. quit ends the session.
type gameResult struct {
	quit bool
}

// gameHandlerFunc is the signature for all command handlers. A returned
// error is fatal to the connection.
type gameHandlerFunc func(gctx *gameContext) (gameResult, error)

// GameHandlers returns the map from Handler constant to handler function.
// Exported so TestAllCommandHandlersAreWired can verify completeness.
func GameHandlers() map[string]gameHandlerFunc {
	return gameHandlerMap
}

// gameHandlerMap is the single source of truth for Telnet command dispatch.
// To add a new command: add a Handler constant to commands.go AND add an entry here.
var gameHandlerMap = map[string]gameHandlerFunc{
	command.HandlerLook:   handleLook,
	command.HandlerSelect: handleSelect,
	command.HandlerBack:   handleBack,
	command.HandlerClear:  handleClear,
	command.HandlerSubmit: handleSubmit,
	command.HandlerWords:  handleWords,
	command.HandlerNew:    handleNew,
	command.HandlerSeed:   handleSeed,
	command.HandlerHelp:   handleHelp,
	command.HandlerQuit:   handleQuit,
}

func writeError(conn *telnet.Conn, msg string) error {
	if err := conn.WriteLine(telnet.Colorize(telnet.Red, msg)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func write(conn *telnet.Conn, text string) error {
	if err := conn.WriteLine(text); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func handleLook(gctx *gameContext) (gameResult, error) {
	return gameResult{}, write(gctx.conn, RenderBoard(gctx.sess.Snapshot()))
}

// handleSelect applies each tile in order and stops at the first rejection.
func handleSelect(gctx *gameContext) (gameResult, error) {
	if len(gctx.parsed.Args) == 0 {
		return gameResult{}, writeError(gctx.conn, "Select which tile? e.g. select b2")
	}
	side := gctx.sess.Grid().Side
	tiles, err := command.ParseTiles(gctx.parsed.Args, side)
	if err != nil {
		return gameResult{}, writeError(gctx.conn, err.Error())
	}
	for _, i := range tiles {
		outcome := gctx.sess.Select(i)
		if !outcome.Accepted() {
			if err := write(gctx.conn, RenderSelectRejection(command.TileLabel(i, side), outcome)); err != nil {
				return gameResult{}, err
			}
			break
		}
	}
	return handleLook(gctx)
}

func handleBack(gctx *gameContext) (gameResult, error) {
	if !gctx.sess.Deselect() {
		return gameResult{}, writeError(gctx.conn, "Nothing selected.")
	}
	return handleLook(gctx)
}

func handleClear(gctx *gameContext) (gameResult, error) {
	gctx.sess.Clear()
	return handleLook(gctx)
}

func handleSubmit(gctx *gameContext) (gameResult, error) {
	res := gctx.sess.Submit()
	gctx.logger.Debug("word submitted",
		zap.String("word", res.Word),
		zap.Bool("valid", res.Valid),
		zap.String("reason", res.Reason),
		zap.Int("score", res.Score),
	)
	if err := write(gctx.conn, RenderSubmitResult(res)); err != nil {
		return gameResult{}, err
	}
	return handleLook(gctx)
}

func handleWords(gctx *gameContext) (gameResult, error) {
	return gameResult{}, write(gctx.conn, RenderScoredWords(gctx.sess.ScoredWords(), gctx.sess.TotalScore()))
}

func handleNew(gctx *gameContext) (gameResult, error) {
	if err := gctx.sess.Reset(gctx.parsed.RawArgs); err != nil {
		gctx.logger.Error("resetting session", zap.Error(err))
		return gameResult{}, writeError(gctx.conn, "Could not start a new game.")
	}
	gctx.logger.Info("game restarted", zap.String("seed", gctx.sess.SeedInput()))
	if err := write(gctx.conn, RenderSeed(gctx.sess.Snapshot())); err != nil {
		return gameResult{}, err
	}
	return handleLook(gctx)
}

func handleSeed(gctx *gameContext) (gameResult, error) {
	return gameResult{}, write(gctx.conn, RenderSeed(gctx.sess.Snapshot()))
}

func handleHelp(gctx *gameContext) (gameResult, error) {
	return gameResult{}, write(gctx.conn, RenderHelp(gctx.registry))
}

func handleQuit(gctx *gameContext) (gameResult, error) {
	msg := telnet.Colorf(telnet.Cyan, "Final score: %d. Goodbye.", gctx.sess.TotalScore())
	return gameResult{quit: true}, write(gctx.conn, msg)
}
