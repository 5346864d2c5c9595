// Package command provides the command registry, parser, and built-in command definitions.
package command

// Categories for organizing commands.
const (
	CategoryBoard  = "board"
	CategoryWords  = "words"
	CategorySystem = "system"
)

// Handler identifiers mapping commands to session operations.
const (
	HandlerLook   = "look"
	HandlerSelect = "select"
	HandlerBack   = "back"
	HandlerClear  = "clear"
	HandlerSubmit = "submit"
	HandlerWords  = "words"
	HandlerNew    = "new"
	HandlerSeed   = "seed"
	HandlerHelp   = "help"
	HandlerQuit   = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument form, e.g. "select <tile>...". Empty when the
	// command takes no arguments.
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command (board, words, system).
	Category string
	// Handler maps to the session operation that runs the command.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Board commands
		{Name: "look", Aliases: []string{"l"}, Help: "Show the board and your current selection", Category: CategoryBoard, Handler: HandlerLook},
		{Name: "select", Aliases: []string{"s"}, Usage: "select <tile>...", Help: "Select tiles by label, e.g. select b2 c3; selecting the last tile again removes it", Category: CategoryBoard, Handler: HandlerSelect},
		{Name: "back", Aliases: []string{"b"}, Help: "Remove the last selected tile", Category: CategoryBoard, Handler: HandlerBack},
		{Name: "clear", Aliases: []string{"c"}, Help: "Clear the current selection", Category: CategoryBoard, Handler: HandlerClear},

		// Word commands
		{Name: "submit", Aliases: []string{"enter"}, Help: "Submit the selected word", Category: CategoryWords, Handler: HandlerSubmit},
		{Name: "words", Aliases: []string{"w"}, Help: "List scored words and your total", Category: CategoryWords, Handler: HandlerWords},

		// System commands
		{Name: "new", Aliases: []string{"n"}, Usage: "new [seed]", Help: "Start a new game, optionally from a seed", Category: CategorySystem, Handler: HandlerNew},
		{Name: "seed", Aliases: nil, Help: "Show the seed of the current game", Category: CategorySystem, Handler: HandlerSeed},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"q", "exit"}, Help: "Disconnect from the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}
