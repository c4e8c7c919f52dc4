// Package prompt provides the interactive prompts used by the CLI when it
// runs on a terminal.
//
// Available prompts:
//   - [Confirm]: yes/no confirmation before destructive actions
//   - [TextInput]: single-line input with inline validation
//   - [Select]: filterable single selection from a list
package prompt
