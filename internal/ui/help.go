// internal/ui/help.go
package ui

import "strings"

func helpText() string {
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Global", [][2]string{
			{"tab / shift+tab", "cycle panes"},
			{"esc", "back to normal mode, cancel"},
			{":", "command line"},
			{"?", "this help"},
			{"ctrl+c / :q", "quit"},
		}},
		{"Browser", [][2]string{
			{"j / k", "move"},
			{"enter / l", "connect, descend"},
			{"esc / h", "ascend (leaving tables clears the schema)"},
			{"o", "new connection"},
			{"e", "table columns"},
			{"X", "disconnect"},
			{"dd", "delete saved connection"},
			{"r", "reload list"},
		}},
		{"Editor", [][2]string{
			{"i a o O", "insert mode"},
			{"w b 0 $ gg G", "motions"},
			{"dd / yy / p", "delete, yank, paste lines"},
			{"u", "undo last edit"},
			{"v", "select lines"},
			{"enter / ctrl+e", "run statement under cursor"},
			{"ctrl+r", "run whole buffer"},
		}},
		{"Results", [][2]string{
			{"h j k l", "move between cells"},
			{"e / enter", "edit cell"},
			{"dd", "mark row deleted"},
			{"ctrl+n", "new row"},
			{"yy", "yank row"},
			{"ctrl+s", "commit pending edits"},
			{"r / :refresh", "refetch table"},
		}},
		{"Commands", [][2]string{
			{":open <path>", "open a SQLite file"},
			{":mysql <dsn>", "connect to MySQL"},
			{":mariadb <dsn>", "connect to MariaDB"},
			{":exec [sql]", "run sql, or statement under cursor"},
			{":clear", "leave the schema context"},
			{":disconnect [name]", "close a connection"},
			{":history [text]", "statement history"},
		}},
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keys"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(PromptStyle.Render(s.title))
		b.WriteString("\n")
		for _, k := range s.keys {
			b.WriteString("  ")
			b.WriteString(SelectedItemStyle.Render(pad(k[0], 20)))
			b.WriteString(MetaStyle.Render(k[1]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(MetaStyle.Render("any key to close"))
	return b.String()
}
