package server

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список профилей",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		profiles, err := env.App.ListProfiles(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения профилей: %w", err)
		}

		if env.Structured() {
			return env.Print(profiles)
		}

		if len(profiles) == 0 {
			fmt.Fprintln(env.Out, "Профили не найдены")
			return nil
		}

		active := ""
		if p, err := env.App.ActiveProfile(); err == nil {
			active = p.Name
		}

		w := cli.NewTable(env.Out, "", "Имя", "Сервер", "Приложение", "Обновлен")
		for _, p := range profiles {
			mark := ""
			if p.Name == active {
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				mark,
				p.Name,
				cli.Truncate(p.ServerURL, 48),
				p.AppID,
				p.UpdatedAt.Format("2006-01-02"),
			)
		}
		return w.Flush()
	},
}
