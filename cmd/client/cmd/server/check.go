package server

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
)

var checkAll bool

var CheckCmd = &cobra.Command{
	Use:   "check [name]",
	Short: "Проверить доступность сервера",
	Long: `Выполняет GET /health от имени профиля. Без аргумента проверяется активный профиль,
с --all опрашиваются все профили одновременно.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		if checkAll {
			return checkAllProfiles(cmd, env)
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
		} else {
			p, err := env.App.ActiveProfile()
			if err != nil {
				return err
			}
			name = p.Name
		}

		if err := env.App.CheckProfile(cmd.Context(), name); err != nil {
			return err
		}

		env.Success("Сервер профиля %s доступен", name)
		return nil
	},
}

func init() {
	CheckCmd.Flags().BoolVar(&checkAll, "all", false, "Проверить все профили")
}

func checkAllProfiles(cmd *cobra.Command, env *cli.Env) error {
	statuses, err := env.App.CheckAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("ошибка получения профилей: %w", err)
	}

	failed := 0
	for _, st := range statuses {
		if st.Err != nil {
			failed++
		}
	}

	if env.Structured() {
		if err := env.Print(statuses); err != nil {
			return err
		}
	} else {
		w := cli.NewTable(env.Out, "Имя", "Сервер", "Состояние")
		for _, st := range statuses {
			state := "ok"
			if st.Err != nil {
				state = st.Error
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", st.Name, cli.Truncate(st.ServerURL, 48), state)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("недоступно серверов: %d из %d", failed, len(statuses))
	}
	return nil
}
