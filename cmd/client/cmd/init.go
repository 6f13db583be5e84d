package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/class"
	"parsedash/cmd/client/cmd/cli"
	"parsedash/cmd/client/cmd/function"
	"parsedash/cmd/client/cmd/object"
	"parsedash/cmd/client/cmd/push"
	"parsedash/cmd/client/cmd/server"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Инициализировать клиент parsedash",
	Long: `Команда init выполняет первоначальную настройку клиента:
	1. Создает файл ключа, которым шифруются мастер-ключи профилей
	2. Создает локальную базу профилей
	3. Показывает сохраненные профили

Парольная фраза защищает мастер-ключи всех профилей. Без нее
сохраненные профили придется добавить заново.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		profiles, err := env.App.ListProfiles(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка чтения профилей: %w", err)
		}

		env.Success("Хранилище профилей готово")
		if len(profiles) > 0 {
			fmt.Fprintf(env.Out, "Сохранено профилей: %d\n", len(profiles))
			return nil
		}

		fmt.Fprintln(env.Out)
		fmt.Fprintln(env.Out, "Что дальше:")
		fmt.Fprintln(env.Out, "1. Добавьте сервер: parsedash server add dev --url http://localhost:1337/parse --app-id APP --master-key KEY")
		fmt.Fprintln(env.Out, "2. Сделайте его активным: parsedash server use dev")
		fmt.Fprintln(env.Out, "3. Посмотрите классы: parsedash class list")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	rootCmd.AddCommand(server.ServerCmd)
	server.ServerCmd.AddCommand(server.AddCmd)
	server.ServerCmd.AddCommand(server.ListCmd)
	server.ServerCmd.AddCommand(server.RemoveCmd)
	server.ServerCmd.AddCommand(server.UseCmd)
	server.ServerCmd.AddCommand(server.CheckCmd)

	rootCmd.AddCommand(class.ClassCmd)
	class.ClassCmd.AddCommand(class.ListCmd)
	class.ClassCmd.AddCommand(class.ShowCmd)
	class.ClassCmd.AddCommand(class.DropCmd)

	rootCmd.AddCommand(object.ObjectCmd)
	object.ObjectCmd.AddCommand(object.ListCmd)
	object.ObjectCmd.AddCommand(object.CountCmd)
	object.ObjectCmd.AddCommand(object.GetCmd)
	object.ObjectCmd.AddCommand(object.CreateCmd)
	object.ObjectCmd.AddCommand(object.SetCmd)
	object.ObjectCmd.AddCommand(object.DeleteCmd)
	object.ObjectCmd.AddCommand(object.UploadCmd)

	rootCmd.AddCommand(function.FunctionCmd)
	function.FunctionCmd.AddCommand(function.RunCmd)
	function.FunctionCmd.AddCommand(function.SaveCmd)
	function.FunctionCmd.AddCommand(function.SnippetsCmd)

	rootCmd.AddCommand(push.PushCmd)
}
