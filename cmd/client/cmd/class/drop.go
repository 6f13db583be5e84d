package class

import (
	"fmt"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
	"parsedash/internal/app/client"
)

var dropForce bool

var DropCmd = &cobra.Command{
	Use:   "drop [class]",
	Short: "Удалить класс",
	Long: `Удаляет схему класса. Непустой класс удаляется только с флагом --force:
сначала удаляются все объекты, затем повторяется удаление схемы.
Если хотя бы один объект удалить не удалось, схема остается.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		job := env.App.NewPurgeJob(dropForce)
		if !env.Structured() {
			job.OnProgress = func(remaining int64) {
				if remaining%100 == 0 {
					fmt.Fprintf(env.Err, "Осталось объектов: %d\n", remaining)
				}
			}
		}

		report, err := job.Run(cmd.Context(), args[0])
		if err != nil {
			if client.IsCode(err, client.CodeClassNotEmpty) && !dropForce {
				env.Warn("Класс не пуст. Повторите с --force, чтобы удалить все объекты")
			}
			return err
		}

		if env.Structured() {
			return env.Print(report)
		}

		if report.Initial > 0 {
			env.Success("Удалено объектов: %d", report.DeleteCalls)
		}
		env.Success("Класс %s удален", report.ClassName)
		return nil
	},
}

func init() {
	DropCmd.Flags().BoolVar(&dropForce, "force", false, "удалить все объекты непустого класса")
}
