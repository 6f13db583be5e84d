package object

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
	"parsedash/internal/app/client"
)

var uploadContentType string

var UploadCmd = &cobra.Command{
	Use:   "upload [class] [id] [field] [file]",
	Short: "Загрузить файл в поле объекта",
	Long: `Загружает файл на сервер и записывает ссылку на него в файловое поле объекта.`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[3])
		if err != nil {
			return fmt.Errorf("ошибка чтения файла: %w", err)
		}

		file, res := env.App.Client().UploadFile(cmd.Context(), client.FileUpload{
			ClassName:   args[0],
			ObjectID:    args[1],
			Field:       args[2],
			Name:        filepath.Base(args[3]),
			ContentType: uploadContentType,
			Data:        data,
		})
		if err := res.Err(); err != nil {
			return fmt.Errorf("ошибка загрузки файла: %w", err)
		}

		if env.Structured() {
			return env.Print(file)
		}
		env.Success("Файл %s загружен: %s", file.Name, file.URL)
		return nil
	},
}

func init() {
	UploadCmd.Flags().StringVar(&uploadContentType, "content-type", "", "тип содержимого (по умолчанию определяется по данным)")
}
