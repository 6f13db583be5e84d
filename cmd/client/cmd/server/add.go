package server

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
	"parsedash/internal/domain/profile"
)

var (
	addURL       string
	addAppID     string
	addMasterKey string
	addIcon      string
	addUpdate    bool
	addUse       bool
)

var AddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Добавить профиль сервера",
	Long: `Сохраняет адрес сервера, идентификатор приложения и мастер-ключ.

Мастер-ключ шифруется перед записью в локальную базу.
С флагом --update изменяет существующий профиль.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		var icon []byte
		if addIcon != "" {
			if icon, err = os.ReadFile(addIcon); err != nil {
				return fmt.Errorf("ошибка чтения иконки: %w", err)
			}
		}

		if addUpdate {
			p, err := env.App.GetProfile(ctx, args[0])
			if err != nil {
				return err
			}
			if addURL != "" {
				p.ServerURL = addURL
			}
			if addAppID != "" {
				p.AppID = addAppID
			}
			if addMasterKey != "" {
				p.MasterKey = addMasterKey
			}
			if icon != nil {
				p.Icon = icon
			}
			if err := env.App.UpdateProfile(ctx, p); err != nil {
				return describe(err)
			}
			env.Success("Профиль %s обновлен", p.Name)
		} else {
			p := &profile.Profile{
				Name:      args[0],
				ServerURL: addURL,
				AppID:     addAppID,
				MasterKey: addMasterKey,
				Icon:      icon,
			}
			if err := env.App.AddProfile(ctx, p); err != nil {
				return describe(err)
			}
			env.Success("Профиль %s добавлен", p.Name)
		}

		if addUse {
			if err := env.App.UseProfile(ctx, args[0]); err != nil {
				return err
			}
			env.Success("Профиль %s активен", args[0])
		}
		return nil
	},
}

// describe добавляет имя поля к ошибке валидации
func describe(err error) error {
	var domainErr *profile.DomainError
	if errors.As(err, &domainErr) && domainErr.Field != "" {
		return fmt.Errorf("%s: %w", domainErr.Field, err)
	}
	return err
}

func init() {
	AddCmd.Flags().StringVar(&addURL, "url", "", "адрес сервера, например https://example.com/parse")
	AddCmd.Flags().StringVar(&addAppID, "app-id", "", "идентификатор приложения")
	AddCmd.Flags().StringVar(&addMasterKey, "master-key", "", "мастер-ключ")
	AddCmd.Flags().StringVar(&addIcon, "icon", "", "файл иконки профиля")
	AddCmd.Flags().BoolVar(&addUpdate, "update", false, "изменить существующий профиль")
	AddCmd.Flags().BoolVar(&addUse, "use", false, "сразу сделать профиль активным")
}
