package push

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"parsedash/cmd/client/cmd/cli"
	"parsedash/internal/domain/push"
)

var (
	channels []string
	where    string
	alert    string
	title    string
	badge    string
	sound    string
	data     string
	pushAt   string
	expireIn time.Duration
)

// PushCmd отправляет push-уведомление
var PushCmd = &cobra.Command{
	Use:   "push",
	Short: "Отправить push-уведомление",
	Long: `Отправляет уведомление через POST /push.

Адресаты задаются каналами (--channel) или запросом по установкам (--where).
Дополнительные ключи полезной нагрузки передаются через --data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		n := push.Notification{
			Channels: channels,
			Data: push.Data{
				Alert: alert,
				Title: title,
				Badge: badge,
				Sound: sound,
			},
		}

		if where != "" {
			if err := json.Unmarshal([]byte(where), &n.Where); err != nil {
				return fmt.Errorf("--where должен быть JSON-объектом: %w", err)
			}
		}
		if data != "" {
			if err := json.Unmarshal([]byte(data), &n.Data.Extra); err != nil {
				return fmt.Errorf("--data должен быть JSON-объектом: %w", err)
			}
		}
		if pushAt != "" {
			t, err := time.Parse(time.RFC3339, pushAt)
			if err != nil {
				return fmt.Errorf("--at ожидает время RFC3339: %w", err)
			}
			n.PushTime = &t
		}
		if expireIn > 0 {
			t := time.Now().Add(expireIn).UTC()
			n.ExpirationTime = &t
		}

		if err := env.App.Client().SendPush(cmd.Context(), n); err != nil {
			return err
		}

		env.Success("Уведомление отправлено")
		return nil
	},
}

func init() {
	PushCmd.Flags().StringArrayVarP(&channels, "channel", "c", nil, "канал получателей")
	PushCmd.Flags().StringVar(&where, "where", "", "запрос по установкам в виде JSON")
	PushCmd.Flags().StringVarP(&alert, "alert", "m", "", "текст уведомления")
	PushCmd.Flags().StringVar(&title, "title", "", "заголовок")
	PushCmd.Flags().StringVar(&badge, "badge", "", "значение бейджа (число или Increment)")
	PushCmd.Flags().StringVar(&sound, "sound", "", "звук")
	PushCmd.Flags().StringVar(&data, "data", "", "дополнительные ключи в виде JSON")
	PushCmd.Flags().StringVar(&pushAt, "at", "", "время отправки (RFC3339)")
	PushCmd.Flags().DurationVar(&expireIn, "expire-in", 0, "время жизни уведомления")
}
