package server

import (
	"github.com/spf13/cobra"
)

// ServerCmd - родительская команда для профилей серверов
var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Управление профилями серверов",
	Long:  `Добавление, просмотр, удаление и выбор профилей Parse Server.`,
}
