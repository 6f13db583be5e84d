package class

import (
	"github.com/spf13/cobra"
)

// ClassCmd - родительская команда для схем классов
var ClassCmd = &cobra.Command{
	Use:   "class",
	Short: "Классы и их схемы",
	Long:  `Просмотр схем классов и удаление классов на активном сервере.`,
}
