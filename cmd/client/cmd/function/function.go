package function

import (
	"github.com/spf13/cobra"
)

// FunctionCmd - родительская команда для облачных функций
var FunctionCmd = &cobra.Command{
	Use:     "function",
	Aliases: []string{"fn"},
	Short:   "Облачные функции",
	Long:    `Вызов облачных функций и сохраненные вызовы (сниппеты) для активного профиля.`,
}
