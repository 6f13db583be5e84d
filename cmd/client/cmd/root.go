package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"
	"golang.org/x/term"

	"parsedash/cmd/client/cmd/cli"
	"parsedash/internal/app/client"
	"parsedash/internal/app/client/config"
	"parsedash/internal/domain/profile"
	"parsedash/internal/utils/logger"
)

var (
	cfgFile      string
	debug        bool
	jsonOutput   bool
	outputFormat string
	serverName   string

	app *client.App
)

var rootCmd = &cobra.Command{
	Use:   "parsedash",
	Short: "parsedash - консоль администратора для Parse Server",
	Long: `parsedash — клиент командной строки для администрирования Parse Server.

Позволяет хранить профили серверов, просматривать схемы классов,
искать, редактировать и удалять объекты, вызывать облачные функции
и отправлять push-уведомления.

Мастер-ключи профилей хранятся локально в зашифрованном виде.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	format, err := cli.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	if jsonOutput {
		format = cli.FormatJSON
	}

	var log *slog.Logger
	if debug {
		log = logger.New("local")
	} else {
		log = logger.New(cfg.Env)
	}

	passphrase, err := readPassphrase(cfg)
	if err != nil {
		return err
	}

	app, err = client.New(cfg, log, passphrase)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	if err := app.Activate(cmd.Context(), serverName); err != nil && !errors.Is(err, profile.ErrNoActive) {
		return fmt.Errorf("ошибка выбора профиля: %w", err)
	}

	cmd.SetContext(cli.WithEnv(cmd.Context(), &cli.Env{
		App:    app,
		Log:    log,
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		Format: format,
	}))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		viper.AddConfigPath(filepath.Join(home, ".parsedash"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// Конфиг не найден, используем значения по умолчанию
	}

	return config.Load()
}

// readPassphrase берет парольную фразу из PASSPHRASE или спрашивает ее.
// При первом запуске фразу нужно ввести дважды.
func readPassphrase(cfg *config.Config) (string, error) {
	if cfg.Passphrase != "" {
		return cfg.Passphrase, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("парольная фраза не задана: укажите PASSPHRASE")
	}

	fmt.Fprint(os.Stderr, "Парольная фраза: ")
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения парольной фразы: %w", err)
	}

	if _, err := os.Stat(cfg.KeyPath); errors.Is(err, os.ErrNotExist) {
		fmt.Fprint(os.Stderr, "Повторите парольную фразу: ")
		confirm, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения парольной фразы: %w", err)
		}
		if string(passphrase) != string(confirm) {
			return "", fmt.Errorf("парольные фразы не совпадают")
		}
	}

	return string(passphrase), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "формат вывода (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&serverName, "server", "", "профиль сервера для этого запуска")
}
