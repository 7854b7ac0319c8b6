package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MarcosLesca/dashboard-api/config"
	"github.com/MarcosLesca/dashboard-api/database"
	"github.com/MarcosLesca/dashboard-api/logger"
	"github.com/MarcosLesca/dashboard-api/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
	defer logger.CloseLogger()

	if err := database.InitDB(config.GetDBPath()); err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close database err:", err)
		}
	}()

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer(settings)
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals; SIGHUP restarts with fresh settings
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			settings, err := config.LoadSettings()
			if err != nil {
				log.Println(err)
				return
			}
			server = web.NewServer(settings)
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func showSettings() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("listen:          %q\n", settings.Listen)
	fmt.Printf("port:            %d\n", settings.Port)
	fmt.Printf("domain:          %q\n", settings.Domain)
	fmt.Printf("session max age: %d minutes\n", settings.SessionMaxAge)
	fmt.Printf("redis addr:      %q\n", settings.RedisAddr)
	fmt.Printf("db path:         %q\n", config.GetDBPath())
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   config.GetName(),
		Short: "Multi-tenant dashboard backend",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "setting",
		Short: "Show the effective settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSettings()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetVersion())
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
