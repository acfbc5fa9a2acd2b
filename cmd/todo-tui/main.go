package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lazygcdevs/todo-tui/internal/api"
	"github.com/lazygcdevs/todo-tui/internal/app"
	"github.com/lazygcdevs/todo-tui/internal/credential"
	"github.com/lazygcdevs/todo-tui/internal/logging"
	"github.com/lazygcdevs/todo-tui/internal/model"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String(
		"config", model.DefaultConfigPath(), "path to the config file",
	)
	serverURL := flag.String(
		"server", "", "override the server base URL from the config",
	)
	session := flag.String(
		"session", "",
		"store a session cookie value in the system keyring and exit",
	)
	flag.Parse()

	if *session != "" {
		if err := credential.Set(credential.SessionKey, *session); err != nil {
			return fmt.Errorf("storing session: %w", err)
		}
		fmt.Println("Session stored.")
		return nil
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = model.DefaultLogPath()
	}
	logFile, err := logging.Setup(logPath, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	baseURL := cfg.Server.BaseURL
	if *serverURL != "" {
		baseURL = *serverURL
	}

	sess, err := credential.Get(credential.SessionKey)
	if err != nil {
		// The server decides what an unauthenticated client may do;
		// a 401 surfaces in the UI as a sign-in hint.
		log.Warn("no stored session", "err", err)
		sess = ""
	}

	client, err := api.NewClient(
		baseURL, sess, time.Duration(cfg.Server.TimeoutSec)*time.Second,
	)
	if err != nil {
		return err
	}

	p := tea.NewProgram(app.New(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	return nil
}
