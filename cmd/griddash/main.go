package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/gridbot/griddash/internal/api"
	"github.com/gridbot/griddash/internal/dashboard"
	"github.com/gridbot/griddash/internal/domain"
	"github.com/gridbot/griddash/pkg/config"
	"github.com/gridbot/griddash/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径 (.yaml/.yml/.json)")
	baseURL := flag.String("base-url", "", "后端地址，覆盖配置文件和环境变量")
	noAltScreen := flag.Bool("no-alt-screen", false, "不使用备用屏幕（调试用）")
	flag.Parse()

	// .env 不存在不算错误
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}

	// TUI 模式日志只进文件，写终端会画花屏幕
	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		Console:    false,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "❌ 初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	// 启用 bubbletea 调试日志
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	client := api.NewClient(cfg.BaseURL)
	model := dashboard.NewModel(client, dashboard.Options{
		BaseURL:      cfg.BaseURL,
		PollInterval: cfg.PollInterval,
		Params: domain.GridParams{
			Symbol:      cfg.Grid.Symbol,
			Positions:   cfg.Grid.Positions,
			TotalAmount: cfg.Grid.TotalAmount,
			MinDistance: cfg.Grid.MinDistance,
			MaxDistance: cfg.Grid.MaxDistance,
		},
	})

	var opts []tea.ProgramOption
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	logger.Infof("面板启动: base_url=%s poll_interval=%s", cfg.BaseURL, cfg.PollInterval)

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		log.Fatalf("运行程序失败: %v", err)
	}
}
