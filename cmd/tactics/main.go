// Package main runs one tactics round: a level is loaded, the turn machine is
// driven on its own goroutine, and either a terminal UI or the autopilot
// supplies player actions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tactics/internal/config"
	"github.com/cory-johannsen/tactics/internal/game/ai"
	"github.com/cory-johannsen/tactics/internal/game/level"
	"github.com/cory-johannsen/tactics/internal/game/turn"
	"github.com/cory-johannsen/tactics/internal/observability"
	"github.com/cory-johannsen/tactics/internal/render"
	"github.com/cory-johannsen/tactics/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	levelPath := flag.String("level", "", "level YAML file; overrides level.path")
	templatesDir := flag.String("enemies", "", "enemy template directory; overrides level.templates_dir")
	emoji := flag.Bool("emoji", false, "draw with emoji glyphs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *levelPath != "" {
		cfg.Level.Path = *levelPath
	}
	if *templatesDir != "" {
		cfg.Level.TemplatesDir = *templatesDir
	}
	if cfg.Render.Enabled && cfg.Logging.File == "" {
		cfg.Logging.File = "tactics.log"
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	machine, err := buildRound(logger, cfg)
	if err != nil {
		logger.Fatal("building round", zap.Error(err))
	}

	summaries := make(chan turn.Summary, 1)
	machine.Subscribe(func(n turn.Notice) {
		if n.Summary != nil {
			select {
			case summaries <- *n.Summary:
			default:
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lc := server.NewLifecycle(logger)
	autopilot := ai.NewAutopilot(logger)
	driverOpts := turn.DriverOptions{TickInterval: cfg.Turn.TickInterval}

	if cfg.Render.Enabled {
		screen, err := tcell.NewScreen()
		if err != nil {
			logger.Fatal("creating screen", zap.Error(err))
		}
		if err := screen.Init(); err != nil {
			logger.Fatal("initializing screen", zap.Error(err))
		}
		theme := render.ASCII
		if *emoji {
			theme = render.Emoji
		}
		renderer := render.NewRenderer(screen, theme)
		ctl := render.NewController(autopilot)
		driverOpts.OnFrame = func(m *turn.Machine) {
			ctl.Sync(m)
			renderer.Draw(m, ctl)
		}
		driver := turn.NewDriver(logger, machine, driverOpts)
		lc.Add("turn-driver", driver)
		lc.Add("terminal-input", inputService(screen, driver, ctl, cancel))
	} else {
		driverOpts.BeforeTick = func(m *turn.Machine) {
			for _, d := range autopilot.Plan(m.Table(), m.Grid()) {
				if err := m.SetAction(d.Actor, d.Action); err != nil {
					logger.Error("submitting autopilot action", zap.Error(err))
				}
			}
			m.EndTurn()
		}
		driver := turn.NewDriver(logger, machine, driverOpts)
		lc.Add("turn-driver", driver)
		lc.Add("round-watch", untilDone(driver))
	}

	logger.Info("round ready",
		zap.String("round_id", machine.ID().String()),
		zap.Bool("render", cfg.Render.Enabled),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lc.Run(ctx); err != nil {
		logger.Error("round aborted", zap.Error(err))
	}

	select {
	case s := <-summaries:
		fmt.Println(render.Banner(s))
	default:
		fmt.Println("Round abandoned.")
	}
}

// buildRound loads the level and enemy templates and assembles the machine.
func buildRound(logger *zap.Logger, cfg config.Config) (*turn.Machine, error) {
	templates := level.Templates{}
	if cfg.Level.TemplatesDir != "" {
		var err error
		templates, err = level.LoadTemplates(cfg.Level.TemplatesDir)
		if err != nil {
			return nil, fmt.Errorf("loading enemy templates: %w", err)
		}
		logger.Info("loaded enemy templates", zap.Int("count", len(templates)))
	}

	lvl, err := level.LoadFromFile(cfg.Level.Path)
	if err != nil {
		return nil, fmt.Errorf("loading level: %w", err)
	}

	tbl, skipped, err := level.Populate(logger, lvl, templates, level.Defaults{
		PlayerMaxHealth: cfg.Combat.PlayerMaxHealth,
		PlayerMaxMagika: cfg.Combat.PlayerMaxMagika,
		PlayerMoveSpeed: cfg.Combat.PlayerMoveSpeed,
		EnemyMaxHealth:  cfg.Combat.EnemyMaxHealth,
		EnemyMoveSpeed:  cfg.Combat.EnemyMoveSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("populating level: %w", err)
	}
	logger.Info("level loaded",
		zap.String("level", lvl.ID),
		zap.Int("combatants", tbl.Len()),
		zap.Int("skipped_spawns", len(skipped)),
	)

	planner := ai.NewPlanner(logger, cfg.Combat.RetreatHealthThreshold)
	return turn.NewMachine(logger, tbl, lvl.Grid, planner, turn.Options{
		AnimationDuration: cfg.Turn.AnimationDuration,
		MaxTurns:          cfg.Turn.MaxTurns,
		Damage: turn.Damage{
			Player: cfg.Combat.PlayerAttackDamage,
			Enemy:  cfg.Combat.EnemyAttackDamage,
		},
	}), nil
}

// inputService polls terminal events and forwards keys to the driver goroutine.
// Stopping it tears down the screen, which unblocks PollEvent.
func inputService(screen tcell.Screen, driver *turn.Driver, ctl *render.Controller, quit context.CancelFunc) server.Service {
	return &server.FuncService{
		StartFn: func() error {
			for {
				switch ev := screen.PollEvent().(type) {
				case nil:
					return nil
				case *tcell.EventResize:
					screen.Sync()
				case *tcell.EventKey:
					driver.Do(func(m *turn.Machine) {
						if ctl.HandleKey(m, ev) {
							quit()
						}
					})
				}
			}
		},
		StopFn: screen.Fini,
	}
}

// untilDone finishes when the round has a summary, which ends the lifecycle.
func untilDone(driver *turn.Driver) server.Service {
	stop := make(chan struct{})
	return &server.FuncService{
		StartFn: func() error {
			select {
			case <-driver.Done():
			case <-stop:
			}
			return nil
		},
		StopFn: func() {
			select {
			case <-stop:
			default:
				close(stop)
			}
		},
	}
}
