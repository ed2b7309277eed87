package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/mogaika/orrery/config"
	"github.com/mogaika/orrery/demos"
	"github.com/mogaika/orrery/scene"
	"github.com/mogaika/orrery/scenefile"
	"github.com/mogaika/orrery/status"
	"github.com/mogaika/orrery/web"
)

func loadScene(c config.Config) (*scene.Context, error) {
	if c.Scene != "" {
		f, err := scenefile.Load(c.Scene)
		if err != nil {
			return nil, err
		}
		return f.Build()
	}
	return demos.Build(c.Demo)
}

func tick(ctx context.Context, s *web.Server, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Tick()
		case <-ctx.Done():
			return
		}
	}
}

func main() {
	var cfgPath, addr, scenePath, demo, webPath string
	var tickrate float64
	var aspect float64
	var list bool
	flag.StringVar(&cfgPath, "config", "orrery.yaml", "Path to config file")
	flag.StringVar(&addr, "i", "", "Address of server")
	flag.StringVar(&scenePath, "scene", "", "Path to scene yaml file")
	flag.StringVar(&demo, "demo", "", "Name of built in demo")
	flag.StringVar(&webPath, "web", "", "Path to folder with static files")
	flag.Float64Var(&tickrate, "tickrate", -1, "Animation steps per second, 0 - disabled")
	flag.Float64Var(&aspect, "aspect", 0, "Camera aspect override")
	flag.BoolVar(&list, "list", false, "List built in demos and exit")
	flag.Parse()

	if list {
		for _, name := range demos.Names() {
			log.Println(name)
		}
		return
	}

	c, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if addr != "" {
		c.Addr = addr
	}
	if scenePath != "" {
		c.Scene = scenePath
	}
	if demo != "" {
		c.Demo, c.Scene = demo, ""
	}
	if webPath != "" {
		c.WebPath = webPath
	}
	if tickrate >= 0 {
		c.TickRate = tickrate
	}
	if aspect > 0 {
		c.Aspect = float32(aspect)
	}

	sc, err := loadScene(c)
	if err != nil {
		log.Fatal(err)
	}
	if c.Aspect > 0 {
		sc.Camera.Aspect = c.Aspect
	}
	log.Printf("[orrery] Scene %q: %d nodes, keys %v", sc.Name, sc.Root.Count(), sc.Keys())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	s := web.NewServer(sc, status.NewHub(), c.WebPath)
	if interval := c.TickInterval(); interval > 0 {
		go tick(ctx, s, interval)
	}

	if err := s.Run(ctx, c.Addr); err != nil {
		log.Fatal(err)
	}
}
