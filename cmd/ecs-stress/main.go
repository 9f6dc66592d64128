// Command ecs-stress churns a Manager through the Scheduler for a fixed
// duration and prints a timing and memory report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/profile"
	"github.com/plus3/sigecs/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	capacity := flag.Int("capacity", 0, "Initial Manager capacity. Zero lets the Manager grow on demand.")
	churn := flag.Int("churn", 100, "Entities spawned per frame.")
	seed := flag.Uint64("seed", 1, "Seed for the random source.")
	profileMode := flag.String("profile", "none", "Profile to record: cpu, mem or none.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Enable debug logging.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	runID := uuid.New().String()
	logger = logger.With("logger", "ecs-stress", "run", runID)

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "none":
	default:
		logger.Error("unknown profile mode", "profile", *profileMode)
		os.Exit(2)
	}

	logger.Info("starting ECS stress test")

	opts := []ecs.Option{ecs.WithLogger(logger)}
	if *capacity > 0 {
		opts = append(opts, ecs.WithCapacity(*capacity))
	}
	m := ecs.NewManager(NewSettings(), opts...)
	ecs.NewSingleton[Counters](m)

	r := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	scheduler := ecs.NewScheduler(m)
	scheduler.Register(&ChurnSystem{Rate: *churn, Rand: r})
	scheduler.Register(&MoveSystem{})
	scheduler.Register(&AgeSystem{})
	scheduler.Register(&DecaySystem{})

	logger.Info("populating manager", "entities", *entityCount)
	populate(m, r, *entityCount)
	logger.Info("population complete", "capacity", m.Capacity())

	report := &Report{
		RunID:          runID,
		Seed:           *seed,
		Duration:       *duration,
		Entities:       *entityCount,
		Capacity:       *capacity,
		Churn:          *churn,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", "duration", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	simulate(ctx, scheduler, report)

	report.Counters = *ecs.NewSingleton[Counters](m).Get()
	report.Final = m.CollectStats()
	report.Systems = scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished", "updates", report.TotalUpdates, "alive", report.Final.EntityCount)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Error("failed to generate report", "error", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}

func populate(m *ecs.Manager, r *rand.Rand, n int) {
	build := spawnRandom(r)
	for range n {
		build(m, m.CreateIndex())
	}
	m.Refresh()
}

// simulate runs scheduler frames back to back until ctx is done, recording
// each frame's duration in report.
func simulate(ctx context.Context, scheduler *ecs.Scheduler, report *Report) {
	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
}
