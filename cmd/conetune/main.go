// Command conetune searches for AI radar cone sines that make squadron
// duels accurate and decisive, using Nelder-Mead over headless runs.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/dogfight/config"
)

// formatDuration formats a duration as MMmSSs, or with hours when needed.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 3600, "Ticks per duel")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg)

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, baseCfg)

	logPath := filepath.Join(*outputDir, "conetune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "accuracy", "kills_per_min"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = append([]float64(nil), raw...)
			}

			summary := evaluator.LastSummary()
			row := []string{
				strconv.Itoa(evalCount),
				fmt.Sprintf("%.6f", fitness),
				fmt.Sprintf("%.4f", summary.Accuracy()),
				fmt.Sprintf("%.3f", summary.KillsPerMinute()),
			}
			for _, v := range raw {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			fmt.Printf("Eval %d/%d: accuracy=%.1f%% kills/min=%.2f (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, summary.Accuracy()*100, summary.KillsPerMinute(), bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}
	method := &optimize.NelderMead{
		SimplexSize: 0.2,
	}

	fmt.Printf("Starting Nelder-Mead with %d parameters, max_evals=%d\n", params.Dim(), *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per duel: %d\n", *seeds, *maxTicks)

	initX := params.Normalize(params.DefaultVector())
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.4f\n", bestFitness)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg, err := baseCfg.Clone()
	if err != nil {
		log.Fatalf("failed to copy config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
