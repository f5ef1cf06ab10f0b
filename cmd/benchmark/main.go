package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/delaneyj/onetrack"
	"github.com/delaneyj/onetrack/registry"
)

const (
	iterationsKey = "iterations"
	profileKey    = "profile"
)

var (
	ww = []int{1, 10, 100}
	hh = []int{1, 10, 100}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Propagation benchmark for onetrack signals",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  iterationsKey,
				Usage: "Writes per grid configuration",
				Value: 100,
			},
			&cli.BoolFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to default.pgo",
				Value: false,
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Uint(iterationsKey))

	if cmd.Bool(profileKey) {
		f, err := os.Create("default.pgo")
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	log.Print("warming up")
	benchmarkPropagate(1, false)
	benchmarkPropagate(iters, true)
	return nil
}

// benchmarkPropagate builds W parallel chains of H computeds off a single
// source with a terminal effect per chain, then writes the source iters
// times. Each effect feeds the value it observed into an xxhash digest so a
// run can be checked against any other run of the same shape.
func benchmarkPropagate(iters int, shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("onetrack signals")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	summary := tablewriter.NewWriter(os.Stdout)
	summary.SetHeader([]string{"benchmark", "writes", "updates/sec", "checksum"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			st := registry.NewStore()
			src := onetrack.Signal(st, 1)
			digest := xxhash.New()
			buf := make([]byte, 8)

			for i := 0; i < w; i++ {
				last := src.AsReadonly()
				for j := 0; j < h; j++ {
					prev := last
					last = onetrack.Computed(st, func() int {
						return prev.Value() + 1
					})
				}
				leaf := last
				onetrack.Effect(st, func(_ func(func())) {
					binary.LittleEndian.PutUint64(buf, uint64(leaf.Value()))
					digest.Write(buf)
				})
			}

			var total time.Duration
			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Value() + 1)
				elapsed := time.Since(start)
				tach.AddTime(elapsed)
				total += elapsed
			}

			calc := tach.Calc()
			name := fmt.Sprintf("propagate: %d * %d", w, h)
			tbl.AppendRows([]table.Row{
				{
					name,
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})

			// One write re-runs every computed and effect in the grid.
			updates := iters * w * (h + 1)
			rate := float64(updates) / total.Seconds()
			summary.Append([]string{
				name,
				humanize.Comma(int64(iters)),
				humanize.Comma(int64(rate)),
				fmt.Sprintf("%016x", digest.Sum64()),
			})
		}
	}

	if shouldRender {
		tbl.Render()
		summary.Render()
	}
}
