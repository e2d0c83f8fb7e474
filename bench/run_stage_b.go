// 阶段 B: 并发混合读写（80% 读 / 20% 写），按下标串行化
package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/ic-timon/blockfile/bench/backend"
	"github.com/ic-timon/blockfile/bench/gen"
	"github.com/ic-timon/blockfile/bench/metrics"
	"github.com/ic-timon/blockfile/blockstore"
)

func runStageB(opts stageOpts) {
	const blockSize = 512
	const writeEvery = 5 // 每 5 次操作 1 次写

	concurrencies := []int{1, 4, 8, 16, 32}
	n := opts.records
	recs := gen.Records(n, blockSize/2, 42)
	ops := gen.Indices(n, int64(n), 44)

	var rows []metrics.StageBRow
	for _, c := range concurrencies {
		dir := stageDir(opts, "b")
		s, err := backend.OpenBlockfile(dir, blockSize, opts.sync)
		if err != nil {
			panic(err)
		}
		for i, r := range recs {
			if err := s.Put(int64(i), r); err != nil {
				panic(err)
			}
		}
		serial := blockstore.NewSerial(s, 0)

		fmt.Printf("阶段 B: concurrency=%d ops=%d\n", c, len(ops))
		t0 := time.Now()
		durations, peakGoroutines := runMixed(serial, recs, ops, c, writeEvery)
		elapsed := time.Since(t0).Seconds()

		if err := s.Close(); err != nil {
			panic(err)
		}
		_ = os.RemoveAll(dir)

		stats := metrics.LatencyStatsFromDurations(durations)
		row := metrics.StageBRow{
			Concurrency:  c,
			Ops:          len(ops),
			P50Ms:        stats.P50Ms,
			P99Ms:        stats.P99Ms,
			NumGoroutine: peakGoroutines,
		}
		if elapsed > 0 {
			row.OpsPerSec = float64(len(ops)) / elapsed
		}
		if stats.P50Ms > 0 {
			row.P99P50Ratio = stats.P99Ms / stats.P50Ms
		}
		rows = append(rows, row)
		fmt.Printf("  OPS=%.0f P50=%.3fms P99=%.3fms P99/P50=%.2f\n", row.OpsPerSec, row.P50Ms, row.P99Ms, row.P99P50Ratio)
	}

	writeReport(opts, "bench_report_stage_b_", rows)
}

// runMixed 将 ops 均分给 concurrency 个 worker，返回每次操作耗时与运行期间的 goroutine 峰值
func runMixed(s *blockstore.Serial[gen.Record], recs []gen.Record, ops []int64, concurrency, writeEvery int) ([]time.Duration, int) {
	total := len(ops)
	durations := make([]time.Duration, total)
	perWorker := (total + concurrency - 1) / concurrency
	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			base := worker * perWorker
			for i := base; i < base+perWorker && i < total; i++ {
				idx := ops[i]
				t1 := time.Now()
				if i%writeEvery == 0 {
					if err := s.Put(idx, recs[idx]); err != nil {
						panic(err)
					}
				} else {
					if _, _, err := s.Get(idx); err != nil {
						panic(err)
					}
				}
				durations[i] = time.Since(t1)
			}
		}(w)
	}
	peak := sampleGoroutines(&wg)
	return durations, peak
}

// sampleGoroutines 每毫秒采样 goroutine 数直到 wg 完成，返回期间最大值
func sampleGoroutines(wg *sync.WaitGroup) int {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	peak := runtime.NumGoroutine()
	for {
		select {
		case <-done:
			return peak
		case <-ticker.C:
			peak = max(peak, runtime.NumGoroutine())
		}
	}
}
