// 阶段 A: 不同 blockSize 下顺序写 + 随机读延迟
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ic-timon/blockfile/bench/backend"
	"github.com/ic-timon/blockfile/bench/gen"
	"github.com/ic-timon/blockfile/bench/metrics"
)

func runStageA(opts stageOpts) {
	blockSizes := []int{128, 512, 4096}
	n := opts.records

	var rows []metrics.StageARow
	for _, bs := range blockSizes {
		fmt.Printf("阶段 A: blockSize=%d records=%d sync=%s\n", bs, n, opts.sync)
		// 记录占满半个槽位
		recs := gen.Records(n, bs/2, 42)
		reads := gen.Indices(n, int64(n), 43)

		dir := stageDir(opts, "a")
		s, err := backend.OpenBlockfile(dir, bs, opts.sync)
		if err != nil {
			panic(err)
		}

		putDur := make([]time.Duration, n)
		t0 := time.Now()
		for i, r := range recs {
			t1 := time.Now()
			if err := s.Put(int64(i), r); err != nil {
				panic(err)
			}
			putDur[i] = time.Since(t1)
		}
		writeSec := time.Since(t0).Seconds()

		fi, err := os.Stat(s.Path())
		if err != nil {
			panic(err)
		}
		fileSize := fi.Size()

		getDur := make([]time.Duration, len(reads))
		for i, idx := range reads {
			t1 := time.Now()
			r, ok, err := s.Get(idx)
			getDur[i] = time.Since(t1)
			if err != nil {
				panic(err)
			}
			if !ok || r.ID != idx {
				panic(fmt.Sprintf("slot %d: got id=%d ok=%v", idx, r.ID, ok))
			}
		}

		if err := s.Close(); err != nil {
			panic(err)
		}
		_ = os.RemoveAll(dir)

		putStats := metrics.LatencyStatsFromDurations(putDur)
		getStats := metrics.LatencyStatsFromDurations(getDur)
		row := metrics.StageARow{
			BlockSize:  bs,
			Records:    n,
			PutP50Ms:   putStats.P50Ms,
			PutP99Ms:   putStats.P99Ms,
			GetP50Ms:   getStats.P50Ms,
			GetP99Ms:   getStats.P99Ms,
			FileSizeMB: float64(fileSize) / 1024 / 1024,
		}
		if writeSec > 0 {
			row.WriteMBps = float64(fileSize) / 1024 / 1024 / writeSec
		}
		rows = append(rows, row)
		fmt.Printf("  Put P50=%.3fms P99=%.3fms  Get P50=%.3fms P99=%.3fms  %.2fMB/s\n",
			row.PutP50Ms, row.PutP99Ms, row.GetP50Ms, row.GetP99Ms, row.WriteMBps)
	}

	writeReport(opts, "bench_report_stage_a_", rows)
}
