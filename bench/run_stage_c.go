// 阶段 C: 块文件与 badger 在相同负载下对比
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ic-timon/blockfile/bench/backend"
	"github.com/ic-timon/blockfile/bench/gen"
	"github.com/ic-timon/blockfile/bench/metrics"
	"github.com/ic-timon/blockfile/blockstore"
)

func runStageC(opts stageOpts) {
	const blockSize = 1024
	n := opts.records
	recs := gen.Records(n, blockSize/2, 42)
	reads := gen.Indices(n, int64(n), 45)

	openers := []func(dir string) (backend.Backend, error){
		func(dir string) (backend.Backend, error) {
			return backend.OpenBlockfile(dir, blockSize, blockstore.SyncFull)
		},
		func(dir string) (backend.Backend, error) {
			return backend.OpenBlockfile(dir, blockSize, blockstore.SyncData)
		},
		func(dir string) (backend.Backend, error) {
			return backend.OpenBadger(filepath.Join(dir, "badger"))
		},
	}

	var rows []metrics.StageCRow
	for _, open := range openers {
		dir := stageDir(opts, "c")
		b, err := open(dir)
		if err != nil {
			panic(err)
		}
		fmt.Printf("阶段 C: backend=%s records=%d\n", b, n)

		metrics.GC()
		before := metrics.Take()

		putDur := make([]time.Duration, n)
		for i, r := range recs {
			t1 := time.Now()
			if err := b.Put(int64(i), r); err != nil {
				panic(err)
			}
			putDur[i] = time.Since(t1)
		}
		getDur := make([]time.Duration, len(reads))
		for i, idx := range reads {
			t1 := time.Now()
			if _, ok, err := b.Get(idx); err != nil || !ok {
				panic(fmt.Sprintf("%s Get(%d): ok=%v err=%v", b, idx, ok, err))
			}
			getDur[i] = time.Since(t1)
		}

		after := metrics.Take()
		allocRate, gcDelta := metrics.Diff(before, after)

		name := b.String()
		if err := b.Close(); err != nil {
			panic(err)
		}
		_ = os.RemoveAll(dir)

		putStats := metrics.LatencyStatsFromDurations(putDur)
		getStats := metrics.LatencyStatsFromDurations(getDur)
		rows = append(rows, metrics.StageCRow{
			Backend:   name,
			Records:   n,
			PutP50Ms:  putStats.P50Ms,
			PutP99Ms:  putStats.P99Ms,
			GetP50Ms:  getStats.P50Ms,
			GetP99Ms:  getStats.P99Ms,
			AllocMBps: allocRate / 1024 / 1024,
			GCCount:   gcDelta,
		})
		fmt.Printf("  Put P50=%.3fms P99=%.3fms  Get P50=%.3fms P99=%.3fms  alloc=%.1fMB/s GC=%d\n",
			putStats.P50Ms, putStats.P99Ms, getStats.P50Ms, getStats.P99Ms, allocRate/1024/1024, gcDelta)
	}

	writeReport(opts, "bench_report_stage_c_", rows)
}
