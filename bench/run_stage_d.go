// 阶段 D: 逐条 Get（pread + 解码）vs mmap 视图扫描
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ic-timon/blockfile/bench/backend"
	"github.com/ic-timon/blockfile/bench/gen"
	"github.com/ic-timon/blockfile/bench/metrics"
	"github.com/ic-timon/blockfile/blockstore/layout"
)

func runStageD(opts stageOpts) {
	const blockSize = 512
	const runs = 5 // 多轮取平均
	n := opts.records
	recs := gen.Records(n, blockSize/2, 42)

	dir := stageDir(opts, "d")
	defer os.RemoveAll(dir)
	s, err := backend.OpenBlockfile(dir, blockSize, opts.sync)
	if err != nil {
		panic(err)
	}
	defer s.Close()
	for i, r := range recs {
		if err := s.Put(int64(i), r); err != nil {
			panic(err)
		}
	}

	// 1. pread：逐条 Get
	fmt.Println("阶段 D: pread 模式")
	var sumPread float64
	for r := 0; r < runs; r++ {
		t0 := time.Now()
		for i := 0; i < n; i++ {
			if _, ok, err := s.Get(int64(i)); err != nil || !ok {
				panic(fmt.Sprintf("Get(%d): ok=%v err=%v", i, ok, err))
			}
		}
		sumPread += float64(time.Since(t0).Nanoseconds()) / 1e6
	}
	avgPread := sumPread / runs

	// 2. mmap：映射后按槽位扫描并解码
	fmt.Println("阶段 D: mmap 扫描模式")
	view, err := s.View()
	if err != nil {
		panic(err)
	}
	var sumMmap float64
	for r := 0; r < runs; r++ {
		t0 := time.Now()
		for i := int64(0); i < view.NumSlots(); i++ {
			var rec gen.Record
			if err := layout.DecodeEnvelope(layout.Strip(view.Slot(i)), &rec); err != nil {
				panic(err)
			}
		}
		sumMmap += float64(time.Since(t0).Nanoseconds()) / 1e6
	}
	avgMmap := sumMmap / runs
	slots := view.NumSlots()
	if err := view.Close(); err != nil {
		panic(err)
	}

	rows := []metrics.StageDRow{
		{Mode: "pread", Slots: int64(n), DurMs: avgPread, SlotsPerSec: perSec(int64(n), avgPread)},
		{Mode: "mmap", Slots: slots, DurMs: avgMmap, SlotsPerSec: perSec(slots, avgMmap)},
	}
	for _, r := range rows {
		fmt.Printf("  %s: %d 槽位 %.2fms (%.0f/s, avg of %d runs)\n", r.Mode, r.Slots, r.DurMs, r.SlotsPerSec, runs)
	}
	if avgPread > 0 {
		fmt.Printf("  对比: mmap/pread 吞吐比=%.2f\n", rows[1].SlotsPerSec/rows[0].SlotsPerSec)
	}

	writeReport(opts, "bench_report_stage_d_", rows)
}

func perSec(count int64, ms float64) float64 {
	if ms <= 0 {
		return 0
	}
	return float64(count) / (ms / 1000)
}
