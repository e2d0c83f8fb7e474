// Package backend 提供压测驱动统一使用的存储后端
package backend

import (
	"path/filepath"

	"github.com/ic-timon/blockfile/bench/gen"
	"github.com/ic-timon/blockfile/blockstore"
)

// Backend 按下标读写记录的存储；Close 释放并删除底层文件
type Backend interface {
	Put(index int64, r gen.Record) error
	Get(index int64) (gen.Record, bool, error)
	Close() error
	String() string
}

// OpenBlockfile 在 dir 下创建块文件存储
func OpenBlockfile(dir string, blockSize int, sync blockstore.SyncMode) (*blockstore.Store[gen.Record], error) {
	cfg := blockstore.DefaultConfig()
	cfg.BlockSize = blockSize
	cfg.Path = filepath.Join(dir, "blockfile.bin")
	cfg.Label = "blockfile-" + sync.String()
	cfg.Sync = sync
	return blockstore.OpenConfig[gen.Record](cfg)
}

var _ Backend = (*blockstore.Store[gen.Record])(nil)
