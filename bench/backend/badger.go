package backend

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/ic-timon/blockfile/bench/gen"
)

// Badger 以 badger KV 为后端，同步写入以与块文件的逐次 fsync 对齐
type Badger struct {
	db  *badger.DB
	dir string
}

// OpenBadger 在 dir 下打开（不存在则创建）badger 数据库
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).WithSyncWrites(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Badger{db: db, dir: dir}, nil
}

func badgerKey(index int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(index))
	return key
}

// Put 写入记录
func (b *Badger) Put(index int64, r gen.Record) error {
	val, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(index), val)
	})
}

// Get 读取记录，不存在时 ok 为 false
func (b *Badger) Get(index int64) (r gen.Record, ok bool, err error) {
	if index < 0 {
		return r, false, nil
	}
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(index))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return gen.Record{}, false, err
	}
	return r, ok, nil
}

// Close 关闭数据库并删除其目录
func (b *Badger) Close() error {
	return errors.Join(b.db.Close(), os.RemoveAll(b.dir))
}

func (b *Badger) String() string {
	return "badger"
}

var _ Backend = (*Badger)(nil)
